// Copyright (c) 2026 Aegis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/aegis/internal/platform/database/schema"
	"github.com/taibuivan/aegis/pkg/pagination"
)

// # Audit Repository

// PostgresAuditRepository implements the AuditRepository interface.
//
// Entries land in system.auditlog, an append-only table with a JSONB
// context column for event-specific payloads.
type PostgresAuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new PostgreSQL implementation of AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) *PostgresAuditRepository {
	return &PostgresAuditRepository{pool: pool}
}

/*
Insert appends one audit entry to system.auditlog.

Parameters:
  - context: context.Context
  - entry: *AuditEntry

Returns:
  - error: Persistence failures
*/
func (repository *PostgresAuditRepository) Insert(context context.Context, entry *AuditEntry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5)`,
		schema.SystemAuditLog.Table,
		schema.SystemAuditLog.ID, schema.SystemAuditLog.EventType, schema.SystemAuditLog.UserID,
		schema.SystemAuditLog.Context, schema.SystemAuditLog.CreatedAt,
	)

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	contextJSON, err := json.Marshal(entry.Context)
	if err != nil {
		return fmt.Errorf("postgres_audit_repo_marshal_failed: %w", err)
	}

	_, err = repository.pool.Exec(context, query,
		entry.ID,
		entry.EventType,
		entry.UserID,
		contextJSON,
		entry.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_audit_repo_insert_failed: %w", err)
	}

	return nil
}

// auditFilterClause assembles the WHERE clause and its arguments for List.
//
// The filtered and filter-less cases must be distinct queries: a sentinel
// comparison like ($2 = '' OR userid = $2::uuid) lets the planner type-check
// the uuid cast of the empty string at plan time, which fails before any row
// is evaluated. The user filter is compared as text for the same reason.
func auditFilterClause(filter AuditFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.EventType != "" {
		args = append(args, filter.EventType)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.SystemAuditLog.EventType, len(args)))
	}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		conditions = append(conditions, fmt.Sprintf("%s::text = $%d", schema.SystemAuditLog.UserID, len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return "\n\t\tWHERE " + strings.Join(conditions, " AND "), args
}

/*
List returns a page of audit entries matching the filter, newest first.

Parameters:
  - context: context.Context
  - filter: AuditFilter
  - params: pagination.Params

Returns:
  - []*AuditEntry: One page of entries
  - int: Total matching count
  - error: Database retrieval failures
*/
func (repository *PostgresAuditRepository) List(context context.Context, filter AuditFilter, params pagination.Params) ([]*AuditEntry, int, error) {
	whereClause, args := auditFilterClause(filter)

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s%s`,
		schema.SystemAuditLog.Table,
		whereClause,
	)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_audit_repo_count_failed: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s, %s, COALESCE(%s::text, ''), %s, %s
		FROM %s%s
		ORDER BY %s DESC
		LIMIT $%d OFFSET $%d`,
		schema.SystemAuditLog.ID, schema.SystemAuditLog.EventType, schema.SystemAuditLog.UserID,
		schema.SystemAuditLog.Context, schema.SystemAuditLog.CreatedAt,
		schema.SystemAuditLog.Table,
		whereClause,
		schema.SystemAuditLog.CreatedAt,
		len(args)+1, len(args)+2,
	)

	rows, err := repository.pool.Query(context, listQuery, append(args, params.Limit, params.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_audit_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var entries []*AuditEntry
	for rows.Next() {
		entry := &AuditEntry{}
		var contextJSON []byte
		if err := rows.Scan(
			&entry.ID,
			&entry.EventType,
			&entry.UserID,
			&contextJSON,
			&entry.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_audit_repo_scan_failed: %w", err)
		}

		if len(contextJSON) > 0 {
			if err := json.Unmarshal(contextJSON, &entry.Context); err != nil {
				return nil, 0, fmt.Errorf("postgres_audit_repo_unmarshal_failed: %w", err)
			}
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_audit_repo_rows_failed: %w", err)
	}

	return entries, total, nil
}
