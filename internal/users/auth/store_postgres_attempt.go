// Copyright (c) 2026 Aegis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// # Login Attempt Repository

// PostgresAttemptRepository implements the AttemptRepository interface.
//
// # Append-Only Ledger
//
// Attempt rows are inserted and never updated. The lockout decision is a
// pure count query over this ledger, so the "counter" can never drift from
// the history that produced it. Concurrent logins may interleave reads and
// inserts, so N simultaneous attempts can all pass the gate at once; the
// policy tolerates that bounded overshoot.
type PostgresAttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates a new PostgreSQL implementation of AttemptRepository.
func NewAttemptRepository(pool *pgxpool.Pool) *PostgresAttemptRepository {
	return &PostgresAttemptRepository{pool: pool}
}

/*
Record appends one attempt row to the users.loginattempt ledger.

Parameters:
  - context: context.Context
  - attempt: *LoginAttempt

Returns:
  - error: Persistence failures
*/
func (repository *PostgresAttemptRepository) Record(context context.Context, attempt *LoginAttempt) error {
	const query = `
		INSERT INTO users.loginattempt (
			id, identifier, originkey, succeeded, createdat
		) VALUES ($1, $2, $3, $4, $5)`

	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		attempt.ID,
		attempt.Identifier,
		attempt.OriginKey,
		attempt.Succeeded,
		attempt.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_attempt_repo_record_failed: %w", err)
	}

	return nil
}

/*
CountRecentFailuresByIdentifier counts consecutive recent failures for an identifier.

Description: Only failures inside the window AND after the identifier's most
recent success are counted — a successful login resets the streak without
touching any row.

Parameters:
  - context: context.Context
  - identifier: string
  - since: time.Time

Returns:
  - int: Consecutive recent failure count
  - error: Database retrieval failures
*/
func (repository *PostgresAttemptRepository) CountRecentFailuresByIdentifier(context context.Context, identifier string, since time.Time) (int, error) {
	const query = `
		SELECT COUNT(*)
		FROM users.loginattempt
		WHERE identifier = $1
		  AND succeeded = FALSE
		  AND createdat > $2
		  AND createdat > COALESCE(
			(SELECT MAX(createdat) FROM users.loginattempt WHERE identifier = $1 AND succeeded = TRUE),
			'-infinity'::timestamptz
		  )`

	var count int
	if err := repository.pool.QueryRow(context, query, identifier, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres_attempt_repo_count_identifier_failed: %w", err)
	}

	return count, nil
}

/*
CountRecentFailuresByOrigin counts consecutive recent failures for an origin key.

Description: The origin dimension throttles a single source probing many
identifiers. It is evaluated independently of the identifier dimension.

Parameters:
  - context: context.Context
  - originKey: string
  - since: time.Time

Returns:
  - int: Consecutive recent failure count
  - error: Database retrieval failures
*/
func (repository *PostgresAttemptRepository) CountRecentFailuresByOrigin(context context.Context, originKey string, since time.Time) (int, error) {
	const query = `
		SELECT COUNT(*)
		FROM users.loginattempt
		WHERE originkey = $1
		  AND succeeded = FALSE
		  AND createdat > $2
		  AND createdat > COALESCE(
			(SELECT MAX(createdat) FROM users.loginattempt WHERE originkey = $1 AND succeeded = TRUE),
			'-infinity'::timestamptz
		  )`

	var count int
	if err := repository.pool.QueryRow(context, query, originKey, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres_attempt_repo_count_origin_failed: %w", err)
	}

	return count, nil
}

/*
DeleteOlderThan removes attempt rows created before the cutoff.

Description: Cleanup task — old rows can never influence a lockout decision
once they fall outside every possible window.

Parameters:
  - context: context.Context
  - cutoff: time.Time

Returns:
  - error: Cleanup failures
*/
func (repository *PostgresAttemptRepository) DeleteOlderThan(context context.Context, cutoff time.Time) error {
	const query = "DELETE FROM users.loginattempt WHERE createdat < $1"
	_, err := repository.pool.Exec(context, query, cutoff)
	if err != nil {
		return fmt.Errorf("postgres_attempt_repo_delete_failed: %w", err)
	}
	return nil
}
