// Copyright (c) 2026 Aegis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/taibuivan/aegis/pkg/pagination"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given normalized email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Description: The users.account email unique index is the single
		arbiter of uniqueness; a conflicting insert surfaces as a
		DUPLICATE_EMAIL error.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.DuplicateEmail or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error

	/*
		SetActive flips the account's active flag.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - isActive: bool

		Returns:
		  - error: Persistence failures
	*/
	SetActive(context context.Context, userID string, isActive bool) error

	/*
		SetRole replaces the account's role.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - role: string

		Returns:
		  - error: Persistence failures
	*/
	SetRole(context context.Context, userID, role string) error

	/*
		MarkVerified updates the user's status to isverified = true.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	MarkVerified(context context.Context, userID string) error
}

// # Session Data Access

// SessionRepository defines the data access contract for refresh-token sessions.
type SessionRepository interface {

	/*
		Create persists a new session lineage for an authenticated login.

		Parameters:
		  - context: context.Context
		  - session: *Session

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, session *Session) error

	/*
		FindByID returns the raw session row, including revoked and expired
		rows. Callers decide how to interpret the row's state.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - *Session: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, sessionID string) (*Session, error)

	/*
		Rotate atomically swaps the session's token hash under a
		compare-and-set condition.

		Description: The update only applies if the stored hash still equals
		previousHash AND the session is neither revoked nor expired. Exactly
		one of any set of concurrent callers presenting the same token wins.

		Parameters:
		  - context: context.Context
		  - sessionID: string
		  - previousHash: string
		  - newHash: string
		  - newExpiry: time.Time

		Returns:
		  - bool: Whether this caller won the rotation
		  - error: Persistence failures
	*/
	Rotate(context context.Context, sessionID, previousHash, newHash string, newExpiry time.Time) (bool, error)

	/*
		Revoke marks a specific session as permanently invalidated.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - error: Persistence failures
	*/
	Revoke(context context.Context, sessionID string) error

	/*
		RevokeAll revokes every active session belonging to the userID.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	RevokeAll(context context.Context, userID string) error

	/*
		RevokeOthers revokes all sessions belonging to the userID except for the current session.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - currentSessionID: string

		Returns:
		  - error: Persistence failures
	*/
	RevokeOthers(context context.Context, userID, currentSessionID string) error

	/*
		ListActiveByUser returns all non-revoked, non-expired sessions for a user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []*Session: Active sessions ordered by creation time
		  - error: Database retrieval failures
	*/
	ListActiveByUser(context context.Context, userID string) ([]*Session, error)

	/*
		DeleteExpired physically removes sessions whose ExpiresAt is in the past.

		Parameters:
		  - context: context.Context

		Returns:
		  - error: Persistence failures
	*/
	DeleteExpired(context context.Context) error
}

// # Login Attempt Data Access

// AttemptRepository defines the contract for the append-only attempt ledger.
type AttemptRepository interface {

	/*
		Record appends one attempt row. Rows are never updated afterwards.

		Parameters:
		  - context: context.Context
		  - attempt: *LoginAttempt

		Returns:
		  - error: Persistence failures
	*/
	Record(context context.Context, attempt *LoginAttempt) error

	/*
		CountRecentFailuresByIdentifier counts failed attempts for the
		identifier that occurred after `since` AND after the identifier's
		most recent successful attempt.

		Parameters:
		  - context: context.Context
		  - identifier: string
		  - since: time.Time

		Returns:
		  - int: Consecutive recent failure count
		  - error: Database retrieval failures
	*/
	CountRecentFailuresByIdentifier(context context.Context, identifier string, since time.Time) (int, error)

	/*
		CountRecentFailuresByOrigin is the origin-key analogue of
		CountRecentFailuresByIdentifier.

		Parameters:
		  - context: context.Context
		  - originKey: string
		  - since: time.Time

		Returns:
		  - int: Consecutive recent failure count
		  - error: Database retrieval failures
	*/
	CountRecentFailuresByOrigin(context context.Context, originKey string, since time.Time) (int, error)

	/*
		DeleteOlderThan removes attempt rows created before the cutoff.

		Parameters:
		  - context: context.Context
		  - cutoff: time.Time

		Returns:
		  - error: Persistence failures
	*/
	DeleteOlderThan(context context.Context, cutoff time.Time) error
}

// # Audit Data Access

// AuditFilter narrows an audit log listing.
type AuditFilter struct {
	EventType string
	UserID    string
}

// AuditRepository defines the contract for the append-only audit log.
type AuditRepository interface {

	/*
		Insert appends one audit entry.

		Parameters:
		  - context: context.Context
		  - entry: *AuditEntry

		Returns:
		  - error: Persistence failures
	*/
	Insert(context context.Context, entry *AuditEntry) error

	/*
		List returns audit entries matching the filter, newest first.

		Parameters:
		  - context: context.Context
		  - filter: AuditFilter
		  - params: pagination.Params

		Returns:
		  - []*AuditEntry: One page of entries
		  - int: Total matching count
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter AuditFilter, params pagination.Params) ([]*AuditEntry, int, error)
}

// # Volatile Data Access

// VerificationTokenRepository defines the contract for storing volatile email verification tokens.
type VerificationTokenRepository interface {

	/*
		Set stores a verification token associated with a userID.

		Parameters:
		  - context: context.Context
		  - token: string
		  - userID: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, token string, userID string, ttl time.Duration) error

	/*
		Get retrieves the userID associated with a given verification token.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - string: UserID
		  - error: Retrieval failures
	*/
	Get(context context.Context, token string) (string, error)

	/*
		Delete removes a verification token after successful use.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, token string) error
}
