// Copyright (c) 2026 Aegis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the core identity and access management (IAM) system.

It handles everything from user registration and secure password hashing to
session lifecycle management via JWT access tokens and rotated refresh tokens.

Architecture:

  - Service: Orchestrates business logic (Register, Login, Refresh, Lockout).
  - Repository: Abstracted interfaces for Postgres (Users, Sessions, Attempts,
    Audit) and Redis (Verification tokens).
  - Security: Leverages bcrypt hashing and RSA-signed JWTs.

The Service is the single entry point for every other module that needs
authentication decisions; nothing else reaches the repositories directly.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/aegis/internal/platform/apperr"
	"github.com/taibuivan/aegis/internal/platform/ctxutil"
	"github.com/taibuivan/aegis/internal/platform/sec"
	"github.com/taibuivan/aegis/internal/platform/validate"
	"github.com/taibuivan/aegis/pkg/emailaddr"
	"github.com/taibuivan/aegis/pkg/pagination"
	"github.com/taibuivan/aegis/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - role: The role of the account.
	//   - sessionID: The session the token is minted for (the 'sid' claim).
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, role, sessionID string, timeToLive time.Duration) (string, error)
}

// LockoutPolicy configures the login throttling behavior.
//
// An attempt is rejected when EITHER the identifier or the origin key has
// accumulated Threshold consecutive failures inside the Window.
type LockoutPolicy struct {
	Threshold int
	Window    time.Duration
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, lockout,
// or rotation logic must be reviewed by the security team.
type Service struct {
	userRepository              UserRepository
	sessionRepository           SessionRepository
	attemptRepository           AttemptRepository
	auditRepository             AuditRepository
	verificationTokenRepository VerificationTokenRepository
	auditRecorder               *Recorder
	tokenProvider               TokenProvider
	hasher                      *sec.Hasher
	lockout                     LockoutPolicy
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	attemptRepo AttemptRepository,
	auditRepo AuditRepository,
	verifyRepo VerificationTokenRepository,
	recorder *Recorder,
	tokenProv TokenProvider,
	hasher *sec.Hasher,
	lockout LockoutPolicy,
) *Service {
	return &Service{
		userRepository:              userRepo,
		sessionRepository:           sessionRepo,
		attemptRepository:           attemptRepo,
		auditRepository:             auditRepo,
		verificationTokenRepository: verifyRepo,
		auditRecorder:               recorder,
		tokenProvider:               tokenProv,
		hasher:                      hasher,
		lockout:                     lockout,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Email    string
	Password string
	Role     string // Defaults to VIEWER when empty.
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Enrollment of a new account. Email uniqueness is arbitrated by
the database unique index rather than a pre-flight lookup, so two concurrent
registrations of the same address resolve to exactly one winner.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - err: DuplicateEmail, WeakPassword, or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Canonical email form is what gets stored and compared everywhere.
	email := emailaddr.Normalize(input.Email)

	// Enforce the shared password policy before any expensive work.
	if err := validate.CheckPassword(input.Password, email); err != nil {
		return nil, err
	}

	// Resolve the role against the closed set. Empty means standard user.
	role := sec.RoleViewer
	if input.Role != "" {
		parsed, err := sec.ParseRole(input.Role)
		if err != nil {
			return nil, apperr.ValidationError("Unknown role", apperr.FieldError{
				Field:   FieldRole,
				Message: "Must be one of: ADMIN, EDITOR, VIEWER",
			})
		}
		role = parsed
	}

	// Prevent storing plain-text passwords. The hasher gate bounds how many
	// bcrypt computations run concurrently during registration spikes.
	hashedPassword, err := service.hasher.Hash(context, input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		IsActive:     true,
		IsVerified:   false,
	}

	// Persist the user. A unique-index conflict surfaces as DuplicateEmail.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	// Registration is a critical event: recorded synchronously.
	_ = service.auditRecorder.Record(context, EventUserRegistered, user.ID, map[string]any{
		FieldEmail: user.Email,
		FieldRole:  string(user.Role),
	})

	// Generate and store a verification token in Redis as an async-ready side effect
	token, err := sec.GenerateSecureToken(VerificationTokenLength)
	if err == nil {
		_ = service.verificationTokenRepository.Set(context, token, user.ID, VerificationTokenTTL)
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email     string
	Password  string
	OriginKey string // Stable key of the request source (client IP or device key).
	UserAgent string
	IPAddress string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	SessionID             string
	User                  *User
}

/*
Login validates user credentials and issues security tokens.

Description: Applies the lockout policy first, then performs a constant-cost
credential check (a bcrypt comparison is burned even for unknown emails),
records the attempt in the append-only ledger, and establishes a session.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - err: InvalidCredentials, RateLimited, or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	identifier := emailaddr.Normalize(input.Email)

	// ── 1. Lockout Gate ───────────────────────────────────────────────────
	locked, err := service.isLocked(context, identifier, input.OriginKey)
	if err != nil {
		return nil, err
	}
	if locked {
		// The rejected attempt is itself recorded as a failure, so hammering
		// a locked account keeps the lock alive.
		service.recordAttempt(context, identifier, input.OriginKey, false)
		_ = service.auditRecorder.Record(context, EventLoginLocked, "", map[string]any{
			"identifier": identifier,
			"origin_key": input.OriginKey,
		})
		return nil, apperr.RateLimited()
	}

	// ── 2. Credential Verification ────────────────────────────────────────
	user, err := service.userRepository.FindByEmail(context, identifier)
	if err != nil {
		// Burn a bcrypt comparison so unknown and known emails cost the same.
		_ = service.hasher.CompareDummy(context)
		service.recordAttempt(context, identifier, input.OriginKey, false)
		// No account resolved, so the audit row carries no user ID.
		_ = service.auditRecorder.Record(context, EventLoginFailed, "", map[string]any{
			"identifier": identifier,
			"origin_key": input.OriginKey,
		})
		return nil, apperr.InvalidCredentials()
	}

	match, err := service.hasher.Compare(context, user.PasswordHash, input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_compare_failed: %w", err)
	}

	// A correct password on a deactivated account is deliberately
	// indistinguishable from a wrong password.
	if !match || !user.IsActive {
		service.recordAttempt(context, identifier, input.OriginKey, false)
		_ = service.auditRecorder.Record(context, EventLoginFailed, user.ID, map[string]any{
			"origin_key": input.OriginKey,
		})
		return nil, apperr.InvalidCredentials()
	}

	// The success row resets the consecutive-failure streak for both
	// dimensions without mutating any previous row.
	service.recordAttempt(context, identifier, input.OriginKey, true)

	// ── 3. Session Establishment ──────────────────────────────────────────
	session, err := service.establishSession(context, user, input.OriginKey, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, err
	}

	_ = service.auditRecorder.Record(context, EventLoginSuccess, user.ID, map[string]any{
		FieldSessionID: session.SessionID,
		"origin_key":   input.OriginKey,
	})

	return session, nil
}

// isLocked evaluates the lockout policy for both throttling dimensions.
func (service *Service) isLocked(context context.Context, identifier, originKey string) (bool, error) {
	since := time.Now().Add(-service.lockout.Window)

	identifierFailures, err := service.attemptRepository.CountRecentFailuresByIdentifier(context, identifier, since)
	if err != nil {
		return false, fmt.Errorf("auth_service_lockout_identifier_failed: %w", err)
	}
	if identifierFailures >= service.lockout.Threshold {
		return true, nil
	}

	originFailures, err := service.attemptRepository.CountRecentFailuresByOrigin(context, originKey, since)
	if err != nil {
		return false, fmt.Errorf("auth_service_lockout_origin_failed: %w", err)
	}

	return originFailures >= service.lockout.Threshold, nil
}

// recordAttempt appends one row to the attempt ledger. Ledger failures are
// logged but never fail the login itself.
func (service *Service) recordAttempt(context context.Context, identifier, originKey string, succeeded bool) {
	attempt := &LoginAttempt{
		ID:         uuid.New(),
		Identifier: identifier,
		OriginKey:  originKey,
		Succeeded:  succeeded,
	}

	if err := service.attemptRepository.Record(context, attempt); err != nil {
		ctxutil.GetLogger(context).ErrorContext(context, "login_attempt_record_failed",
			slog.String("identifier", identifier),
			slog.Any("error", err),
		)
	}
}

// establishSession creates a fresh session lineage and mints both tokens.
func (service *Service) establishSession(context context.Context, user *User, originKey, userAgent, ipAddress string) (*LoginSession, error) {

	// The session ID doubles as the refresh-token lineage prefix and the
	// 'sid' claim in access tokens.
	sessionID := uuid.New()

	refreshToken, err := newRefreshToken(sessionID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(RefreshTokenTTL)
	session := &Session{
		ID:        sessionID,
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		OriginKey: originKey,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
		IsRevoked: false,
	}

	if err := service.sessionRepository.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, string(user.Role), sessionID, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		SessionID:             sessionID,
		User:                  user,
	}, nil
}

// # Session Management

/*
RefreshSession implements the Refresh Token Rotation mechanism.

Description: Atomically swaps the presented token for a fresh one via a
compare-and-set on the session row. Exactly one of any set of concurrent
callers presenting the same token wins; a losing caller holding a token that
was already rotated away is treated as evidence of theft, and the entire
lineage is revoked.

Parameters:
  - context: context.Context
  - refreshToken: string
  - userAgent: string
  - ipAddress: string

Returns:
  - *LoginSession: New session credentials
  - err: TokenMalformed, TokenExpired, TokenRevoked, TokenReused, or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	sessionID, ok := splitRefreshToken(refreshToken)
	if !ok {
		return nil, apperr.TokenMalformed()
	}

	presentedHash := sec.HashToken(refreshToken)

	newRefresh, err := newRefreshToken(sessionID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_secure_token_failed: %w", err)
	}

	// ── 1. Compare-And-Set Rotation ───────────────────────────────────────
	newExpiry := time.Now().Add(RefreshTokenTTL)
	won, err := service.sessionRepository.Rotate(context, sessionID, presentedHash, sec.HashToken(newRefresh), newExpiry)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_rotate_failed: %w", err)
	}

	if !won {
		return nil, service.classifyRotationLoss(context, sessionID, presentedHash)
	}

	// ── 2. Access Token Issuance ──────────────────────────────────────────
	session, err := service.sessionRepository.FindByID(context, sessionID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_session_lookup_failed: %w", err)
	}

	user, err := service.userRepository.FindByID(context, session.UserID)
	if err != nil || !user.IsActive {
		// The account vanished or was deactivated while the session lived.
		_ = service.sessionRepository.Revoke(context, sessionID)
		return nil, apperr.TokenRevoked()
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, string(user.Role), sessionID, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_access_token_failed: %w", err)
	}

	// Routine event at refresh frequency: recorded asynchronously.
	service.auditRecorder.RecordAsync(EventTokenRefresh, user.ID, map[string]any{
		FieldSessionID: sessionID,
	})

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          newRefresh,
		RefreshTokenExpiresAt: newExpiry,
		SessionID:             sessionID,
		User:                  user,
	}, nil
}

// classifyRotationLoss inspects the raw session row to explain a failed CAS.
//
// # Reuse Detection
//
// A live, unexpired row whose stored hash differs from the presented one
// means this token was already rotated away — someone else holds the current
// token. That is the replay signature: the whole lineage is revoked so that
// BOTH the attacker's and the victim's tokens die.
func (service *Service) classifyRotationLoss(context context.Context, sessionID, presentedHash string) error {
	session, err := service.sessionRepository.FindByID(context, sessionID)
	if err != nil {
		// Unknown lineage: either a fabricated token or a swept session.
		return apperr.TokenMalformed()
	}

	if session.IsRevoked {
		return apperr.TokenRevoked()
	}

	if !session.ExpiresAt.After(time.Now()) {
		return apperr.TokenExpired()
	}

	if session.TokenHash != presentedHash {
		if err := service.sessionRepository.Revoke(context, sessionID); err != nil {
			return fmt.Errorf("auth_service_reuse_revoke_failed: %w", err)
		}

		// Reuse detection is the highest-signal security event in the
		// system: always recorded synchronously.
		_ = service.auditRecorder.Record(context, EventTokenReuseDetected, session.UserID, map[string]any{
			FieldSessionID: sessionID,
		})

		return apperr.TokenReused()
	}

	// Stored hash still matches but the CAS reported zero rows. Nothing in
	// the state machine produces this; surface it loudly.
	return apperr.Internal(fmt.Errorf("auth_service_rotation_inconsistent: session %s", sessionID))
}

/*
Logout permanently revokes the session behind a refresh token.

Description: Idempotent — an unknown, expired, or already-revoked token is a
successful logout. A stale token (rotated away) does NOT revoke the lineage;
only the holder of the current token may end the session this way.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - err: Revocation failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	sessionID, ok := splitRefreshToken(refreshToken)
	if !ok {
		return nil
	}

	session, err := service.sessionRepository.FindByID(context, sessionID)
	if err != nil {
		return nil
	}

	if session.TokenHash != sec.HashToken(refreshToken) {
		return nil
	}

	if err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	_ = service.auditRecorder.Record(context, EventLogout, session.UserID, map[string]any{
		FieldSessionID: session.ID,
	})

	return nil
}

/*
RevokeSession ends a specific session on behalf of its owner.

Description: Backs the "log out this device" surface. The session must
belong to the requesting user.

Parameters:
  - context: context.Context
  - userID: string
  - sessionID: string

Returns:
  - err: NotFound, Forbidden, or revocation failures
*/
func (service *Service) RevokeSession(context context.Context, userID, sessionID string) error {
	session, err := service.sessionRepository.FindByID(context, sessionID)
	if err != nil {
		return err
	}

	if session.UserID != userID {
		return apperr.Forbidden("Session does not belong to this user")
	}

	if err := service.sessionRepository.Revoke(context, sessionID); err != nil {
		return fmt.Errorf("auth_service_revoke_session_failed: %w", err)
	}

	_ = service.auditRecorder.Record(context, EventSessionRevoked, userID, map[string]any{
		FieldSessionID: sessionID,
	})

	return nil
}

/*
RevokeOtherSessions ends every session except the current one.

Parameters:
  - context: context.Context
  - userID: string
  - currentSessionID: string

Returns:
  - err: Revocation failures
*/
func (service *Service) RevokeOtherSessions(context context.Context, userID, currentSessionID string) error {
	if err := service.sessionRepository.RevokeOthers(context, userID, currentSessionID); err != nil {
		return fmt.Errorf("auth_service_revoke_others_failed: %w", err)
	}

	_ = service.auditRecorder.Record(context, EventSessionRevoked, userID, map[string]any{
		"kept_session_id": currentSessionID,
		"scope":           "others",
	})

	return nil
}

/*
ListSessions returns the user's active sessions.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []*Session: Active sessions, oldest first
  - err: Retrieval failures
*/
func (service *Service) ListSessions(context context.Context, userID string) ([]*Session, error) {
	sessions, err := service.sessionRepository.ListActiveByUser(context, userID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_list_sessions_failed: %w", err)
	}
	return sessions, nil
}

/*
Me returns the account behind an authenticated user ID.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Hydrated account entity
  - err: NotFound or retrieval failures
*/
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

// # Password Management

/*
ChangePassword allows an authenticated user to update their credentials.

Description: Verifies the current password, applies the password policy,
updates the hash, and synchronously revokes EVERY session — the default
policy is "revoke all, re-authenticate", so a stolen refresh token dies the
moment its owner rotates the password.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - err: InvalidCredentials, WeakPassword, or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {

	// Fetch user by ID
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	// Verify the current password before allowing change
	match, err := service.hasher.Compare(context, user.PasswordHash, currentPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_compare_failed: %w", err)
	}
	if !match {
		return apperr.InvalidCredentials()
	}

	// The new password must clear the same policy as registration.
	if err := validate.CheckPassword(newPassword, user.Email); err != nil {
		return err
	}

	// Hash the brand new password
	hashedPassword, err := service.hasher.Hash(context, newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	// Update the database with the new hash
	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}

	// Synchronous revocation is part of the operation's contract, not a
	// background side effect.
	if err := service.sessionRepository.RevokeAll(context, userID); err != nil {
		return fmt.Errorf("auth_service_change_password_revoke_failed: %w", err)
	}

	_ = service.auditRecorder.Record(context, EventPasswordChanged, userID, nil)

	return nil
}

/*
VerifyEmail confirms a user's email address using a secure token.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - err: Database or resolution errors
*/
func (service *Service) VerifyEmail(context context.Context, token string) error {

	// Retrieve the user ID associated with the verification token from Redis
	userID, err := service.verificationTokenRepository.Get(context, token)
	if err != nil {
		return err
	}

	// Update the user's status to verified in persistent storage
	if err := service.userRepository.MarkVerified(context, userID); err != nil {
		return fmt.Errorf("auth_service_verify_email_failed: %w", err)
	}

	_ = service.auditRecorder.Record(context, EventEmailVerified, userID, nil)

	// Cleanup the used verification token from Redis
	_ = service.verificationTokenRepository.Delete(context, token)

	return nil
}

// # Administration

/*
SetUserStatus activates or deactivates an account.

Description: Deactivation also revokes every live session, so the kill
switch takes effect immediately rather than at access-token expiry.

Parameters:
  - context: context.Context
  - actorID: string (administrator performing the change)
  - userID: string
  - isActive: bool

Returns:
  - err: NotFound or storage failures
*/
func (service *Service) SetUserStatus(context context.Context, actorID, userID string, isActive bool) error {
	if _, err := service.userRepository.FindByID(context, userID); err != nil {
		return err
	}

	if err := service.userRepository.SetActive(context, userID, isActive); err != nil {
		return err
	}

	if !isActive {
		if err := service.sessionRepository.RevokeAll(context, userID); err != nil {
			return fmt.Errorf("auth_service_deactivate_revoke_failed: %w", err)
		}
	}

	_ = service.auditRecorder.Record(context, EventStatusChanged, userID, map[string]any{
		"actor_id":  actorID,
		"is_active": isActive,
	})

	return nil
}

/*
SetUserRole replaces an account's role.

Parameters:
  - context: context.Context
  - actorID: string (administrator performing the change)
  - userID: string
  - role: string

Returns:
  - err: Validation, NotFound, or storage failures
*/
func (service *Service) SetUserRole(context context.Context, actorID, userID, role string) error {
	parsed, err := sec.ParseRole(role)
	if err != nil {
		return apperr.ValidationError("Unknown role", apperr.FieldError{
			Field:   FieldRole,
			Message: "Must be one of: ADMIN, EDITOR, VIEWER",
		})
	}

	if _, err := service.userRepository.FindByID(context, userID); err != nil {
		return err
	}

	if err := service.userRepository.SetRole(context, userID, string(parsed)); err != nil {
		return err
	}

	_ = service.auditRecorder.Record(context, EventRoleChanged, userID, map[string]any{
		"actor_id": actorID,
		FieldRole:  string(parsed),
	})

	return nil
}

/*
ListAuditEntries returns a page of the audit log for administrative review.

Parameters:
  - context: context.Context
  - filter: AuditFilter
  - params: pagination.Params

Returns:
  - []*AuditEntry: One page of entries, newest first
  - int: Total matching count
  - err: Retrieval failures
*/
func (service *Service) ListAuditEntries(context context.Context, filter AuditFilter, params pagination.Params) ([]*AuditEntry, int, error) {
	return service.auditRepository.List(context, filter, params)
}

// # Maintenance

/*
Sweep reclaims storage that can no longer influence any decision.

Description: Deletes expired session rows and attempt rows older than the
retention horizon. Run periodically from the server process.

Parameters:
  - context: context.Context

Returns:
  - err: Cleanup failures
*/
func (service *Service) Sweep(context context.Context) error {
	if err := service.sessionRepository.DeleteExpired(context); err != nil {
		return fmt.Errorf("auth_service_sweep_sessions_failed: %w", err)
	}

	cutoff := time.Now().Add(-AttemptRetention)
	if err := service.attemptRepository.DeleteOlderThan(context, cutoff); err != nil {
		return fmt.Errorf("auth_service_sweep_attempts_failed: %w", err)
	}

	return nil
}
