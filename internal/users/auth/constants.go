// Copyright (c) 2026 Aegis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// We keep it short (15m) to minimize the impact of a leaked token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a session/refresh token remains valid.
	// Long-lived (30 days) to provide a good user experience.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random secure token
	// appended after the session prefix.
	RefreshTokenLength = 32

	// VerificationTokenTTL is the duration an email verification token remains valid.
	// Long-lived (24 hours) as users might not check email immediately.
	VerificationTokenTTL = 24 * time.Hour

	// VerificationTokenLength is the byte length of the random verification token.
	VerificationTokenLength = 32

	// AttemptRetention is how long login attempt rows are kept before the
	// sweeper reclaims them. Must comfortably exceed any lockout window.
	AttemptRetention = 24 * time.Hour
)

// # Audit Event Types

const (
	EventUserRegistered     = "USER_REGISTERED"
	EventLoginSuccess       = "LOGIN_SUCCESS"
	EventLoginFailed        = "LOGIN_FAILURE"
	EventLoginLocked        = "ACCOUNT_LOCKED"
	EventTokenRefresh       = "TOKEN_REFRESH"
	EventTokenReuseDetected = "TOKEN_REUSE_DETECTED"
	EventLogout             = "LOGOUT"
	EventPasswordChanged    = "PASSWORD_CHANGED"
	EventSessionRevoked     = "SESSION_REVOKED"
	EventEmailVerified      = "EMAIL_VERIFIED"
	EventRoleChanged        = "ROLE_CHANGED"
	EventStatusChanged      = "STATUS_CHANGED"
)
