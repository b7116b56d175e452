// Copyright (c) 2026 Aegis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, Session, LoginAttempt, AuditEntry)
and the logic for authentication, session rotation, and account lifecycle.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/taibuivan/aegis/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account on the Aegis platform.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	IsActive     bool         `json:"is_active"`
	IsVerified   bool         `json:"is_verified"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Session represents one refresh-token lineage (a device login).
//
// # One Row Per Lineage
//
// A session row is created at login and then mutated in place on every
// refresh: the token hash is swapped for the rotated token's hash under a
// compare-and-set condition. The row ID therefore identifies the whole
// lineage, and it doubles as the 'sid' claim in access tokens.
type Session struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	TokenHash     string    `json:"-"` // Hash of the currently valid refresh token. Omitted for security.
	OriginKey     string    `json:"origin_key"`
	UserAgent     string    `json:"user_agent"`
	IPAddress     string    `json:"ip_address"`
	ExpiresAt     time.Time `json:"expires_at"`
	IsRevoked     bool      `json:"is_revoked"`
	CreatedAt     time.Time `json:"created_at"`
	LastRotatedAt time.Time `json:"last_rotated_at"`
}

// LoginAttempt is one immutable row in the append-only attempt ledger.
//
// The lockout decision is always derived by querying this ledger; there is
// no mutable failure counter anywhere in the system.
type LoginAttempt struct {
	ID         string    `json:"id"`
	Identifier string    `json:"identifier"` // Normalized email, recorded even for unknown accounts.
	OriginKey  string    `json:"origin_key"`
	Succeeded  bool      `json:"succeeded"`
	CreatedAt  time.Time `json:"created_at"`
}

// AuditEntry records a security-relevant event.
type AuditEntry struct {
	ID        string         `json:"id"`
	EventType string         `json:"event_type"`
	UserID    string         `json:"user_id,omitempty"`
	Context   map[string]any `json:"context,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldRole            = "role"
	FieldToken           = "token"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldSessionID       = "session_id"
	FieldUser            = "user"
	FieldMessage         = "message"
)
