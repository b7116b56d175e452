// Copyright (c) 2026 Aegis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles the authenticated user's self-service surface.

It provides functionalities for users to view their private identity data
and manage their active device sessions.

# Architecture

  - Entities: SessionInfo (DTO).
  - Domain: This package consumes the auth orchestrator exclusively; it
    never reaches the repositories directly.
  - Security: Provides session transparency and revocation mechanisms.
*/
package account

import (
	"time"

	"github.com/taibuivan/aegis/internal/users/auth"
)

// # Domain Entities

// SessionInfo provides a safety-mapped view of an active user session.
// It omits sensitive token hashes for transport.
type SessionInfo struct {
	ID            string    `json:"id"`
	UserAgent     string    `json:"user_agent"`
	IPAddress     string    `json:"ip_address"`
	CreatedAt     time.Time `json:"created_at"`
	LastRotatedAt time.Time `json:"last_rotated_at"`
	ExpiresAt     time.Time `json:"expires_at"`
	IsCurrent     bool      `json:"is_current"` // True if this session belongs to the current request
}

// newSessionInfo maps a domain session onto its transport view.
//
// The current session is identified by comparing against the 'sid' claim of
// the access token used to make the request.
func newSessionInfo(session *auth.Session, currentSessionID string) SessionInfo {
	return SessionInfo{
		ID:            session.ID,
		UserAgent:     session.UserAgent,
		IPAddress:     session.IPAddress,
		CreatedAt:     session.CreatedAt,
		LastRotatedAt: session.LastRotatedAt,
		ExpiresAt:     session.ExpiresAt,
		IsCurrent:     session.ID == currentSessionID,
	}
}
