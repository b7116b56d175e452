// Copyright (c) 2026 Aegis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/aegis/internal/users/auth"
)

/*
TestNewSessionInfo verifies the transport mapping and current-session flag.
*/
func TestNewSessionInfo(t *testing.T) {
	now := time.Now()
	session := &auth.Session{
		ID:            "session-1",
		UserID:        "user-1",
		TokenHash:     "secret-digest",
		UserAgent:     "test-agent",
		IPAddress:     "10.0.0.1",
		ExpiresAt:     now.Add(time.Hour),
		CreatedAt:     now,
		LastRotatedAt: now,
	}

	current := newSessionInfo(session, "session-1")
	assert.True(t, current.IsCurrent)
	assert.Equal(t, "session-1", current.ID)
	assert.Equal(t, "test-agent", current.UserAgent)
	assert.Equal(t, "10.0.0.1", current.IPAddress)

	other := newSessionInfo(session, "session-2")
	assert.False(t, other.IsCurrent)
}
