// Copyright (c) 2026 Aegis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestRefreshToken_Format verifies that minted tokens embed the session ID and
round-trip through splitRefreshToken.
*/
func TestRefreshToken_Format(t *testing.T) {
	token, err := newRefreshToken("0198c5f2-1111-7abc-9def-0123456789ab")
	require.NoError(t, err)

	sessionID, ok := splitRefreshToken(token)
	assert.True(t, ok)
	assert.Equal(t, "0198c5f2-1111-7abc-9def-0123456789ab", sessionID)
}

/*
TestRefreshToken_Uniqueness verifies that two tokens for the same lineage
never share a secret.
*/
func TestRefreshToken_Uniqueness(t *testing.T) {
	first, err := newRefreshToken("lineage")
	require.NoError(t, err)
	second, err := newRefreshToken("lineage")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

/*
TestSplitRefreshToken_Malformed rejects every shape that is not "<id>.<secret>".
*/
func TestSplitRefreshToken_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"no_separator", "justonesegment"},
		{"empty_session", ".secret"},
		{"empty_secret", "session."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := splitRefreshToken(tt.token)
			assert.False(t, ok)
		})
	}
}
