// Copyright (c) 2026 Aegis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/aegis/internal/platform/apperr"
	"github.com/taibuivan/aegis/internal/platform/sec"
)

func newTestTokenService(t *testing.T) *sec.TokenService {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	return sec.NewTokenServiceFromKey(key, "aegis.test")
}

/*
TestTokenService_RoundTrip verifies that a generated token carries the
custom identity claims back through verification.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.GenerateAccessToken("user-1", "EDITOR", "session-1", 15*time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "EDITOR", claims.Role)
	assert.Equal(t, "session-1", claims.SessionID)
	assert.Equal(t, "aegis.test", claims.Issuer)
}

/*
TestTokenService_Expired verifies the TOKEN_EXPIRED mapping.
*/
func TestTokenService_Expired(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.GenerateAccessToken("user-1", "VIEWER", "session-1", -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeTokenExpired))
}

/*
TestTokenService_Tampered verifies that signature and format failures map to
TOKEN_MALFORMED.
*/
func TestTokenService_Tampered(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.GenerateAccessToken("user-1", "VIEWER", "session-1", 15*time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.jwt"},
		{"empty", ""},
		{"corrupted_signature", token + "AA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.VerifyToken(tt.token)
			require.Error(t, err)
			assert.True(t, apperr.HasCode(err, apperr.CodeTokenMalformed))
		})
	}
}

/*
TestTokenService_ForeignKey verifies that a token signed by a different key
pair is rejected.
*/
func TestTokenService_ForeignKey(t *testing.T) {
	signer := newTestTokenService(t)
	verifier := newTestTokenService(t)

	token, err := signer.GenerateAccessToken("user-1", "VIEWER", "session-1", 15*time.Minute)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeTokenMalformed))
}
