// Copyright (c) 2026 Aegis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"strings"

	"github.com/taibuivan/aegis/internal/platform/sec"
)

// # Refresh Token Format
//
// A refresh token is "<sessionID>.<secret>", where sessionID is the UUID of
// the session row and secret is a random URL-safe string. Only the SHA-256
// digest of the FULL token is ever persisted.
//
// Embedding the session ID lets the registry resolve the row with a primary
// key lookup even when the presented secret no longer matches — which is
// exactly the case that must be distinguished to detect token reuse.

// newRefreshToken mints a fresh opaque refresh token for a session lineage.
func newRefreshToken(sessionID string) (string, error) {
	secret, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return "", err
	}
	return sessionID + "." + secret, nil
}

// splitRefreshToken extracts the session ID from a presented refresh token.
// Returns ok=false for anything that does not match the expected shape.
func splitRefreshToken(token string) (sessionID string, ok bool) {
	sessionID, secret, found := strings.Cut(token, ".")
	if !found || sessionID == "" || secret == "" {
		return "", false
	}
	return sessionID, true
}
