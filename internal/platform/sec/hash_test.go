// Copyright (c) 2026 Aegis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/aegis/internal/platform/sec"
)

/*
TestHasher_HashAndCompare verifies the bcrypt round trip.
*/
func TestHasher_HashAndCompare(t *testing.T) {
	hasher, err := sec.NewHasher(2)
	require.NoError(t, err)

	ctx := context.Background()
	hash, err := hasher.Hash(ctx, "correct-horse-7")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse-7", hash)

	match, err := hasher.Compare(ctx, hash, "correct-horse-7")
	require.NoError(t, err)
	assert.True(t, match)

	match, err = hasher.Compare(ctx, hash, "wrong-password-1")
	require.NoError(t, err)
	assert.False(t, match)
}

/*
TestHasher_CompareGarbageHash verifies that a corrupted stored hash reads as
a mismatch rather than an error.
*/
func TestHasher_CompareGarbageHash(t *testing.T) {
	hasher, err := sec.NewHasher(1)
	require.NoError(t, err)

	match, err := hasher.Compare(context.Background(), "not-a-bcrypt-hash", "whatever-1")
	require.NoError(t, err)
	assert.False(t, match)
}

/*
TestHasher_CompareDummy verifies the timing-equalization path completes.
*/
func TestHasher_CompareDummy(t *testing.T) {
	hasher, err := sec.NewHasher(1)
	require.NoError(t, err)

	assert.NoError(t, hasher.CompareDummy(context.Background()))
}

/*
TestGenerateSecureToken verifies randomness and URL-safety.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, "+")
	assert.NotContains(t, first, "/")
	assert.NotContains(t, first, "=")
}

/*
TestHashToken verifies the digest is deterministic and hex-encoded.
*/
func TestHashToken(t *testing.T) {
	digest := sec.HashToken("some-opaque-token")

	assert.Len(t, digest, 64)
	assert.Equal(t, digest, sec.HashToken("some-opaque-token"))
	assert.NotEqual(t, digest, sec.HashToken("another-token"))
}
