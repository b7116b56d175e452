// Copyright (c) 2026 Aegis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// # Password Hashing

// dummySecret feeds the pre-computed digest used for timing equalization.
const dummySecret = "aegis-dummy-credential-0000"

// Hasher performs bcrypt operations through a bounded worker gate.
//
// # Why a gate?
//
// bcrypt is deliberately CPU-expensive. Under a login burst, unbounded
// concurrent comparisons would starve every other request on the box.
// The gate caps concurrent hash work; excess callers wait (or give up
// when their request context is canceled).
type Hasher struct {
	slots chan struct{}

	// dummyHash is compared against on unknown-email logins so that the
	// request costs a bcrypt verification either way. Without it, an
	// attacker could enumerate accounts by timing the login endpoint.
	dummyHash string
}

// NewHasher creates a Hasher allowing at most workers concurrent bcrypt calls.
func NewHasher(workers int) (*Hasher, error) {
	if workers < 1 {
		workers = 1
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte(dummySecret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to prepare dummy hash: %w", err)
	}

	return &Hasher{
		slots:     make(chan struct{}, workers),
		dummyHash: string(dummy),
	}, nil
}

// Hash hashes a plain-text password using the bcrypt algorithm.
// Default cost is used for balance between security and CPU utilization
// during registration spikes.
func (h *Hasher) Hash(ctx context.Context, plainTextPassword string) (string, error) {
	if err := h.acquire(ctx); err != nil {
		return "", err
	}
	defer h.release()

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Compare compares a plain-text password with its hashed version.
// bcrypt's comparison is constant-time with respect to the password.
func (h *Hasher) Compare(ctx context.Context, existingHash, plainTextPassword string) (bool, error) {
	if err := h.acquire(ctx); err != nil {
		return false, err
	}
	defer h.release()

	return bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword)) == nil, nil
}

// CompareDummy burns one bcrypt verification against a fixed digest.
// Called when the looked-up account does not exist, so that known and
// unknown emails cost the same on the login path.
func (h *Hasher) CompareDummy(ctx context.Context) error {
	if err := h.acquire(ctx); err != nil {
		return err
	}
	defer h.release()

	_ = bcrypt.CompareHashAndPassword([]byte(h.dummyHash), []byte(dummySecret+"-miss"))
	return nil
}

func (h *Hasher) acquire(ctx context.Context) error {
	select {
	case h.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("sec: hash slot wait aborted: %w", ctx.Err())
	}
}

func (h *Hasher) release() {
	<-h.slots
}

// # Opaque Tokens

// GenerateSecureToken returns byteLength cryptographically random bytes
// encoded as a URL-safe base64 string.
func GenerateSecureToken(byteLength int) (string, error) {
	raw := make([]byte, byteLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// HashToken returns the hex-encoded SHA-256 digest of an opaque token.
//
// Only this digest is ever persisted; the raw token exists solely in the
// client's hands and in the response that delivered it.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
