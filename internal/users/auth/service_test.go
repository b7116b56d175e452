// Copyright (c) 2026 Aegis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/aegis/internal/platform/apperr"
	"github.com/taibuivan/aegis/internal/platform/sec"
	"github.com/taibuivan/aegis/internal/users/auth"
	"github.com/taibuivan/aegis/pkg/pagination"
)

// # In-Memory Fakes

type fakeUserRepository struct {
	byID    map[string]*auth.User
	byEmail map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byID:    make(map[string]*auth.User),
		byEmail: make(map[string]*auth.User),
	}
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := repo.byID[id]
	if !ok {
		return nil, apperr.NotFound("Account")
	}
	return user, nil
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	user, ok := repo.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("Account")
	}
	return user, nil
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	if _, exists := repo.byEmail[user.Email]; exists {
		return apperr.DuplicateEmail()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	repo.byID[user.ID] = user
	repo.byEmail[user.Email] = user
	return nil
}

func (repo *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := repo.byID[userID]
	if !ok {
		return apperr.NotFound("Account")
	}
	user.PasswordHash = newHash
	user.UpdatedAt = time.Now()
	return nil
}

func (repo *fakeUserRepository) SetActive(_ context.Context, userID string, isActive bool) error {
	user, ok := repo.byID[userID]
	if !ok {
		return apperr.NotFound("Account")
	}
	user.IsActive = isActive
	return nil
}

func (repo *fakeUserRepository) SetRole(_ context.Context, userID, role string) error {
	user, ok := repo.byID[userID]
	if !ok {
		return apperr.NotFound("Account")
	}
	user.Role = sec.UserRole(role)
	return nil
}

func (repo *fakeUserRepository) MarkVerified(_ context.Context, userID string) error {
	user, ok := repo.byID[userID]
	if !ok {
		return apperr.NotFound("Account")
	}
	user.IsVerified = true
	return nil
}

// fakeSessionRepository is mutex-guarded so the rotation CAS stays faithful
// under concurrent refresh calls.
type fakeSessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*auth.Session
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: make(map[string]*auth.Session)}
}

func (repo *fakeSessionRepository) Create(_ context.Context, session *auth.Session) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	now := time.Now()
	session.CreatedAt = now
	session.LastRotatedAt = now
	repo.sessions[session.ID] = session
	return nil
}

func (repo *fakeSessionRepository) FindByID(_ context.Context, sessionID string) (*auth.Session, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	session, ok := repo.sessions[sessionID]
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	// Callers get a snapshot, the way a row scan would produce one.
	snapshot := *session
	return &snapshot, nil
}

func (repo *fakeSessionRepository) Rotate(_ context.Context, sessionID, previousHash, newHash string, newExpiry time.Time) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	session, ok := repo.sessions[sessionID]
	if !ok {
		return false, nil
	}
	if session.IsRevoked || !session.ExpiresAt.After(time.Now()) || session.TokenHash != previousHash {
		return false, nil
	}
	session.TokenHash = newHash
	session.ExpiresAt = newExpiry
	session.LastRotatedAt = time.Now()
	return true, nil
}

func (repo *fakeSessionRepository) Revoke(_ context.Context, sessionID string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	session, ok := repo.sessions[sessionID]
	if !ok {
		return apperr.NotFound("Session")
	}
	session.IsRevoked = true
	return nil
}

func (repo *fakeSessionRepository) RevokeAll(_ context.Context, userID string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, session := range repo.sessions {
		if session.UserID == userID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (repo *fakeSessionRepository) RevokeOthers(_ context.Context, userID, currentSessionID string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, session := range repo.sessions {
		if session.UserID == userID && session.ID != currentSessionID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (repo *fakeSessionRepository) ListActiveByUser(_ context.Context, userID string) ([]*auth.Session, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	var active []*auth.Session
	for _, session := range repo.sessions {
		if session.UserID == userID && !session.IsRevoked && session.ExpiresAt.After(time.Now()) {
			snapshot := *session
			active = append(active, &snapshot)
		}
	}
	return active, nil
}

func (repo *fakeSessionRepository) DeleteExpired(_ context.Context) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for id, session := range repo.sessions {
		if !session.ExpiresAt.After(time.Now()) {
			delete(repo.sessions, id)
		}
	}
	return nil
}

type fakeAttemptRepository struct {
	attempts []*auth.LoginAttempt
}

func (repo *fakeAttemptRepository) Record(_ context.Context, attempt *auth.LoginAttempt) error {
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now()
	}
	repo.attempts = append(repo.attempts, attempt)
	return nil
}

func (repo *fakeAttemptRepository) CountRecentFailuresByIdentifier(_ context.Context, identifier string, since time.Time) (int, error) {
	return repo.countFailures(since, func(a *auth.LoginAttempt) bool { return a.Identifier == identifier }), nil
}

func (repo *fakeAttemptRepository) CountRecentFailuresByOrigin(_ context.Context, originKey string, since time.Time) (int, error) {
	return repo.countFailures(since, func(a *auth.LoginAttempt) bool { return a.OriginKey == originKey }), nil
}

func (repo *fakeAttemptRepository) DeleteOlderThan(_ context.Context, cutoff time.Time) error {
	var kept []*auth.LoginAttempt
	for _, attempt := range repo.attempts {
		if attempt.CreatedAt.After(cutoff) {
			kept = append(kept, attempt)
		}
	}
	repo.attempts = kept
	return nil
}

// countFailures mirrors the SQL: failures after the latest success for the
// same dimension, bounded by the window start.
func (repo *fakeAttemptRepository) countFailures(since time.Time, matches func(*auth.LoginAttempt) bool) int {
	var lastSuccess time.Time
	for _, attempt := range repo.attempts {
		if matches(attempt) && attempt.Succeeded && attempt.CreatedAt.After(lastSuccess) {
			lastSuccess = attempt.CreatedAt
		}
	}

	count := 0
	for _, attempt := range repo.attempts {
		if matches(attempt) && !attempt.Succeeded && attempt.CreatedAt.After(since) && attempt.CreatedAt.After(lastSuccess) {
			count++
		}
	}
	return count
}

type fakeAuditRepository struct {
	mu      sync.Mutex
	entries []*auth.AuditEntry
}

func (repo *fakeAuditRepository) Insert(_ context.Context, entry *auth.AuditEntry) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.entries = append(repo.entries, entry)
	return nil
}

func (repo *fakeAuditRepository) List(_ context.Context, filter auth.AuditFilter, params pagination.Params) ([]*auth.AuditEntry, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var matched []*auth.AuditEntry
	for _, entry := range repo.entries {
		if filter.EventType != "" && entry.EventType != filter.EventType {
			continue
		}
		if filter.UserID != "" && entry.UserID != filter.UserID {
			continue
		}
		matched = append(matched, entry)
	}
	return matched, len(matched), nil
}

// lastEntry returns the most recently inserted entry, or nil.
func (repo *fakeAuditRepository) lastEntry() *auth.AuditEntry {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if len(repo.entries) == 0 {
		return nil
	}
	return repo.entries[len(repo.entries)-1]
}

// eventTypes returns the recorded event types in insertion order.
func (repo *fakeAuditRepository) eventTypes() []string {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	types := make([]string, 0, len(repo.entries))
	for _, entry := range repo.entries {
		types = append(types, entry.EventType)
	}
	return types
}

func (repo *fakeAuditRepository) hasEvent(eventType string) bool {
	for _, recorded := range repo.eventTypes() {
		if recorded == eventType {
			return true
		}
	}
	return false
}

type fakeVerificationTokenRepository struct {
	tokens map[string]string
}

func newFakeVerificationTokenRepository() *fakeVerificationTokenRepository {
	return &fakeVerificationTokenRepository{tokens: make(map[string]string)}
}

func (repo *fakeVerificationTokenRepository) Set(_ context.Context, token, userID string, _ time.Duration) error {
	repo.tokens[token] = userID
	return nil
}

func (repo *fakeVerificationTokenRepository) Get(_ context.Context, token string) (string, error) {
	userID, ok := repo.tokens[token]
	if !ok {
		return "", apperr.NotFound("Verification token")
	}
	return userID, nil
}

func (repo *fakeVerificationTokenRepository) Delete(_ context.Context, token string) error {
	delete(repo.tokens, token)
	return nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, role, sessionID string, _ time.Duration) (string, error) {
	return "jwt." + userID + "." + role + "." + sessionID, nil
}

// # Test Harness

type testEnv struct {
	service  *auth.Service
	users    *fakeUserRepository
	sessions *fakeSessionRepository
	attempts *fakeAttemptRepository
	audit    *fakeAuditRepository
	verify   *fakeVerificationTokenRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	hasher, err := sec.NewHasher(2)
	require.NoError(t, err)

	env := &testEnv{
		users:    newFakeUserRepository(),
		sessions: newFakeSessionRepository(),
		attempts: &fakeAttemptRepository{},
		audit:    &fakeAuditRepository{},
		verify:   newFakeVerificationTokenRepository(),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	recorder := auth.NewRecorder(env.audit, logger)
	t.Cleanup(recorder.Close)

	env.service = auth.NewService(
		env.users,
		env.sessions,
		env.attempts,
		env.audit,
		env.verify,
		recorder,
		fakeTokenProvider{},
		hasher,
		auth.LockoutPolicy{Threshold: 5, Window: 15 * time.Minute},
	)

	return env
}

func (env *testEnv) register(t *testing.T, email, password string) *auth.User {
	t.Helper()
	user, err := env.service.Register(context.Background(), auth.RegisterInput{
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return user
}

func (env *testEnv) login(t *testing.T, email, password, origin string) *auth.LoginSession {
	t.Helper()
	session, err := env.service.Login(context.Background(), auth.LoginInput{
		Email:     email,
		Password:  password,
		OriginKey: origin,
		UserAgent: "test-agent",
		IPAddress: origin,
	})
	require.NoError(t, err)
	return session
}

// # Registration

/*
TestRegister_Success verifies enrollment with email normalization and the
default role.
*/
func TestRegister_Success(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.service.Register(context.Background(), auth.RegisterInput{
		Email:    "  Staff@Example.COM ",
		Password: "correct-horse-7",
	})

	require.NoError(t, err)
	assert.Equal(t, "staff@example.com", user.Email)
	assert.Equal(t, sec.RoleViewer, user.Role)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsVerified)
	assert.NotEqual(t, "correct-horse-7", user.PasswordHash)

	// A verification token was staged for the new account.
	assert.Len(t, env.verify.tokens, 1)
	assert.True(t, env.audit.hasEvent(auth.EventUserRegistered))
}

/*
TestRegister_DuplicateEmail verifies that re-registering the same address,
even with different casing, yields DUPLICATE_EMAIL.
*/
func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@x.gov", "correct-horse-7")

	_, err := env.service.Register(context.Background(), auth.RegisterInput{
		Email:    "A@X.GOV",
		Password: "another-pass-9",
	})

	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeDuplicateEmail))
}

/*
TestRegister_WeakPassword covers the password policy rules.
*/
func TestRegister_WeakPassword(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name     string
		password string
	}{
		{"too_short", "ab1"},
		{"no_digit", "onlyletters"},
		{"no_letter", "1234567890"},
		{"equals_email", "a1@x.gov"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.service.Register(context.Background(), auth.RegisterInput{
				Email:    "a1@x.gov",
				Password: tt.password,
			})

			require.Error(t, err)
			assert.True(t, apperr.HasCode(err, apperr.CodeWeakPassword))
		})
	}
}

/*
TestRegister_UnknownRole verifies that roles outside the closed set are rejected.
*/
func TestRegister_UnknownRole(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.Register(context.Background(), auth.RegisterInput{
		Email:    "a@x.gov",
		Password: "correct-horse-7",
		Role:     "SUPERUSER",
	})

	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

// # Login & Lockout

/*
TestLogin_Success verifies the happy path: tokens are issued, the session
lineage exists, and the refresh token embeds the session ID.
*/
func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@x.gov", "correct-horse-7")

	session := env.login(t, "a@x.gov", "correct-horse-7", "10.0.0.1")

	assert.NotEmpty(t, session.AccessToken)
	assert.True(t, strings.HasPrefix(session.RefreshToken, session.SessionID+"."))
	assert.Equal(t, user.ID, session.User.ID)

	stored, err := env.sessions.FindByID(context.Background(), session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, sec.HashToken(session.RefreshToken), stored.TokenHash)
	assert.True(t, env.audit.hasEvent(auth.EventLoginSuccess))
}

/*
TestLogin_InvalidCredentials verifies that an unknown email, a wrong password,
and a deactivated account all collapse into the same INVALID_CREDENTIALS error.
*/
func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@x.gov", "correct-horse-7")

	_, err := env.service.Login(context.Background(), auth.LoginInput{
		Email: "ghost@x.gov", Password: "whatever-pass-1", OriginKey: "10.0.0.1",
	})
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidCredentials), "unknown email")

	// Pre-authentication failures are audited too, with no resolved user.
	unresolved := env.audit.lastEntry()
	require.NotNil(t, unresolved)
	assert.Equal(t, auth.EventLoginFailed, unresolved.EventType)
	assert.Empty(t, unresolved.UserID)
	assert.Equal(t, "ghost@x.gov", unresolved.Context["identifier"])

	_, err = env.service.Login(context.Background(), auth.LoginInput{
		Email: "a@x.gov", Password: "wrong-password-1", OriginKey: "10.0.0.1",
	})
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidCredentials), "wrong password")

	require.NoError(t, env.users.SetActive(context.Background(), user.ID, false))
	_, err = env.service.Login(context.Background(), auth.LoginInput{
		Email: "a@x.gov", Password: "correct-horse-7", OriginKey: "10.0.0.1",
	})
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidCredentials), "deactivated account")
}

/*
TestLogin_LockoutAfterThreshold verifies the central throttling property:
once the identifier accumulates Threshold consecutive failures, even the
CORRECT password is rejected with RATE_LIMITED, and the locked attempt itself
extends the lock.
*/
func TestLogin_LockoutAfterThreshold(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@x.gov", "correct-horse-7")

	for i := 0; i < 5; i++ {
		_, err := env.service.Login(context.Background(), auth.LoginInput{
			Email: "a@x.gov", Password: "wrong-password-1", OriginKey: "10.0.0.1",
		})
		assert.True(t, apperr.HasCode(err, apperr.CodeInvalidCredentials))
	}

	// 6th attempt with the CORRECT password is still rejected.
	_, err := env.service.Login(context.Background(), auth.LoginInput{
		Email: "a@x.gov", Password: "correct-horse-7", OriginKey: "10.0.0.1",
	})
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeRateLimited))
	assert.True(t, env.audit.hasEvent(auth.EventLoginLocked))

	// The rejected attempt counts as a failure: the streak grew to 6.
	count, err := env.attempts.CountRecentFailuresByIdentifier(
		context.Background(), "a@x.gov", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 6, count)
}

/*
TestLogin_LockoutByOrigin verifies the second throttling dimension: one
origin probing many different accounts locks the origin key.
*/
func TestLogin_LockoutByOrigin(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "victim@x.gov", "correct-horse-7")

	// Five failures from one origin against five DIFFERENT identifiers.
	for _, email := range []string{"u1@x.gov", "u2@x.gov", "u3@x.gov", "u4@x.gov", "u5@x.gov"} {
		_, err := env.service.Login(context.Background(), auth.LoginInput{
			Email: email, Password: "guess-attempt-1", OriginKey: "6.6.6.6",
		})
		assert.True(t, apperr.HasCode(err, apperr.CodeInvalidCredentials))
	}

	// The origin is locked even for a fresh identifier with valid credentials.
	_, err := env.service.Login(context.Background(), auth.LoginInput{
		Email: "victim@x.gov", Password: "correct-horse-7", OriginKey: "6.6.6.6",
	})
	assert.True(t, apperr.HasCode(err, apperr.CodeRateLimited))

	// A different origin is unaffected.
	_, err = env.service.Login(context.Background(), auth.LoginInput{
		Email: "victim@x.gov", Password: "correct-horse-7", OriginKey: "10.0.0.9",
	})
	assert.NoError(t, err)
}

/*
TestLogin_SuccessResetsStreak verifies that a successful login resets the
consecutive-failure count for both dimensions.
*/
func TestLogin_SuccessResetsStreak(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@x.gov", "correct-horse-7")

	for i := 0; i < 4; i++ {
		_, _ = env.service.Login(context.Background(), auth.LoginInput{
			Email: "a@x.gov", Password: "wrong-password-1", OriginKey: "10.0.0.1",
		})
	}

	env.login(t, "a@x.gov", "correct-horse-7", "10.0.0.1")

	count, err := env.attempts.CountRecentFailuresByIdentifier(
		context.Background(), "a@x.gov", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, count)

	// Four more failures stay below the threshold: login still possible.
	for i := 0; i < 4; i++ {
		_, _ = env.service.Login(context.Background(), auth.LoginInput{
			Email: "a@x.gov", Password: "wrong-password-1", OriginKey: "10.0.0.1",
		})
	}
	env.login(t, "a@x.gov", "correct-horse-7", "10.0.0.1")
}

// # Refresh Token Rotation

/*
TestRefreshSession_Rotation verifies single-use semantics: a refresh yields a
new token, and the spent token is replaced in storage.
*/
func TestRefreshSession_Rotation(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@x.gov", "correct-horse-7")
	login := env.login(t, "a@x.gov", "correct-horse-7", "10.0.0.1")

	refreshed, err := env.service.RefreshSession(context.Background(), login.RefreshToken, "test-agent", "10.0.0.1")
	require.NoError(t, err)

	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
	assert.Equal(t, login.SessionID, refreshed.SessionID, "lineage is preserved across rotations")

	stored, err := env.sessions.FindByID(context.Background(), login.SessionID)
	require.NoError(t, err)
	assert.Equal(t, sec.HashToken(refreshed.RefreshToken), stored.TokenHash)
}

/*
TestRefreshSession_ReuseDetection verifies the theft response: presenting an
already-rotated token revokes the entire lineage, so the current token dies too.
*/
func TestRefreshSession_ReuseDetection(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@x.gov", "correct-horse-7")
	login := env.login(t, "a@x.gov", "correct-horse-7", "10.0.0.1")

	refreshed, err := env.service.RefreshSession(context.Background(), login.RefreshToken, "test-agent", "10.0.0.1")
	require.NoError(t, err)

	// Replay of the spent token.
	_, err = env.service.RefreshSession(context.Background(), login.RefreshToken, "test-agent", "6.6.6.6")
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeTokenReused))
	assert.True(t, env.audit.hasEvent(auth.EventTokenReuseDetected))

	// The legitimate holder's current token is dead as well.
	_, err = env.service.RefreshSession(context.Background(), refreshed.RefreshToken, "test-agent", "10.0.0.1")
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeTokenRevoked))
}

/*
TestRefreshSession_ConcurrentRotation verifies that two simultaneous
refreshes presenting the same token resolve to exactly one winner: the
conditional rotation admits one caller, the other is classified as reuse.
*/
func TestRefreshSession_ConcurrentRotation(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@x.gov", "correct-horse-7")
	login := env.login(t, "a@x.gov", "correct-horse-7", "10.0.0.1")

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.service.RefreshSession(context.Background(), login.RefreshToken, "test-agent", "10.0.0.1")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, reuses int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case apperr.HasCode(err, apperr.CodeTokenReused):
			reuses++
		default:
			t.Fatalf("unexpected refresh outcome: %v", err)
		}
	}

	assert.Equal(t, 1, successes, "exactly one rotation may win")
	assert.Equal(t, 1, reuses, "the losing rotation is treated as reuse")
	assert.True(t, env.audit.hasEvent(auth.EventTokenReuseDetected))
}

/*
TestRefreshSession_TokenStates covers the remaining rotation failure classes.
*/
func TestRefreshSession_TokenStates(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@x.gov", "correct-horse-7")

	t.Run("malformed_token", func(t *testing.T) {
		_, err := env.service.RefreshSession(context.Background(), "garbage", "test-agent", "10.0.0.1")
		assert.True(t, apperr.HasCode(err, apperr.CodeTokenMalformed))
	})

	t.Run("unknown_lineage", func(t *testing.T) {
		_, err := env.service.RefreshSession(context.Background(), "no-such-session.secret", "test-agent", "10.0.0.1")
		assert.True(t, apperr.HasCode(err, apperr.CodeTokenMalformed))
	})

	t.Run("expired_session", func(t *testing.T) {
		login := env.login(t, "a@x.gov", "correct-horse-7", "10.0.0.1")
		env.sessions.sessions[login.SessionID].ExpiresAt = time.Now().Add(-time.Minute)

		_, err := env.service.RefreshSession(context.Background(), login.RefreshToken, "test-agent", "10.0.0.1")
		assert.True(t, apperr.HasCode(err, apperr.CodeTokenExpired))
	})

	t.Run("revoked_session", func(t *testing.T) {
		login := env.login(t, "a@x.gov", "correct-horse-7", "10.0.0.1")
		require.NoError(t, env.sessions.Revoke(context.Background(), login.SessionID))

		_, err := env.service.RefreshSession(context.Background(), login.RefreshToken, "test-agent", "10.0.0.1")
		assert.True(t, apperr.HasCode(err, apperr.CodeTokenRevoked))
	})
}

/*
TestRefreshSession_DeactivatedUser verifies that a refresh for a deactivated
account revokes the session instead of issuing a token.
*/
func TestRefreshSession_DeactivatedUser(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@x.gov", "correct-horse-7")
	login := env.login(t, "a@x.gov", "correct-horse-7", "10.0.0.1")

	require.NoError(t, env.users.SetActive(context.Background(), user.ID, false))

	_, err := env.service.RefreshSession(context.Background(), login.RefreshToken, "test-agent", "10.0.0.1")
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeTokenRevoked))

	stored, err := env.sessions.FindByID(context.Background(), login.SessionID)
	require.NoError(t, err)
	assert.True(t, stored.IsRevoked)
}

// # Logout & Session Management

/*
TestLogout verifies idempotency and that only the CURRENT token can end a
session — a stale (rotated-away) token is a no-op.
*/
func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@x.gov", "correct-horse-7")

	t.Run("revokes_and_is_idempotent", func(t *testing.T) {
		login := env.login(t, "a@x.gov", "correct-horse-7", "10.0.0.1")

		require.NoError(t, env.service.Logout(context.Background(), login.RefreshToken))
		assert.True(t, env.sessions.sessions[login.SessionID].IsRevoked)

		// Second logout with the same token is still a success.
		require.NoError(t, env.service.Logout(context.Background(), login.RefreshToken))
	})

	t.Run("unknown_token_is_noop", func(t *testing.T) {
		require.NoError(t, env.service.Logout(context.Background(), "garbage"))
		require.NoError(t, env.service.Logout(context.Background(), "no-such-session.secret"))
	})

	t.Run("stale_token_does_not_revoke", func(t *testing.T) {
		login := env.login(t, "a@x.gov", "correct-horse-7", "10.0.0.1")
		_, err := env.service.RefreshSession(context.Background(), login.RefreshToken, "test-agent", "10.0.0.1")
		require.NoError(t, err)

		require.NoError(t, env.service.Logout(context.Background(), login.RefreshToken))
		assert.False(t, env.sessions.sessions[login.SessionID].IsRevoked)
	})
}

/*
TestRevokeSession_Ownership verifies that a user cannot revoke another user's
session.
*/
func TestRevokeSession_Ownership(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@x.gov", "correct-horse-7")
	other := env.register(t, "b@x.gov", "correct-horse-7")
	login := env.login(t, "a@x.gov", "correct-horse-7", "10.0.0.1")

	err := env.service.RevokeSession(context.Background(), other.ID, login.SessionID)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
	assert.False(t, env.sessions.sessions[login.SessionID].IsRevoked)
}

/*
TestRevokeOtherSessions verifies the "log out everywhere else" flow.
*/
func TestRevokeOtherSessions(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@x.gov", "correct-horse-7")

	first := env.login(t, "a@x.gov", "correct-horse-7", "10.0.0.1")
	second := env.login(t, "a@x.gov", "correct-horse-7", "10.0.0.2")
	third := env.login(t, "a@x.gov", "correct-horse-7", "10.0.0.3")

	require.NoError(t, env.service.RevokeOtherSessions(context.Background(), user.ID, second.SessionID))

	active, err := env.service.ListSessions(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, second.SessionID, active[0].ID)
	assert.True(t, env.sessions.sessions[first.SessionID].IsRevoked)
	assert.True(t, env.sessions.sessions[third.SessionID].IsRevoked)
}

// # Password Management

/*
TestChangePassword verifies current-password verification, policy
enforcement, and the revoke-all contract.
*/
func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@x.gov", "correct-horse-7")

	t.Run("wrong_current_password", func(t *testing.T) {
		err := env.service.ChangePassword(context.Background(), user.ID, "not-the-password-1", "new-password-9")
		assert.True(t, apperr.HasCode(err, apperr.CodeInvalidCredentials))
	})

	t.Run("weak_new_password", func(t *testing.T) {
		err := env.service.ChangePassword(context.Background(), user.ID, "correct-horse-7", "short")
		assert.True(t, apperr.HasCode(err, apperr.CodeWeakPassword))
	})

	t.Run("success_revokes_every_session", func(t *testing.T) {
		env.login(t, "a@x.gov", "correct-horse-7", "10.0.0.1")
		env.login(t, "a@x.gov", "correct-horse-7", "10.0.0.2")

		require.NoError(t, env.service.ChangePassword(context.Background(), user.ID, "correct-horse-7", "new-password-9"))

		active, err := env.service.ListSessions(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Empty(t, active)

		// Old password is gone, the new one works.
		_, err = env.service.Login(context.Background(), auth.LoginInput{
			Email: "a@x.gov", Password: "correct-horse-7", OriginKey: "10.0.0.1",
		})
		assert.True(t, apperr.HasCode(err, apperr.CodeInvalidCredentials))

		env.login(t, "a@x.gov", "new-password-9", "10.0.0.3")
		assert.True(t, env.audit.hasEvent(auth.EventPasswordChanged))
	})
}

// # Email Verification & Administration

/*
TestVerifyEmail verifies token resolution and single use.
*/
func TestVerifyEmail(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@x.gov", "correct-horse-7")

	var token string
	for stored := range env.verify.tokens {
		token = stored
	}
	require.NotEmpty(t, token)

	require.NoError(t, env.service.VerifyEmail(context.Background(), token))
	assert.True(t, env.users.byID[user.ID].IsVerified)

	// The token is consumed.
	err := env.service.VerifyEmail(context.Background(), token)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestSetUserStatus verifies that deactivation revokes live sessions immediately.
*/
func TestSetUserStatus(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@x.gov", "correct-horse-7")
	env.login(t, "a@x.gov", "correct-horse-7", "10.0.0.1")

	require.NoError(t, env.service.SetUserStatus(context.Background(), "admin-1", user.ID, false))

	assert.False(t, env.users.byID[user.ID].IsActive)
	active, err := env.service.ListSessions(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, active)
	assert.True(t, env.audit.hasEvent(auth.EventStatusChanged))
}

/*
TestSetUserRole verifies role replacement and closed-set enforcement.
*/
func TestSetUserRole(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@x.gov", "correct-horse-7")

	require.NoError(t, env.service.SetUserRole(context.Background(), "admin-1", user.ID, "EDITOR"))
	assert.Equal(t, sec.RoleEditor, env.users.byID[user.ID].Role)

	err := env.service.SetUserRole(context.Background(), "admin-1", user.ID, "OVERLORD")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

// # Maintenance

/*
TestSweep verifies reclamation of expired sessions and stale attempts.
*/
func TestSweep(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@x.gov", "correct-horse-7")
	login := env.login(t, "a@x.gov", "correct-horse-7", "10.0.0.1")

	env.sessions.sessions[login.SessionID].ExpiresAt = time.Now().Add(-time.Minute)
	env.attempts.attempts[0].CreatedAt = time.Now().Add(-48 * time.Hour)

	require.NoError(t, env.service.Sweep(context.Background()))

	_, err := env.sessions.FindByID(context.Background(), login.SessionID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.Empty(t, env.attempts.attempts)
}
