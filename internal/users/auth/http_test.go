// Copyright (c) 2026 Aegis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/aegis/internal/platform/constants"
	"github.com/taibuivan/aegis/internal/platform/ctxutil"
	"github.com/taibuivan/aegis/internal/platform/sec"
	"github.com/taibuivan/aegis/internal/users/auth"
)

// logoutRequest builds an authenticated POST /logout carrying the given
// identity, optionally with the refresh cookie attached.
func logoutRequest(claims *sec.AuthClaims, refreshToken string) *http.Request {
	request := httptest.NewRequest(http.MethodPost, "/logout", nil)
	request = request.WithContext(ctxutil.WithIdentity(request.Context(), claims))
	if refreshToken != "" {
		request.AddCookie(&http.Cookie{
			Name:  constants.RefreshTokenCookieName,
			Value: refreshToken,
		})
	}
	return request
}

/*
TestLogoutHandler verifies session termination through both transport shapes:
cookie-carrying browser clients and cookieless bearer clients, which resolve
the session from the access token's sid claim.
*/
func TestLogoutHandler(t *testing.T) {
	t.Run("with_refresh_cookie", func(t *testing.T) {
		env := newTestEnv(t)
		user := env.register(t, "a@x.gov", "correct-horse-7")
		login := env.login(t, "a@x.gov", "correct-horse-7", "10.0.0.1")

		router := auth.NewHandler(env.service).Routes()
		claims := &sec.AuthClaims{UserID: user.ID, Role: string(user.Role), SessionID: login.SessionID}

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, logoutRequest(claims, login.RefreshToken))

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		stored, err := env.sessions.FindByID(context.Background(), login.SessionID)
		require.NoError(t, err)
		assert.True(t, stored.IsRevoked)
	})

	t.Run("bearer_client_without_cookie", func(t *testing.T) {
		env := newTestEnv(t)
		user := env.register(t, "a@x.gov", "correct-horse-7")
		login := env.login(t, "a@x.gov", "correct-horse-7", "10.0.0.1")

		router := auth.NewHandler(env.service).Routes()
		claims := &sec.AuthClaims{UserID: user.ID, Role: string(user.Role), SessionID: login.SessionID}

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, logoutRequest(claims, ""))

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		stored, err := env.sessions.FindByID(context.Background(), login.SessionID)
		require.NoError(t, err)
		assert.True(t, stored.IsRevoked, "sid-claim fallback must revoke the session")
	})

	t.Run("already_terminated_session_stays_204", func(t *testing.T) {
		env := newTestEnv(t)
		user := env.register(t, "a@x.gov", "correct-horse-7")
		login := env.login(t, "a@x.gov", "correct-horse-7", "10.0.0.1")

		router := auth.NewHandler(env.service).Routes()
		claims := &sec.AuthClaims{UserID: user.ID, Role: string(user.Role), SessionID: login.SessionID}

		first := httptest.NewRecorder()
		router.ServeHTTP(first, logoutRequest(claims, ""))
		require.Equal(t, http.StatusNoContent, first.Code)

		second := httptest.NewRecorder()
		router.ServeHTTP(second, logoutRequest(claims, ""))
		assert.Equal(t, http.StatusNoContent, second.Code)
	})
}
