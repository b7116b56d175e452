// Copyright (c) 2026 Aegis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/aegis/internal/users/auth"
)

/*
TestRecorder_Record verifies synchronous persistence with generated IDs and
timestamps.
*/
func TestRecorder_Record(t *testing.T) {
	repo := &fakeAuditRepository{}
	recorder := auth.NewRecorder(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer recorder.Close()

	err := recorder.Record(context.Background(), auth.EventLoginSuccess, "user-1", map[string]any{
		"session_id": "session-1",
	})
	require.NoError(t, err)

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, auth.EventLoginSuccess, entry.EventType)
	assert.Equal(t, "user-1", entry.UserID)
	assert.False(t, entry.CreatedAt.IsZero())
}

/*
TestRecorder_AsyncDrainsOnClose verifies that Close waits for every queued
entry to be persisted.
*/
func TestRecorder_AsyncDrainsOnClose(t *testing.T) {
	repo := &fakeAuditRepository{}
	recorder := auth.NewRecorder(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	for i := 0; i < 10; i++ {
		recorder.RecordAsync(auth.EventTokenRefresh, "user-1", nil)
	}

	recorder.Close()

	assert.Len(t, repo.entries, 10)
}

/*
TestRecorder_CloseIsIdempotent verifies that calling Close twice does not panic.
*/
func TestRecorder_CloseIsIdempotent(t *testing.T) {
	recorder := auth.NewRecorder(&fakeAuditRepository{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	recorder.Close()
	assert.NotPanics(t, func() { recorder.Close() })
}
