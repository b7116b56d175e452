// Copyright (c) 2026 Aegis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/aegis/pkg/uuid"
)

// asyncQueueSize bounds how many pending async entries may be buffered.
const asyncQueueSize = 256

// asyncInsertTimeout caps how long a background insert may take.
const asyncInsertTimeout = 5 * time.Second

// Recorder writes audit entries with two delivery modes.
//
// # Sync vs Async
//
// Security-critical events (registration, lockout, reuse detection, password
// change) are recorded synchronously in the request path: if the insert
// fails, the operation reports the failure. High-frequency routine events
// (token refresh) go through a buffered queue drained by a background
// goroutine, so a slow audit table cannot add latency to every refresh.
// A full queue drops the entry and logs a warning rather than blocking.
type Recorder struct {
	repository AuditRepository
	logger     *slog.Logger

	queue     chan *AuditEntry
	waitGroup sync.WaitGroup
	closeOnce sync.Once
}

// NewRecorder constructs a Recorder and starts its background drain goroutine.
func NewRecorder(repository AuditRepository, logger *slog.Logger) *Recorder {
	recorder := &Recorder{
		repository: repository,
		logger:     logger,
		queue:      make(chan *AuditEntry, asyncQueueSize),
	}

	recorder.waitGroup.Add(1)
	go recorder.drain()

	return recorder
}

/*
Record synchronously persists one audit entry.

Parameters:
  - context: context.Context
  - eventType: string (one of the Event* constants)
  - userID: string (empty for anonymous events)
  - eventContext: map[string]any (JSONB payload, may be nil)

Returns:
  - error: Persistence failures
*/
func (recorder *Recorder) Record(context context.Context, eventType, userID string, eventContext map[string]any) error {
	entry := &AuditEntry{
		ID:        uuid.New(),
		EventType: eventType,
		UserID:    userID,
		Context:   eventContext,
		CreatedAt: time.Now(),
	}

	if err := recorder.repository.Insert(context, entry); err != nil {
		return fmt.Errorf("audit_record_failed: %w", err)
	}

	return nil
}

// RecordAsync enqueues an entry for background persistence.
// Never blocks the caller; drops the entry (with a warning) if the queue is full.
func (recorder *Recorder) RecordAsync(eventType, userID string, eventContext map[string]any) {
	entry := &AuditEntry{
		ID:        uuid.New(),
		EventType: eventType,
		UserID:    userID,
		Context:   eventContext,
		CreatedAt: time.Now(),
	}

	select {
	case recorder.queue <- entry:
	default:
		recorder.logger.Warn("audit_async_queue_full",
			slog.String("event_type", eventType),
			slog.String("user_id", userID),
		)
	}
}

// Close stops accepting async entries and waits for the queue to drain.
func (recorder *Recorder) Close() {
	recorder.closeOnce.Do(func() {
		close(recorder.queue)
	})
	recorder.waitGroup.Wait()
}

// drain persists queued entries until the queue is closed.
func (recorder *Recorder) drain() {
	defer recorder.waitGroup.Done()

	for entry := range recorder.queue {
		insertCtx, cancel := context.WithTimeout(context.Background(), asyncInsertTimeout)

		if err := recorder.repository.Insert(insertCtx, entry); err != nil {
			recorder.logger.Error("audit_async_insert_failed",
				slog.String("event_type", entry.EventType),
				slog.Any("error", err),
			)
		}

		cancel()
	}
}
