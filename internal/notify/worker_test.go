// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/internal/metrics"
	"github.com/MKhiriev/traveltrek/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: Sender
// ─────────────────────────────────────────────

type mockSender struct {
	mu     sync.Mutex
	sendFn func(ctx context.Context, n models.Notification) error
	sent   []models.Notification
}

func (m *mockSender) Send(ctx context.Context, n models.Notification) error {
	m.mu.Lock()
	m.sent = append(m.sent, n)
	m.mu.Unlock()
	if m.sendFn != nil {
		return m.sendFn(ctx, n)
	}
	return nil
}

func (m *mockSender) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// ─────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────

func TestWorker_Process_Success(t *testing.T) {
	metrics.NotificationsTotal.Reset()
	q := NewMemoryQueue(4)
	email := &mockSender{}
	w := NewWorker(q, map[models.Channel]Sender{models.ChannelEmail: email}, 3, 0, logger.Nop())

	w.Process(context.Background(), sampleNotification())

	require.Equal(t, 1, email.calls())
	assert.Equal(t, 1, email.sent[0].Attempts)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.NotificationsTotal.WithLabelValues("email", metrics.OutcomeSent)))
}

func TestWorker_Process_RetryThenDeadLetter(t *testing.T) {
	metrics.NotificationsTotal.Reset()
	ctx := context.Background()
	q := NewMemoryQueue(4)
	failing := &mockSender{sendFn: func(context.Context, models.Notification) error {
		return errors.New("smtp down")
	}}
	w := NewWorker(q, map[models.Channel]Sender{models.ChannelEmail: failing}, 3, 0, logger.Nop())

	w.Process(ctx, sampleNotification())
	for i := 0; i < 2; i++ {
		n, ok, err := q.Pop(ctx)
		require.NoError(t, err)
		require.True(t, ok, "attempt %d should have been re-queued", i+2)
		w.Process(ctx, n)
	}

	length, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, length)
	assert.Equal(t, 3, failing.calls())

	dead := q.DeadLetters()
	require.Len(t, dead, 1)
	assert.Equal(t, 3, dead[0].Attempts)
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.NotificationsTotal.WithLabelValues("email", metrics.OutcomeRetried)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.NotificationsTotal.WithLabelValues("email", metrics.OutcomeDeadLetter)))
}

func TestWorker_Process_NoSender(t *testing.T) {
	q := NewMemoryQueue(1)
	w := NewWorker(q, map[models.Channel]Sender{}, 1, 0, logger.Nop())

	n := sampleNotification()
	n.Channel = models.ChannelPush
	w.Process(context.Background(), n)

	require.Len(t, q.DeadLetters(), 1)
}

func TestWorker_Process_ShutdownDuringRetryDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	q := NewMemoryQueue(1)
	failing := &mockSender{sendFn: func(context.Context, models.Notification) error {
		return errors.New("boom")
	}}
	w := NewWorker(q, map[models.Channel]Sender{models.ChannelEmail: failing}, 3, time.Hour, logger.Nop())

	w.Process(ctx, sampleNotification())
	w.retries.Wait()

	assert.Len(t, q.DeadLetters(), 1)
}

func TestWorker_Run_RetryDelayDoesNotBlockQueue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := NewMemoryQueue(4)
	delivered := make(chan models.Notification, 4)
	email := &mockSender{sendFn: func(_ context.Context, n models.Notification) error {
		if n.Recipient == "down@example.com" {
			return errors.New("mailbox unavailable")
		}
		delivered <- n
		return nil
	}}
	w := NewWorker(q, map[models.Channel]Sender{models.ChannelEmail: email}, 3, time.Hour, logger.Nop())

	failing := sampleNotification()
	failing.Recipient = "down@example.com"
	require.NoError(t, q.Push(ctx, failing))
	require.NoError(t, q.Push(ctx, sampleNotification()))

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	select {
	case n := <-delivered:
		assert.Equal(t, "member@example.com", n.Recipient)
	case <-time.After(time.Second):
		t.Fatal("a job waiting to retry held up the queue")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}

	dead := q.DeadLetters()
	require.Len(t, dead, 1)
	assert.Equal(t, "down@example.com", dead[0].Recipient)
}

func TestWorker_Run_DeliversUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := NewMemoryQueue(4)
	delivered := make(chan models.Notification, 4)
	email := &mockSender{sendFn: func(_ context.Context, n models.Notification) error {
		delivered <- n
		return nil
	}}
	w := NewWorker(q, map[models.Channel]Sender{models.ChannelEmail: email}, 3, 0, logger.Nop())

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	require.NoError(t, q.Push(ctx, sampleNotification()))

	select {
	case n := <-delivered:
		assert.Equal(t, "member@example.com", n.Recipient)
	case <-time.After(time.Second):
		t.Fatal("notification was not delivered")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
