package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/internal/metrics"
	"github.com/MKhiriev/traveltrek/models"
)

// Worker drains a Queue and routes each job to the sender of its channel.
// A failed job is pushed back after retryDelay until maxAttempts, then it
// is dead-lettered. The delay runs off the consumer loop, so one failing
// channel does not hold up the jobs queued behind it.
type Worker struct {
	queue       Queue
	senders     map[models.Channel]Sender
	maxAttempts int
	retryDelay  time.Duration
	logger      *logger.Logger

	// retries tracks jobs waiting out their retry delay.
	retries sync.WaitGroup
}

func NewWorker(queue Queue, senders map[models.Channel]Sender, maxAttempts int, retryDelay time.Duration, log *logger.Logger) *Worker {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Worker{
		queue:       queue,
		senders:     senders,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		logger:      log,
	}
}

func (w *Worker) Run(ctx context.Context) {
	w.logger.Info().Msg("notification worker started")

	for {
		if ctx.Err() != nil {
			w.retries.Wait()
			w.logger.Info().Msg("notification worker stopped")
			return
		}

		n, ok, err := w.queue.Pop(ctx)
		if err != nil {
			w.logger.Err(err).Msg("failed to pop notification")
			sleep(ctx, time.Second)
			continue
		}
		if !ok {
			continue
		}

		w.Process(ctx, n)
	}
}

// Process makes one delivery attempt for n.
func (w *Worker) Process(ctx context.Context, n models.Notification) {
	n.Attempts++
	channel := string(n.Channel)

	err := w.send(ctx, n)
	if err == nil {
		metrics.RecordNotification(channel, metrics.OutcomeSent)
		w.logger.Debug().Str("kind", n.Kind).Str("channel", channel).Int("attempt", n.Attempts).Msg("notification sent")
		return
	}

	log := w.logger.Warn().Err(err).Str("kind", n.Kind).Str("channel", channel).Int("attempt", n.Attempts)

	if n.Attempts < w.maxAttempts {
		log.Msg("notification failed, retrying")
		metrics.RecordNotification(channel, metrics.OutcomeRetried)
		if w.retryDelay <= 0 {
			w.requeue(ctx, n, err)
			return
		}
		w.retries.Go(func() { w.requeue(ctx, n, err) })
		return
	}

	log.Msg("notification failed, giving up")
	w.deadLetter(ctx, n, err)
}

// requeue pushes n back after the retry delay. A job still waiting at
// shutdown is dead-lettered.
func (w *Worker) requeue(ctx context.Context, n models.Notification, cause error) {
	if !sleep(ctx, w.retryDelay) {
		w.deadLetter(context.WithoutCancel(ctx), n, fmt.Errorf("shutdown before retry: %w", cause))
		return
	}
	if err := w.queue.Push(ctx, n); err != nil {
		w.deadLetter(context.WithoutCancel(ctx), n, err)
	}
}

func (w *Worker) send(ctx context.Context, n models.Notification) error {
	sender, ok := w.senders[n.Channel]
	if !ok || sender == nil {
		return fmt.Errorf("%w: %s", ErrNoSender, n.Channel)
	}
	return sender.Send(ctx, n)
}

func (w *Worker) deadLetter(ctx context.Context, n models.Notification, cause error) {
	metrics.RecordNotification(string(n.Channel), metrics.OutcomeDeadLetter)
	if err := w.queue.DeadLetter(ctx, n, cause); err != nil {
		w.logger.Err(err).Str("kind", n.Kind).Str("channel", string(n.Channel)).Msg("failed to dead-letter notification")
	}
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
