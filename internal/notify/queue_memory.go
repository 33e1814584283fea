package notify

import (
	"context"
	"sync"

	"github.com/MKhiriev/traveltrek/models"
)

const maxDeadLetters = 1000

// MemoryQueue is an in-process buffered channel. Jobs are lost on restart.
type MemoryQueue struct {
	jobs chan models.Notification

	mu   sync.Mutex
	dead []models.Notification
}

func NewMemoryQueue(size int) *MemoryQueue {
	if size < 1 {
		size = 1
	}
	return &MemoryQueue{jobs: make(chan models.Notification, size)}
}

// Push never blocks; it fails with ErrQueueFull when the buffer is full.
func (q *MemoryQueue) Push(_ context.Context, n models.Notification) error {
	select {
	case q.jobs <- n:
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *MemoryQueue) Pop(ctx context.Context) (models.Notification, bool, error) {
	select {
	case <-ctx.Done():
		return models.Notification{}, false, nil
	case n := <-q.jobs:
		return n, true, nil
	}
}

func (q *MemoryQueue) DeadLetter(_ context.Context, n models.Notification, _ error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.dead) >= maxDeadLetters {
		q.dead = q.dead[1:]
	}
	q.dead = append(q.dead, n)
	return nil
}

func (q *MemoryQueue) Len(context.Context) (int64, error) {
	return int64(len(q.jobs)), nil
}

// DeadLetters returns a copy of the parked notifications.
func (q *MemoryQueue) DeadLetters() []models.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]models.Notification, len(q.dead))
	copy(out, q.dead)
	return out
}
