// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/traveltrek/models"
	"github.com/redis/go-redis/v9"
)

const (
	QueueKey      = "notifications"
	DeadLetterKey = "notifications:failed"

	popTimeout = 2 * time.Second
)

// deadLetter is the JSON document stored in the failed list.
type deadLetter struct {
	Notification models.Notification `json:"notification"`
	Error        string              `json:"error"`
	FailedAt     time.Time           `json:"failedAt"`
}

// RedisQueue is a Redis list shared by every replica. Producers LPUSH and
// the worker BRPOPs, so jobs are delivered in FIFO order.
type RedisQueue struct {
	client redis.UniversalClient
	now    func() time.Time
}

func NewRedisQueue(client redis.UniversalClient) *RedisQueue {
	return &RedisQueue{client: client, now: time.Now}
}

func (q *RedisQueue) Push(ctx context.Context, n models.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingJob, err)
	}
	if err = q.client.LPush(ctx, QueueKey, data).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrPushingJob, err)
	}
	return nil
}

// Pop waits up to popTimeout for a job. An empty wait is reported as
// ok=false with no error so the caller can re-check its context.
func (q *RedisQueue) Pop(ctx context.Context) (models.Notification, bool, error) {
	result, err := q.client.BRPop(ctx, popTimeout, QueueKey).Result()
	if errors.Is(err, redis.Nil) || ctx.Err() != nil {
		return models.Notification{}, false, nil
	}
	if err != nil {
		return models.Notification{}, false, fmt.Errorf("%w: %w", ErrPoppingJob, err)
	}
	if len(result) != 2 {
		return models.Notification{}, false, fmt.Errorf("%w: unexpected reply %v", ErrPoppingJob, result)
	}

	var n models.Notification
	if err = json.Unmarshal([]byte(result[1]), &n); err != nil {
		return models.Notification{}, false, fmt.Errorf("%w: %w", ErrDecodingJob, err)
	}
	return n, true, nil
}

func (q *RedisQueue) DeadLetter(ctx context.Context, n models.Notification, cause error) error {
	doc := deadLetter{Notification: n, FailedAt: q.now().UTC()}
	if cause != nil {
		doc.Error = cause.Error()
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingJob, err)
	}
	if err = q.client.LPush(ctx, DeadLetterKey, data).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrPushingJob, err)
	}
	return nil
}

func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, QueueKey).Result()
}
