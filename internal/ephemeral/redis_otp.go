package ephemeral

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/traveltrek/models"
	"github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "otp"

// verifyOTPScript consumes the hash at KEYS[1] when its code equals ARGV[1].
// It returns the pending value on success and nil otherwise.
var verifyOTPScript = redis.NewScript(`
local code = redis.call('HGET', KEYS[1], 'code')
if not code then
	return false
end
if code ~= ARGV[1] then
	return false
end
local pending = redis.call('HGET', KEYS[1], 'pending')
redis.call('DEL', KEYS[1])
return pending
`)

// RedisOTPStore keeps each code in a hash whose TTL is the code lifetime.
type RedisOTPStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisOTPStore(client redis.UniversalClient, ttl time.Duration) *RedisOTPStore {
	return &RedisOTPStore{client: client, ttl: ttl}
}

func (s *RedisOTPStore) key(owner, purpose string) string {
	return fmt.Sprintf("%s:%s:%s", otpKeyPrefix, owner, purpose)
}

func (s *RedisOTPStore) Store(ctx context.Context, owner, purpose, pendingValue, code string) error {
	key := s.key(owner, purpose)

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, "code", code, "pending", pendingValue)
		pipe.PExpire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoringCode, err)
	}
	return nil
}

func (s *RedisOTPStore) Verify(ctx context.Context, owner, purpose, code string) (models.OTPResult, error) {
	pending, err := verifyOTPScript.Run(ctx, s.client, []string{s.key(owner, purpose)}, code).Text()
	if errors.Is(err, redis.Nil) {
		return models.OTPResult{}, nil
	}
	if err != nil {
		return models.OTPResult{}, fmt.Errorf("%w: %w", ErrVerifyingCode, err)
	}
	return models.OTPResult{Valid: true, PendingValue: pending}, nil
}

// Sweep is a no-op: Redis expires the hashes itself.
func (s *RedisOTPStore) Sweep(context.Context) (int, error) {
	return 0, nil
}
