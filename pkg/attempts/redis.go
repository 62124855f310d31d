package attempts

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "slotta:login-attempts:"

// RedisCommands команды Redis, которые нужны трекеру.
// *redis.Client реализует интерфейс напрямую.
type RedisCommands interface {
	HIncrBy(ctx context.Context, key, field string, incr int64) *redis.IntCmd
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

var _ RedisCommands = (*redis.Client)(nil)

// RedisTracker хранилище попыток входа в Redis. Используется, когда
// сервис работает в несколько инстансов и in-memory счетчик бесполезен.
type RedisTracker struct {
	client RedisCommands
	policy Policy
}

// NewRedisTracker создает трекер попыток поверх Redis
func NewRedisTracker(client RedisCommands, policy Policy) *RedisTracker {
	return &RedisTracker{client: client, policy: policy}
}

// Record фиксирует неудачную попытку через HIncrBy + Expire. При достижении
// лимита ключ помечается blocked_until и живет до конца блокировки.
func (t *RedisTracker) Record(ctx context.Context, key string) error {
	redisKey := redisKeyPrefix + key

	count, err := t.client.HIncrBy(ctx, redisKey, "failed_count", 1).Result()
	if err != nil {
		return fmt.Errorf("attempts: record: %w", err)
	}

	if int(count) >= t.policy.MaxAttempts {
		blockedUntil := time.Now().Add(t.policy.BlockFor).Unix()
		if err := t.client.HSet(ctx, redisKey, "blocked_until", blockedUntil).Err(); err != nil {
			return fmt.Errorf("attempts: set block: %w", err)
		}
		if err := t.client.Expire(ctx, redisKey, t.policy.BlockFor+t.policy.Window).Err(); err != nil {
			return fmt.Errorf("attempts: expire: %w", err)
		}
		return nil
	}

	if err := t.client.Expire(ctx, redisKey, t.policy.Window).Err(); err != nil {
		return fmt.Errorf("attempts: expire: %w", err)
	}
	return nil
}

// IsBlocked возвращает true, если ключ сейчас заблокирован
func (t *RedisTracker) IsBlocked(ctx context.Context, key string) (bool, error) {
	raw, err := t.client.HGet(ctx, redisKeyPrefix+key, "blocked_until").Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("attempts: is blocked: %w", err)
	}

	var blockedUntil int64
	if _, err := fmt.Sscanf(raw, "%d", &blockedUntil); err != nil {
		return false, nil
	}
	return time.Now().Unix() < blockedUntil, nil
}

// Clear сбрасывает счетчик попыток
func (t *RedisTracker) Clear(ctx context.Context, key string) error {
	if err := t.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("attempts: clear: %w", err)
	}
	return nil
}
