package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/surgishop/backend/internal/infrastructure/config"
)

const defaultKeyPrefix = "ledger:balance:"

// RedisBalanceCache implements BalanceCache using Redis so that every
// instance serves the same cached balance
type RedisBalanceCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisBalanceCache connects to Redis and verifies the connection
func NewRedisBalanceCache(ctx context.Context, cfg config.RedisConfig) (*RedisBalanceCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisBalanceCacheWithClient(client, ""), nil
}

// NewRedisBalanceCacheWithClient wraps an existing client
func NewRedisBalanceCacheWithClient(client *redis.Client, keyPrefix string) *RedisBalanceCache {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisBalanceCache{client: client, keyPrefix: keyPrefix}
}

// Get reads a cached balance. A missing key is a miss, not an error.
func (c *RedisBalanceCache) Get(ctx context.Context, key string) (decimal.Decimal, bool, error) {
	raw, err := c.client.Get(ctx, c.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to read cached balance: %w", err)
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("corrupt cached balance %q: %w", raw, err)
	}
	return value, true, nil
}

// Set writes a balance with expiry
func (c *RedisBalanceCache) Set(ctx context.Context, key string, value decimal.Decimal, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.keyPrefix+key, value.String(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache balance: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisBalanceCache) Close() error {
	return c.client.Close()
}

// Ensure RedisBalanceCache implements BalanceCache
var _ BalanceCache = (*RedisBalanceCache)(nil)
