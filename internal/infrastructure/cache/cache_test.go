package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surgishop/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestBalanceKey(t *testing.T) {
	id := uuid.MustParse("6f1d2c9e-0a4b-4c1e-9d0f-2b7a3e5c8d11")
	asOf := time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, "6f1d2c9e-0a4b-4c1e-9d0f-2b7a3e5c8d11:2026-10-14", BalanceKey(id, asOf))
}

func TestInMemoryBalanceCache(t *testing.T) {
	c := NewInMemoryBalanceCache(time.Hour)
	defer c.Close()

	ctx := context.Background()

	t.Run("miss on unknown key", func(t *testing.T) {
		_, ok, err := c.Get(ctx, "unknown")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("hit returns stored value", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k1", decimal.RequireFromString("-12.5"), time.Hour))

		v, ok, err := c.Get(ctx, "k1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, v.Equal(decimal.RequireFromString("-12.5")))
	})

	t.Run("expired value is a miss", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k2", decimal.NewFromInt(5), 10*time.Millisecond))
		time.Sleep(20 * time.Millisecond)

		_, ok, err := c.Get(ctx, "k2")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("cleanup drops expired entries", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k3", decimal.NewFromInt(1), time.Millisecond))
		time.Sleep(5 * time.Millisecond)
		c.cleanup()

		assert.Equal(t, 1, c.Size())
	})
}

func TestInMemoryBalanceCache_CloseIsIdempotent(t *testing.T) {
	c := NewInMemoryBalanceCache(0)
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

func TestRedisBalanceCache_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	c := NewRedisBalanceCacheWithClient(client, "")
	defer c.Close()

	_, ok, err := c.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, ok)

	assert.Error(t, c.Set(context.Background(), "k", decimal.NewFromInt(1), time.Second))
}

func TestNewBalanceCache(t *testing.T) {
	t.Run("disabled redis uses memory", func(t *testing.T) {
		c := NewBalanceCache(context.Background(), config.RedisConfig{Enabled: false, BalanceTTL: time.Second}, nil)
		defer c.Close()

		_, ok := c.(*InMemoryBalanceCache)
		assert.True(t, ok)
	})

	t.Run("unreachable redis falls back with a warning", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		cfg := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1, BalanceTTL: time.Second}

		c := NewBalanceCache(context.Background(), cfg, zap.New(core))
		defer c.Close()

		_, ok := c.(*InMemoryBalanceCache)
		assert.True(t, ok)
		assert.Equal(t, 1, logs.Len())
	})
}
