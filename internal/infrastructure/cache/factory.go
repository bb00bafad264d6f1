package cache

import (
	"context"

	"github.com/surgishop/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewBalanceCache picks Redis when enabled and reachable, otherwise an
// in-memory cache. Falling back is logged, never fatal.
func NewBalanceCache(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) BalanceCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		logger.Info("redis disabled, using in-memory balance cache")
		return NewInMemoryBalanceCache(cfg.BalanceTTL)
	}

	c, err := NewRedisBalanceCache(ctx, cfg)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory balance cache. "+
			"Instances will not share cached balances.",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		return NewInMemoryBalanceCache(cfg.BalanceTTL)
	}

	logger.Info("using Redis balance cache", zap.String("addr", cfg.Addr()))
	return c
}
