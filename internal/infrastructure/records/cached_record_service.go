package records

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/surgishop/backend/internal/domain/ledger"
	"github.com/surgishop/backend/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// CachedRecordService serves balances from a short-lived cache. Field lookups
// always go to the next service since lock flags must be current.
// Cache failures degrade to a direct lookup.
type CachedRecordService struct {
	next   ledger.RecordService
	cache  cache.BalanceCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedRecordService wraps next with a balance cache. A non-positive ttl
// disables caching.
func NewCachedRecordService(next ledger.RecordService, c cache.BalanceCache, ttl time.Duration, logger *zap.Logger) *CachedRecordService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedRecordService{next: next, cache: c, ttl: ttl, logger: logger}
}

// FetchBalance returns a cached balance when present
func (s *CachedRecordService) FetchBalance(ctx context.Context, partyID uuid.UUID, asOf time.Time) (decimal.Decimal, error) {
	if s.cache == nil || s.ttl <= 0 {
		return s.next.FetchBalance(ctx, partyID, asOf)
	}

	key := cache.BalanceKey(partyID, asOf)
	if v, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("balance cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		return v, nil
	}

	balance, err := s.next.FetchBalance(ctx, partyID, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	if err := s.cache.Set(ctx, key, balance, s.ttl); err != nil {
		s.logger.Warn("balance cache write failed", zap.String("key", key), zap.Error(err))
	}
	return balance, nil
}

// FetchField delegates to the next service
func (s *CachedRecordService) FetchField(ctx context.Context, recordType string, id uuid.UUID, field string) (any, error) {
	return s.next.FetchField(ctx, recordType, id, field)
}

// Ensure CachedRecordService implements RecordService
var _ ledger.RecordService = (*CachedRecordService)(nil)
