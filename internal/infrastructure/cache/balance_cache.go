// Package cache holds short-lived copies of ledger balances so repeated form
// refreshes do not hit the accounting service for the same party and day.
package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceCache stores recently fetched balances
type BalanceCache interface {
	// Get returns the cached value and whether it was present
	Get(ctx context.Context, key string) (decimal.Decimal, bool, error)
	Set(ctx context.Context, key string, value decimal.Decimal, ttl time.Duration) error
	Close() error
}

// BalanceKey identifies a balance by party and calendar day
func BalanceKey(partyID uuid.UUID, asOf time.Time) string {
	return partyID.String() + ":" + asOf.Format(time.DateOnly)
}
