// Package ledger defines the port to the external record and accounting service.
// Balances and lock flags are owned by that service; this module only reads them.
package ledger

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Record types and fields readable through FetchField
const (
	RecordTypeCustomer = "Customer"

	FieldAccountLocked = "account_locked"
	FieldOverdueDays   = "overdue_days"
	FieldFacilityType  = "facility_type"
)

// RecordService is the remote lookup contract. Implementations must be safe for
// concurrent use; every call is a single best-effort attempt.
type RecordService interface {
	// FetchBalance returns the party balance on asOf. Negative means credit.
	FetchBalance(ctx context.Context, partyID uuid.UUID, asOf time.Time) (decimal.Decimal, error)
	// FetchField returns one field of a record, or nil when the record has no value
	FetchField(ctx context.Context, recordType string, id uuid.UUID, field string) (any, error)
}

// Truthy interprets a loosely typed flag value
func Truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case int:
		return b != 0
	case int64:
		return b != 0
	case float64:
		return b != 0
	case string:
		s := strings.TrimSpace(strings.ToLower(b))
		if s == "" {
			return false
		}
		if parsed, err := strconv.ParseBool(s); err == nil {
			return parsed
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n != 0
		}
		return true
	default:
		return true
	}
}
