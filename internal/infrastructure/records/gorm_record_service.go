// Package records implements the ledger record lookups against the local
// database and decorates them with caching and batching.
package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/surgishop/backend/internal/domain/ledger"
	"github.com/surgishop/backend/internal/domain/shared"
	"github.com/surgishop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// ErrUnsupportedField is returned for record types or fields not readable here
var ErrUnsupportedField = shared.NewDomainError("UNSUPPORTED_FIELD", "Record field is not readable")

// customerColumns whitelists the readable customer fields
var customerColumns = map[string]string{
	ledger.FieldAccountLocked: "account_locked",
	ledger.FieldOverdueDays:   "overdue_days",
	ledger.FieldFacilityType:  "facility_type",
}

// GormRecordService answers balance and field lookups from the ledger_entries
// and customers tables
type GormRecordService struct {
	db *gorm.DB
}

// NewGormRecordService creates a new GormRecordService
func NewGormRecordService(db *gorm.DB) *GormRecordService {
	return &GormRecordService{db: db}
}

// FetchBalance sums debit minus credit for postings dated on or before asOf.
// A party with no postings has a zero balance.
func (s *GormRecordService) FetchBalance(ctx context.Context, partyID uuid.UUID, asOf time.Time) (decimal.Decimal, error) {
	y, m, d := asOf.UTC().Date()
	cutoff := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	var total decimal.NullDecimal
	row := s.db.WithContext(ctx).Model(&models.LedgerEntryModel{}).
		Select("COALESCE(SUM(debit - credit), 0)").
		Where("party_id = ? AND posting_date < ?", partyID, cutoff).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("fetch balance for %s: %w", partyID, err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// FetchField reads one field of a record. A missing record yields nil.
func (s *GormRecordService) FetchField(ctx context.Context, recordType string, id uuid.UUID, field string) (any, error) {
	values, err := s.FetchFields(ctx, recordType, field, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	return values[id], nil
}

// FetchFields reads one field for many records in one query. Records that do
// not exist are absent from the result.
func (s *GormRecordService) FetchFields(ctx context.Context, recordType, field string, ids []uuid.UUID) (map[uuid.UUID]any, error) {
	if recordType != ledger.RecordTypeCustomer {
		return nil, ErrUnsupportedField
	}
	column, ok := customerColumns[field]
	if !ok {
		return nil, ErrUnsupportedField
	}

	out := make(map[uuid.UUID]any, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := s.db.WithContext(ctx).Model(&models.CustomerModel{}).
		Select("id", column).
		Where("id IN ?", ids).
		Rows()
	if err != nil {
		return nil, fmt.Errorf("fetch %s.%s: %w", recordType, field, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		value, err := scanField(rows, &id, field)
		if err != nil {
			return nil, fmt.Errorf("scan %s.%s: %w", recordType, field, err)
		}
		out[id] = value
	}
	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return out, nil
}

func scanField(rows *sql.Rows, id *uuid.UUID, field string) (any, error) {
	switch field {
	case ledger.FieldAccountLocked:
		var v bool
		if err := rows.Scan(id, &v); err != nil {
			return nil, err
		}
		return v, nil
	case ledger.FieldOverdueDays:
		var v int64
		if err := rows.Scan(id, &v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		var v sql.NullString
		if err := rows.Scan(id, &v); err != nil {
			return nil, err
		}
		if !v.Valid || v.String == "" {
			return nil, nil
		}
		return v.String, nil
	}
}

// Ensure GormRecordService implements RecordService
var _ ledger.RecordService = (*GormRecordService)(nil)
