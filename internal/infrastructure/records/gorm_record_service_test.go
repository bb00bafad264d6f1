package records

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surgishop/backend/internal/domain/ledger"
	"github.com/surgishop/backend/internal/domain/partner"
	"github.com/surgishop/backend/internal/infrastructure/persistence/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func post(t *testing.T, db *gorm.DB, party uuid.UUID, at time.Time, debit, credit int64) {
	t.Helper()
	require.NoError(t, db.Create(&models.LedgerEntryModel{
		ID:          uuid.New(),
		PartyID:     party,
		PostingDate: at,
		Debit:       decimal.NewFromInt(debit),
		Credit:      decimal.NewFromInt(credit),
		CreatedAt:   time.Now(),
	}).Error)
}

func insertCustomer(t *testing.T, db *gorm.DB, code string, facility partner.FacilityType, overdue int, locked bool) uuid.UUID {
	t.Helper()
	c, err := partner.NewCustomer(code, "Customer "+code)
	require.NoError(t, err)
	c.FacilityType = facility
	c.OverdueDays = overdue
	c.AccountLocked = locked
	require.NoError(t, db.Create(models.CustomerModelFromDomain(c)).Error)
	return c.ID
}

func TestGormRecordService_FetchBalance(t *testing.T) {
	db := setupTestDB(t)
	svc := NewGormRecordService(db)
	ctx := context.Background()

	party := uuid.New()
	day := func(d int) time.Time { return time.Date(2026, 10, d, 9, 0, 0, 0, time.UTC) }
	post(t, db, party, day(1), 1000, 0)
	post(t, db, party, day(10), 0, 250)
	post(t, db, party, day(14), 500, 0)
	post(t, db, party, day(20), 9999, 0)
	post(t, db, uuid.New(), day(1), 7, 0)

	t.Run("includes postings through the as-of day", func(t *testing.T) {
		balance, err := svc.FetchBalance(ctx, party, time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(1250)), balance.String())
	})

	t.Run("earlier as-of excludes later postings", func(t *testing.T) {
		balance, err := svc.FetchBalance(ctx, party, time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(1000)), balance.String())
	})

	t.Run("credit balance is negative", func(t *testing.T) {
		creditor := uuid.New()
		post(t, db, creditor, day(2), 0, 300)

		balance, err := svc.FetchBalance(ctx, creditor, day(14))
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(-300)), balance.String())
	})

	t.Run("no postings is zero", func(t *testing.T) {
		balance, err := svc.FetchBalance(ctx, uuid.New(), day(14))
		require.NoError(t, err)
		assert.True(t, balance.IsZero())
	})
}

func TestGormRecordService_FetchField(t *testing.T) {
	db := setupTestDB(t)
	svc := NewGormRecordService(db)
	ctx := context.Background()

	locked := insertCustomer(t, db, "LOCKED", partner.FacilityTypeHospital, 55, true)
	open := insertCustomer(t, db, "OPEN", partner.FacilityTypeNone, 0, false)

	t.Run("lock flag", func(t *testing.T) {
		v, err := svc.FetchField(ctx, ledger.RecordTypeCustomer, locked, ledger.FieldAccountLocked)
		require.NoError(t, err)
		assert.True(t, ledger.Truthy(v))

		v, err = svc.FetchField(ctx, ledger.RecordTypeCustomer, open, ledger.FieldAccountLocked)
		require.NoError(t, err)
		assert.False(t, ledger.Truthy(v))
	})

	t.Run("overdue days", func(t *testing.T) {
		v, err := svc.FetchField(ctx, ledger.RecordTypeCustomer, locked, ledger.FieldOverdueDays)
		require.NoError(t, err)
		assert.Equal(t, int64(55), v)
	})

	t.Run("empty facility type is nil", func(t *testing.T) {
		v, err := svc.FetchField(ctx, ledger.RecordTypeCustomer, open, ledger.FieldFacilityType)
		require.NoError(t, err)
		assert.Nil(t, v)

		v, err = svc.FetchField(ctx, ledger.RecordTypeCustomer, locked, ledger.FieldFacilityType)
		require.NoError(t, err)
		assert.Equal(t, "Hospital", v)
	})

	t.Run("missing record is nil", func(t *testing.T) {
		v, err := svc.FetchField(ctx, ledger.RecordTypeCustomer, uuid.New(), ledger.FieldAccountLocked)
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		_, err := svc.FetchField(ctx, ledger.RecordTypeCustomer, locked, "name; DROP TABLE customers")
		assert.ErrorIs(t, err, ErrUnsupportedField)

		_, err = svc.FetchField(ctx, "Supplier", locked, ledger.FieldAccountLocked)
		assert.ErrorIs(t, err, ErrUnsupportedField)
	})

	t.Run("batch read", func(t *testing.T) {
		values, err := svc.FetchFields(ctx, ledger.RecordTypeCustomer, ledger.FieldAccountLocked, []uuid.UUID{locked, open, uuid.New()})
		require.NoError(t, err)
		assert.Len(t, values, 2)
		assert.Equal(t, true, values[locked])
		assert.Equal(t, false, values[open])
	})
}
