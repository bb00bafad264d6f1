package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEntryModel is one receivable posting against a party.
// The outstanding balance of a party is the sum of debit minus credit
// over postings dated on or before the as-of date.
type LedgerEntryModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PartyID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_party_date"`
	PostingDate time.Time       `gorm:"not null;index:idx_ledger_party_date"`
	Debit       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Credit      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	VoucherNo   string          `gorm:"type:varchar(50)"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}
