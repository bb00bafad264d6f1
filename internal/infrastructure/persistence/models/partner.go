package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/surgishop/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer aggregate root.
type CustomerModel struct {
	AggregateModel
	Code               string                     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name               string                     `gorm:"type:varchar(200);not null"`
	FacilityType       string                     `gorm:"type:varchar(50)"`
	OutstandingBalance decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	BalanceAsOf        *time.Time
	OverdueDays        int                        `gorm:"not null"`
	AccountLocked      bool                       `gorm:"not null"`
	CreditLimits       []CustomerCreditLimitModel `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// CustomerCreditLimitModel is one row of a customer's credit limit table.
// Idx preserves row order; row 0 is the facility-managed primary row.
type CustomerCreditLimitModel struct {
	CustomerID  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Idx         int             `gorm:"primaryKey;autoIncrement:false"`
	Company     string          `gorm:"type:varchar(140);not null"`
	LimitAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (CustomerCreditLimitModel) TableName() string {
	return "customer_credit_limits"
}

// ToDomain converts the persistence model to a domain Customer.
func (m *CustomerModel) ToDomain() *partner.Customer {
	entries := make([]partner.LimitEntry, len(m.CreditLimits))
	for i, row := range m.CreditLimits {
		entries[i] = partner.LimitEntry{Company: row.Company, LimitAmount: row.LimitAmount}
	}
	c := &partner.Customer{
		Code:               m.Code,
		Name:               m.Name,
		FacilityType:       partner.FacilityType(m.FacilityType),
		Limits:             partner.NewCreditLimits(entries),
		OutstandingBalance: m.OutstandingBalance,
		BalanceAsOf:        m.BalanceAsOf,
		OverdueDays:        m.OverdueDays,
		AccountLocked:      m.AccountLocked,
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Customer.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAggregateRoot(&c.BaseAggregateRoot)
	m.Code = c.Code
	m.Name = c.Name
	m.FacilityType = string(c.FacilityType)
	m.OutstandingBalance = c.OutstandingBalance
	m.BalanceAsOf = c.BalanceAsOf
	m.OverdueDays = c.OverdueDays
	m.AccountLocked = c.AccountLocked

	entries := c.Limits.Entries()
	m.CreditLimits = make([]CustomerCreditLimitModel, len(entries))
	for i, e := range entries {
		m.CreditLimits[i] = CustomerCreditLimitModel{
			CustomerID:  c.ID,
			Idx:         i,
			Company:     e.Company,
			LimitAmount: e.LimitAmount,
		}
	}
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
