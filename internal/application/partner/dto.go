package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/surgishop/backend/internal/domain/partner"
)

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	Code          string `json:"code" binding:"required,min=1,max=50"`
	Name          string `json:"name" binding:"required,min=1,max=200"`
	FacilityType  string `json:"facility_type" binding:"omitempty,facility_type"`
	OverdueDays   int    `json:"overdue_days"`
	AccountLocked bool   `json:"account_locked"`
}

// ChangeFacilityTypeRequest sets a customer's facility type
type ChangeFacilityTypeRequest struct {
	FacilityType string `json:"facility_type" binding:"required,facility_type"`
}

// SetOverdueDaysRequest updates the days-overdue counter
type SetOverdueDaysRequest struct {
	OverdueDays *int `json:"overdue_days" binding:"required"`
}

// SetAccountLockRequest updates the transaction lock flag
type SetAccountLockRequest struct {
	Locked *bool `json:"locked" binding:"required"`
}

// AddCreditLimitRequest appends a manual credit limit row
type AddCreditLimitRequest struct {
	Company     string          `json:"company" binding:"required,max=140"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
}

// CreditLimitResponse is one row of the limit table
type CreditLimitResponse struct {
	Index       int             `json:"idx"`
	Company     string          `json:"company"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID                 uuid.UUID             `json:"id"`
	Code               string                `json:"code"`
	Name               string                `json:"name"`
	FacilityType       string                `json:"facility_type"`
	CreditLimit        decimal.Decimal       `json:"credit_limit"`
	CreditLimits       []CreditLimitResponse `json:"credit_limits"`
	OutstandingBalance decimal.Decimal       `json:"outstanding_balance"`
	BalanceAsOf        *time.Time            `json:"balance_as_of,omitempty"`
	OverdueDays        int                   `json:"overdue_days"`
	AccountLocked      bool                  `json:"account_locked"`
	LockTier           partner.LockTier      `json:"lock_tier"`
	LockBanner         partner.Banner        `json:"lock_banner"`
	Version            int                   `json:"version"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

// ToCustomerResponse converts a domain customer to a response DTO
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	entries := c.Limits.Entries()
	limits := make([]CreditLimitResponse, len(entries))
	for i, e := range entries {
		limits[i] = CreditLimitResponse{Index: i, Company: e.Company, LimitAmount: e.LimitAmount}
	}
	return CustomerResponse{
		ID:                 c.ID,
		Code:               c.Code,
		Name:               c.Name,
		FacilityType:       c.FacilityType.String(),
		CreditLimit:        c.CreditLimit(),
		CreditLimits:       limits,
		OutstandingBalance: c.OutstandingBalance,
		BalanceAsOf:        c.BalanceAsOf,
		OverdueDays:        c.OverdueDays,
		AccountLocked:      c.AccountLocked,
		LockTier:           c.LockTier(),
		LockBanner:         c.LockBanner(),
		Version:            c.Version,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

// CustomerListResponse is a page of customers
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Total int64              `json:"total"`
}
