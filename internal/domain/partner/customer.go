package partner

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/surgishop/backend/internal/domain/shared"
)

// Customer is the aggregate root for credit and lock state of a trading party.
//
// OverdueDays and AccountLocked are maintained by accounting. They are stored
// side by side but never derived from each other.
type Customer struct {
	shared.BaseAggregateRoot
	Code               string
	Name               string
	FacilityType       FacilityType
	Limits             CreditLimits
	OutstandingBalance decimal.Decimal
	BalanceAsOf        *time.Time
	OverdueDays        int
	AccountLocked      bool
}

// NewCustomer creates a new customer with required fields
func NewCustomer(code, name string) (*Customer, error) {
	if err := validateCustomerCode(code); err != nil {
		return nil, err
	}
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}

	customer := &Customer{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Code:               strings.ToUpper(code),
		Name:               name,
		OutstandingBalance: decimal.Zero,
	}
	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// SetFacilityType records the facility type without touching limits
func (c *Customer) SetFacilityType(facilityType FacilityType) {
	c.FacilityType = facilityType
	c.Touch()
}

// AssignFacilityLimit writes the facility ceiling into the primary limit entry.
// The entry is created for defaultCompany when the table is empty; other rows are
// left alone. Returns false, with no change, when no facility type is set.
func (c *Customer) AssignFacilityLimit(defaultCompany string) bool {
	if c.FacilityType == FacilityTypeNone {
		return false
	}
	amount := LimitForFacility(c.FacilityType)
	c.Limits.setPrimaryAmount(defaultCompany, amount)
	c.Touch()

	primary, _ := c.Limits.Primary()
	c.AddDomainEvent(NewCustomerCreditLimitAssignedEvent(c, primary))
	return true
}

// ChangeFacilityType sets the facility type and assigns its ceiling
func (c *Customer) ChangeFacilityType(facilityType FacilityType, defaultCompany string) bool {
	c.SetFacilityType(facilityType)
	return c.AssignFacilityLimit(defaultCompany)
}

// AddCreditLimit appends a manually entered limit row
func (c *Customer) AddCreditLimit(company string, amount decimal.Decimal) error {
	if strings.TrimSpace(company) == "" {
		return shared.NewDomainError("INVALID_COMPANY", "Company cannot be empty")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}
	c.Limits.append(NewLimitEntry(company, amount))
	c.Touch()
	return nil
}

// RemoveCreditLimit deletes the limit row at idx
func (c *Customer) RemoveCreditLimit(idx int) error {
	if !c.Limits.remove(idx) {
		return shared.NewDomainError("INVALID_LINE_INDEX", "Credit limit row does not exist")
	}
	c.Touch()
	return nil
}

// RecordBalance caches the outstanding balance reported by the ledger
func (c *Customer) RecordBalance(balance decimal.Decimal, asOf time.Time) {
	c.OutstandingBalance = balance
	day := asOf
	c.BalanceAsOf = &day
	c.AddDomainEvent(NewCustomerBalanceRefreshedEvent(c))
}

// SetOverdueDays updates the days-overdue counter
func (c *Customer) SetOverdueDays(days int) {
	c.OverdueDays = days
	c.Touch()
}

// SetAccountLocked updates the transaction lock flag
func (c *Customer) SetAccountLocked(locked bool) {
	if c.AccountLocked == locked {
		return
	}
	c.AccountLocked = locked
	c.Touch()
	c.AddDomainEvent(NewCustomerLockChangedEvent(c))
}

// LockTier returns the overdue severity tier
func (c *Customer) LockTier() LockTier {
	return LockTierFor(c.OverdueDays)
}

// LockBanner returns the banner descriptor for the current tier
func (c *Customer) LockBanner() Banner {
	return BannerFor(c.LockTier())
}

// CreditLimit returns the primary limit amount, zero when no entry exists
func (c *Customer) CreditLimit() decimal.Decimal {
	if primary, ok := c.Limits.Primary(); ok {
		return primary.LimitAmount
	}
	return decimal.Zero
}

func validateCustomerCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Customer code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Customer code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Customer code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateCustomerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}
