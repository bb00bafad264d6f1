package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/surgishop/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCustomer = "Customer"

// Event type constants
const (
	EventTypeCustomerCreated             = "CustomerCreated"
	EventTypeCustomerCreditLimitAssigned = "CustomerCreditLimitAssigned"
	EventTypeCustomerBalanceRefreshed    = "CustomerBalanceRefreshed"
	EventTypeCustomerLockChanged         = "CustomerLockChanged"
)

// CustomerCreatedEvent is published when a new customer is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(customer *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		Code:            customer.Code,
		Name:            customer.Name,
	}
}

// CustomerCreditLimitAssignedEvent signals that the limit table changed and
// should be repainted
type CustomerCreditLimitAssignedEvent struct {
	shared.BaseDomainEvent
	CustomerID   uuid.UUID       `json:"customer_id"`
	FacilityType FacilityType    `json:"facility_type"`
	Company      string          `json:"company"`
	LimitAmount  decimal.Decimal `json:"limit_amount"`
}

// NewCustomerCreditLimitAssignedEvent creates a new CustomerCreditLimitAssignedEvent
func NewCustomerCreditLimitAssignedEvent(customer *Customer, entry LimitEntry) *CustomerCreditLimitAssignedEvent {
	return &CustomerCreditLimitAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreditLimitAssigned, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		FacilityType:    customer.FacilityType,
		Company:         entry.Company,
		LimitAmount:     entry.LimitAmount,
	}
}

// CustomerBalanceRefreshedEvent is published when a fresh ledger balance was cached
type CustomerBalanceRefreshedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID       `json:"customer_id"`
	Balance    decimal.Decimal `json:"balance"`
	AsOf       time.Time       `json:"as_of"`
}

// NewCustomerBalanceRefreshedEvent creates a new CustomerBalanceRefreshedEvent
func NewCustomerBalanceRefreshedEvent(customer *Customer) *CustomerBalanceRefreshedEvent {
	evt := &CustomerBalanceRefreshedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerBalanceRefreshed, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		Balance:         customer.OutstandingBalance,
	}
	if customer.BalanceAsOf != nil {
		evt.AsOf = *customer.BalanceAsOf
	}
	return evt
}

// CustomerLockChangedEvent is published when the account lock flag flips
type CustomerLockChangedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Locked     bool      `json:"locked"`
}

// NewCustomerLockChangedEvent creates a new CustomerLockChangedEvent
func NewCustomerLockChangedEvent(customer *Customer) *CustomerLockChangedEvent {
	return &CustomerLockChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerLockChanged, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		Locked:          customer.AccountLocked,
	}
}
