package partner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/surgishop/backend/internal/domain/ledger"
	"github.com/surgishop/backend/internal/domain/partner"
	"github.com/surgishop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CreditServiceConfig holds the organizational defaults of the credit engine
type CreditServiceConfig struct {
	// DefaultCompany owns limit entries created by the facility assigner
	DefaultCompany string
	// LookupTimeout bounds each ledger call; zero means no extra bound
	LookupTimeout time.Duration
}

// CreditService runs the customer credit rules: facility limits, the balance
// indicator and the overdue lock tier
type CreditService struct {
	customerRepo   partner.CustomerRepository
	records        ledger.RecordService
	eventPublisher shared.EventPublisher
	metrics        Metrics
	logger         *zap.Logger
	cfg            CreditServiceConfig
	now            func() time.Time
}

// NewCreditService creates a new CreditService
func NewCreditService(customerRepo partner.CustomerRepository, records ledger.RecordService, cfg CreditServiceConfig, logger *zap.Logger) *CreditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreditService{
		customerRepo: customerRepo,
		records:      records,
		metrics:      nopMetrics{},
		logger:       logger,
		cfg:          cfg,
		now:          time.Now,
	}
}

// SetEventPublisher sets the publisher for customer events
func (s *CreditService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMetrics sets the metrics sink
func (s *CreditService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// SetClock overrides the clock used for "today"
func (s *CreditService) SetClock(now func() time.Time) {
	s.now = now
}

// AssignLimit writes the facility ceiling into the customer's primary limit entry
func (s *CreditService) AssignLimit(ctx context.Context, c *partner.Customer) bool {
	if !c.AssignFacilityLimit(s.cfg.DefaultCompany) {
		return false
	}
	s.metrics.CreditLimitAssigned(ctx, c.FacilityType.String())
	return true
}

// UpdateBalanceIndicator asks the ledger for today's balance and caches it on
// the customer. New customers are skipped. A failed lookup keeps the previous
// value and is only logged.
func (s *CreditService) UpdateBalanceIndicator(ctx context.Context, c *partner.Customer) bool {
	if c.IsNew() {
		return false
	}

	lookupCtx := ctx
	if s.cfg.LookupTimeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, s.cfg.LookupTimeout)
		defer cancel()
	}

	today := startOfDay(s.now())
	balance, err := s.records.FetchBalance(lookupCtx, c.ID, today)
	if err != nil {
		s.metrics.LookupFailed(ctx, "balance")
		s.logger.Warn("balance lookup failed",
			zap.String("customer_id", c.ID.String()),
			zap.Error(err),
		)
		return false
	}

	c.RecordBalance(balance, today)
	return true
}

// Create creates a new customer and assigns its facility limit
func (s *CreditService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	exists, err := s.customerRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this code already exists")
	}

	customer, err := partner.NewCustomer(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if req.FacilityType != "" {
		customer.SetFacilityType(partner.ParseFacilityType(req.FacilityType))
		s.AssignLimit(ctx, customer)
	}
	customer.OverdueDays = req.OverdueDays
	customer.AccountLocked = req.AccountLocked

	if err := s.save(ctx, customer); err != nil {
		return nil, err
	}

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// GetByID loads a customer and refreshes its balance indicator
func (s *CreditService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.UpdateBalanceIndicator(ctx, customer) {
		if err := s.save(ctx, customer); err != nil {
			// The fresh value is still shown even if caching it failed
			s.logger.Warn("failed to cache refreshed balance",
				zap.String("customer_id", id.String()),
				zap.Error(err),
			)
		}
	}

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// List returns a page of customers without refreshing balances
func (s *CreditService) List(ctx context.Context, filter shared.Filter) (*CustomerListResponse, error) {
	customers, total, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]CustomerResponse, len(customers))
	for i := range customers {
		items[i] = ToCustomerResponse(&customers[i])
	}
	return &CustomerListResponse{Items: items, Total: total}, nil
}

// ChangeFacilityType records the new facility type and reassigns the limit
func (s *CreditService) ChangeFacilityType(ctx context.Context, id uuid.UUID, facilityType string) (*CustomerResponse, error) {
	return s.mutate(ctx, id, func(c *partner.Customer) error {
		c.SetFacilityType(partner.ParseFacilityType(facilityType))
		s.AssignLimit(ctx, c)
		return nil
	})
}

// SetOverdueDays updates the overdue counter; the banner follows from it
func (s *CreditService) SetOverdueDays(ctx context.Context, id uuid.UUID, days int) (*CustomerResponse, error) {
	return s.mutate(ctx, id, func(c *partner.Customer) error {
		c.SetOverdueDays(days)
		return nil
	})
}

// SetAccountLocked updates the transaction lock flag
func (s *CreditService) SetAccountLocked(ctx context.Context, id uuid.UUID, locked bool) (*CustomerResponse, error) {
	return s.mutate(ctx, id, func(c *partner.Customer) error {
		c.SetAccountLocked(locked)
		return nil
	})
}

// AddCreditLimit appends a manual limit row
func (s *CreditService) AddCreditLimit(ctx context.Context, id uuid.UUID, company string, amount decimal.Decimal) (*CustomerResponse, error) {
	return s.mutate(ctx, id, func(c *partner.Customer) error {
		return c.AddCreditLimit(company, amount)
	})
}

// RemoveCreditLimit deletes the limit row at idx
func (s *CreditService) RemoveCreditLimit(ctx context.Context, id uuid.UUID, idx int) (*CustomerResponse, error) {
	return s.mutate(ctx, id, func(c *partner.Customer) error {
		return c.RemoveCreditLimit(idx)
	})
}

// RefreshBalance forces a balance lookup and reports whether it succeeded
func (s *CreditService) RefreshBalance(ctx context.Context, id uuid.UUID) (*CustomerResponse, bool, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	refreshed := s.UpdateBalanceIndicator(ctx, customer)
	if refreshed {
		if err := s.save(ctx, customer); err != nil {
			return nil, false, err
		}
	}
	resp := ToCustomerResponse(customer)
	return &resp, refreshed, nil
}

// LockBanner returns the overdue banner of a customer
func (s *CreditService) LockBanner(ctx context.Context, id uuid.UUID) (partner.Banner, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return partner.Banner{}, err
	}
	return customer.LockBanner(), nil
}

func (s *CreditService) mutate(ctx context.Context, id uuid.UUID, fn func(c *partner.Customer) error) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(customer); err != nil {
		return nil, err
	}
	if err := s.save(ctx, customer); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

func (s *CreditService) save(ctx context.Context, customer *partner.Customer) error {
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return err
	}
	s.publish(ctx, customer)
	return nil
}

func (s *CreditService) publish(ctx context.Context, customer *partner.Customer) {
	events := customer.GetDomainEvents()
	customer.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish customer events",
			zap.String("customer_id", customer.ID.String()),
			zap.Error(err),
		)
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
