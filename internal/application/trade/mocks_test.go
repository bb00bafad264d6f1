package trade

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/surgishop/backend/internal/domain/shared"
	"github.com/surgishop/backend/internal/domain/trade"
)

type MockRecordService struct {
	mock.Mock
}

func (m *MockRecordService) FetchBalance(ctx context.Context, partyID uuid.UUID, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, partyID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRecordService) FetchField(ctx context.Context, recordType string, id uuid.UUID, field string) (any, error) {
	args := m.Called(ctx, recordType, id, field)
	return args.Get(0), args.Error(1)
}

type MockSalesDocumentRepository struct {
	mock.Mock
}

func (m *MockSalesDocumentRepository) FindByID(ctx context.Context, docType trade.DocumentType, id uuid.UUID) (*trade.SalesDocument, error) {
	args := m.Called(ctx, docType, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesDocument), args.Error(1)
}

func (m *MockSalesDocumentRepository) Save(ctx context.Context, doc *trade.SalesDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

type MockPurchaseReceiptRepository struct {
	mock.Mock
}

func (m *MockPurchaseReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseReceipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PurchaseReceipt), args.Error(1)
}

func (m *MockPurchaseReceiptRepository) Save(ctx context.Context, receipt *trade.PurchaseReceipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// countingMetrics records metric calls by name
type countingMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{counts: make(map[string]int)}
}

func (c *countingMetrics) inc(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key]++
}

func (c *countingMetrics) get(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[key]
}

func (c *countingMetrics) AdvisoryWarning(_ context.Context, docType string) {
	c.inc("advisory:" + docType)
}

func (c *countingMetrics) GateRejected(_ context.Context, docType string) {
	c.inc("gate:" + docType)
}

func (c *countingMetrics) LookupFailed(_ context.Context, lookup string) {
	c.inc("lookup_failed:" + lookup)
}

func (c *countingMetrics) ReceiptRecomputed(_ context.Context, trigger string) {
	c.inc("recompute:" + trigger)
}
