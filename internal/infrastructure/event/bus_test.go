package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surgishop/backend/internal/domain/partner"
	"github.com/surgishop/backend/internal/domain/shared"
	"github.com/surgishop/backend/internal/domain/trade"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "TestAggregate", uuid.New())}
}

type testHandler struct {
	mu         sync.Mutex
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	panicMsg   string
}

func (h *testHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.panicMsg != "" {
		panic(h.panicMsg)
	}
	h.handled = append(h.handled, event)
	return h.err
}

func (h *testHandler) EventTypes() []string { return h.eventTypes }

func (h *testHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	require.NoError(t, bus.Start(context.Background()))

	typed := &testHandler{eventTypes: []string{"A"}}
	wildcard := &testHandler{}
	bus.Subscribe(typed)
	bus.Subscribe(wildcard)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("A"), newTestEvent("B")))

	assert.Equal(t, 1, typed.count())
	assert.Equal(t, 2, wildcard.count())
}

func TestInMemoryEventBus_FailingHandlersDoNotStopOthers(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	failing := &testHandler{err: errors.New("boom")}
	panicking := &testHandler{panicMsg: "kaboom"}
	healthy := &testHandler{}
	bus.Subscribe(failing, "A")
	bus.Subscribe(panicking, "A")
	bus.Subscribe(healthy, "A")

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("A")))
	assert.Equal(t, 1, healthy.count())
}

func TestInMemoryEventBus_UnsubscribeAndStop(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	h := &testHandler{}
	bus.Subscribe(h, "A", "B")

	bus.Unsubscribe(h)
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("A")))
	assert.Equal(t, 0, h.count())

	bus.Subscribe(h, "A")
	require.NoError(t, bus.Stop(context.Background()))
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("A")))
	assert.Equal(t, 0, h.count())
	assert.Empty(t, bus.subs.handlersFor("B"))
}

func TestSubscriptionTable_OrderAndSnapshots(t *testing.T) {
	var table subscriptionTable
	typed := &testHandler{}
	wildcard := &testHandler{}
	table.add(wildcard)
	table.add(typed, "A")

	before := table.handlersFor("A")
	require.Len(t, before, 2)
	assert.Same(t, typed, before[0])
	assert.Same(t, wildcard, before[1])

	table.remove(typed)
	assert.Len(t, before, 2, "earlier snapshots are not mutated")
	assert.Equal(t, []shared.EventHandler{wildcard}, table.handlersFor("A"))
	assert.Equal(t, []shared.EventHandler{wildcard}, table.handlersFor(anyEvent))
}

func TestAuditLogHandler(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	bus := NewInMemoryEventBus(nil)
	bus.Subscribe(NewAuditLogHandler(zap.New(core)))

	c, err := partner.NewCustomer("H-1", "General Hospital")
	require.NoError(t, err)
	c.SetFacilityType(partner.FacilityTypeHospital)
	require.True(t, c.AssignFacilityLimit("SurgiShop"))
	c.SetAccountLocked(true)

	receipt, err := trade.NewPurchaseReceipt("PR-1", "Acme")
	require.NoError(t, err)
	receipt.AddItem(trade.ReceiptLine{Warehouse: "Stores", Qty: trade.Quantity(3)})
	receipt.Recompute()
	receipt.MarkSaved()

	events := append(c.GetDomainEvents(), receipt.GetDomainEvents()...)
	require.NoError(t, bus.Publish(context.Background(), events...))

	// CustomerCreated is not audited
	entries := logs.FilterMessage("domain event").All()
	require.Len(t, entries, 3)
	assert.Equal(t, "Hospital", entries[0].ContextMap()["facility_type"])
	assert.Equal(t, decimal.NewFromInt(40000).String(), entries[0].ContextMap()["limit_amount"])
	assert.Equal(t, true, entries[1].ContextMap()["account_locked"])
	assert.Equal(t, "3", entries[2].ContextMap()["total_received"])
}
