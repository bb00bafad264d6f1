package trade

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/surgishop/backend/internal/domain/shared"
	"github.com/surgishop/backend/internal/domain/trade"
)

func newPurchaseReceiptService(repo *MockPurchaseReceiptRepository) *PurchaseReceiptService {
	return NewPurchaseReceiptService(repo, NewSessionStore[*ReceiptReconciler](time.Minute), testDebounce, nil)
}

func TestPurchaseReceiptService_EditAndSave(t *testing.T) {
	repo := new(MockPurchaseReceiptRepository)
	publisher := new(MockEventPublisher)
	var persisted *trade.PurchaseReceipt
	repo.On("Save", mock.Anything, mock.AnythingOfType("*trade.PurchaseReceipt")).
		Run(func(args mock.Arguments) { persisted = args.Get(1).(*trade.PurchaseReceipt) }).
		Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	svc := newPurchaseReceiptService(repo)
	svc.SetEventPublisher(publisher)
	ctx := context.Background()

	opened, err := svc.Open(ctx, OpenPurchaseReceiptRequest{
		Number:   "PR-0100",
		Supplier: "Acme Medical",
		Items: []map[string]any{
			{"item_code": "GLOVE-M", "warehouse": "Main Store", "accepted_qty": 10},
			{"item_code": "GLOVE-L", "warehouse": "Blemish Bin", "blemish_qty": 3},
		},
	})
	require.NoError(t, err)
	assert.True(t, opened.Pending)
	require.Len(t, opened.Items, 2)

	_, err = svc.AddItem(ctx, opened.ID, map[string]any{
		"item_code": "MASK", "warehouse": "Main Store", "qty": "5", "rejected_qty": 2,
	})
	require.NoError(t, err)

	_, err = svc.UpdateItem(ctx, opened.ID, 0, map[string]any{"accepted_qty": 12})
	require.NoError(t, err)

	resp, err := svc.Save(ctx, opened.ID)
	require.NoError(t, err)

	require.NotNil(t, persisted)
	decEq(t, 17, persisted.Totals.TotalAccepted)
	decEq(t, 3, persisted.Totals.TotalBlemish)
	decEq(t, 2, persisted.Totals.TotalRejected)
	decEq(t, 22, persisted.Totals.TotalReceived)
	assert.Equal(t, string(trade.DocumentStatusSaved), resp.Status)
	publisher.AssertNumberOfCalls(t, "Publish", 1)
}

func TestPurchaseReceiptService_Errors(t *testing.T) {
	repo := new(MockPurchaseReceiptRepository)
	svc := newPurchaseReceiptService(repo)
	ctx := context.Background()

	missing := uuid.New()
	repo.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)
	_, err := svc.Get(ctx, missing)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	opened, err := svc.Open(ctx, OpenPurchaseReceiptRequest{Number: "PR-0101"})
	require.NoError(t, err)

	_, err = svc.UpdateItem(ctx, opened.ID, 5, map[string]any{"qty": 1})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_LINE_INDEX", domainErr.Code)

	_, err = svc.Open(ctx, OpenPurchaseReceiptRequest{Number: "  "})
	assert.Error(t, err)

	longCode := map[string]any{"item_code": strings.Repeat("X", trade.MaxItemCodeLen+1), "qty": 1}
	_, err = svc.AddItem(ctx, opened.ID, longCode)
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_LINE_FIELD", domainErr.Code)
	_, err = svc.Open(ctx, OpenPurchaseReceiptRequest{Number: "PR-0104", Items: []map[string]any{longCode}})
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_LINE_FIELD", domainErr.Code)
}

func TestPurchaseReceiptService_GetRendersAndRecomputes(t *testing.T) {
	repo := new(MockPurchaseReceiptRepository)
	svc := newPurchaseReceiptService(repo)
	ctx := context.Background()

	receipt, err := trade.NewPurchaseReceipt("PR-0102", "")
	require.NoError(t, err)
	receipt.AddItem(trade.ReceiptLine{Warehouse: "Stores", Qty: trade.Quantity(6)})
	receipt.MarkPersisted()
	repo.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil).Once()

	resp, err := svc.Get(ctx, receipt.ID)
	require.NoError(t, err)
	assert.True(t, resp.Pending)

	require.Eventually(t, func() bool {
		got, err := svc.Get(ctx, receipt.ID)
		return err == nil && got.Totals.TotalAccepted.Equal(*trade.Quantity(6))
	}, time.Second, 2*testDebounce)
}

// slowReceiptRepository hands out a fresh copy of the stored receipt after a
// delay, the way a database round trip would.
type slowReceiptRepository struct {
	mu     sync.Mutex
	stored *trade.PurchaseReceipt
	loads  int
	saved  *trade.PurchaseReceipt
}

func (r *slowReceiptRepository) FindByID(_ context.Context, id uuid.UUID) (*trade.PurchaseReceipt, error) {
	time.Sleep(10 * time.Millisecond)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads++
	if r.stored == nil || r.stored.ID != id {
		return nil, shared.ErrNotFound
	}
	return r.stored.Clone(), nil
}

func (r *slowReceiptRepository) Save(_ context.Context, receipt *trade.PurchaseReceipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = receipt.Clone()
	return nil
}

func TestPurchaseReceiptService_ConcurrentReopenKeepsEveryEdit(t *testing.T) {
	receipt, err := trade.NewPurchaseReceipt("PR-0103", "Acme Medical")
	require.NoError(t, err)
	receipt.MarkPersisted()
	repo := &slowReceiptRepository{stored: receipt}
	svc := NewPurchaseReceiptService(repo, NewSessionStore[*ReceiptReconciler](time.Minute), testDebounce, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, qty := range []int{5, 7} {
		wg.Add(1)
		go func(qty int) {
			defer wg.Done()
			_, err := svc.AddItem(ctx, receipt.ID, map[string]any{"warehouse": "Main Store", "qty": qty})
			assert.NoError(t, err)
		}(qty)
	}
	wg.Wait()

	_, err = svc.Save(ctx, receipt.ID)
	require.NoError(t, err)

	require.NotNil(t, repo.saved)
	assert.Len(t, repo.saved.Items, 2)
	decEq(t, 12, repo.saved.Totals.TotalAccepted)
	assert.Equal(t, 1, repo.loads)
}
