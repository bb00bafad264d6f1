package trade

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/surgishop/backend/internal/domain/trade"
)

// DefaultReceiptDebounce coalesces rapid line edits into one recomputation
const DefaultReceiptDebounce = 150 * time.Millisecond

// ReceiptReconciler is the edit session of one purchase receipt. Line edits
// schedule a debounced recomputation of the header totals; Flush and Save
// recompute synchronously and drop any pending run.
type ReceiptReconciler struct {
	mu             sync.Mutex
	receipt        *trade.PurchaseReceipt
	delay          time.Duration
	metrics        Metrics
	timer          *time.Timer
	seq            uint64
	recomputations int
	closed         bool
}

// NewReceiptReconciler opens a session on receipt. A non-positive delay uses
// DefaultReceiptDebounce.
func NewReceiptReconciler(receipt *trade.PurchaseReceipt, delay time.Duration, metrics Metrics) *ReceiptReconciler {
	if delay <= 0 {
		delay = DefaultReceiptDebounce
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &ReceiptReconciler{
		receipt: receipt,
		delay:   delay,
		metrics: metrics,
	}
}

// ID returns the receipt id
func (r *ReceiptReconciler) ID() uuid.UUID {
	return r.receipt.ID
}

// AddLine appends a line and returns its index
func (r *ReceiptReconciler) AddLine(line trade.ReceiptLine) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.receipt.AddItem(line)
	r.scheduleLocked(TriggerInsert)
	return idx
}

// EditLine applies field values to a line. Only quantity and warehouse
// fields schedule a recomputation.
func (r *ReceiptReconciler) EditLine(idx int, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	relevant, err := r.receipt.UpdateItem(idx, fields)
	if err != nil {
		return err
	}
	if relevant {
		r.scheduleLocked(TriggerEdit)
	}
	return nil
}

// RemoveLine deletes a line
func (r *ReceiptReconciler) RemoveLine(idx int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.receipt.RemoveItem(idx); err != nil {
		return err
	}
	r.scheduleLocked(TriggerRemove)
	return nil
}

// Render returns the current state and schedules a recomputation, the same
// way opening the form does
func (r *ReceiptReconciler) Render() *trade.PurchaseReceipt {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheduleLocked(TriggerRender)
	return r.receipt.Clone()
}

// Flush cancels any pending run and recomputes immediately
func (r *ReceiptReconciler) Flush(ctx context.Context) trade.ReceiptTotals {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flushLocked(ctx)
}

// Save flushes and hands the receipt to persist. Persisted totals always
// reflect the final line state. On error the session keeps its draft state.
func (r *ReceiptReconciler) Save(ctx context.Context, persist func(ctx context.Context, receipt *trade.PurchaseReceipt) error) (*trade.PurchaseReceipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.flushLocked(ctx)

	next := r.receipt.Clone()
	next.MarkSaved()
	if err := persist(ctx, next); err != nil {
		return nil, err
	}

	saved := next.Clone()
	next.ClearDomainEvents()
	r.receipt = next
	return saved, nil
}

// Totals returns the header totals as last computed
func (r *ReceiptReconciler) Totals() trade.ReceiptTotals {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.receipt.Totals
}

// Snapshot returns a copy of the receipt without scheduling anything
func (r *ReceiptReconciler) Snapshot() *trade.PurchaseReceipt {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.receipt.Clone()
}

// Pending reports whether a debounced run is scheduled
func (r *ReceiptReconciler) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer != nil
}

// Recomputations returns how many times totals were computed
func (r *ReceiptReconciler) Recomputations() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recomputations
}

// Close stops the timer; later edits no longer schedule runs
func (r *ReceiptReconciler) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.stopLocked()
}

func (r *ReceiptReconciler) scheduleLocked(trigger string) {
	if r.closed {
		return
	}
	r.stopLocked()
	r.seq++
	seq := r.seq
	r.timer = time.AfterFunc(r.delay, func() {
		r.fire(seq, trigger)
	})
}

func (r *ReceiptReconciler) fire(seq uint64, trigger string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// A newer edit, a flush or Close got here first
	if r.closed || seq != r.seq {
		return
	}
	r.timer = nil
	r.recomputeLocked(context.Background(), trigger)
}

func (r *ReceiptReconciler) flushLocked(ctx context.Context) trade.ReceiptTotals {
	r.stopLocked()
	r.seq++
	return r.recomputeLocked(ctx, TriggerSave)
}

func (r *ReceiptReconciler) stopLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *ReceiptReconciler) recomputeLocked(ctx context.Context, trigger string) trade.ReceiptTotals {
	totals := r.receipt.Recompute()
	r.recomputations++
	r.metrics.ReceiptRecomputed(ctx, trigger)
	return totals
}
