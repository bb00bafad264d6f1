package records

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"
	"github.com/shopspring/decimal"
	"github.com/surgishop/backend/internal/domain/ledger"
)

// FieldBatcher reads one field for many records at once
type FieldBatcher interface {
	ledger.RecordService
	FetchFields(ctx context.Context, recordType, field string, ids []uuid.UUID) (map[uuid.UUID]any, error)
}

// batchTimeout bounds one shared batch query.
const batchTimeout = 5 * time.Second

type fieldKey struct {
	recordType string
	field      string
	id         uuid.UUID
}

// FieldLoader coalesces concurrent field lookups issued within a short window
// into one query per record type and field. Nothing is cached between
// batches. Balance lookups pass through.
type FieldLoader struct {
	source FieldBatcher
	loader *dataloader.Loader[fieldKey, any]
}

// NewFieldLoader creates a loader that waits up to wait for more keys
func NewFieldLoader(source FieldBatcher, wait time.Duration) *FieldLoader {
	l := &FieldLoader{source: source}
	l.loader = dataloader.NewBatchedLoader(l.batch,
		dataloader.WithWait[fieldKey, any](wait),
		dataloader.WithCache[fieldKey, any](&dataloader.NoCache[fieldKey, any]{}),
	)
	return l
}

// FetchBalance delegates to the source
func (l *FieldLoader) FetchBalance(ctx context.Context, partyID uuid.UUID, asOf time.Time) (decimal.Decimal, error) {
	return l.source.FetchBalance(ctx, partyID, asOf)
}

// FetchField joins the current batch and waits for its result or for ctx to
// end, whichever comes first. Leaving early does not fail the other keys of
// the batch.
func (l *FieldLoader) FetchField(ctx context.Context, recordType string, id uuid.UUID, field string) (any, error) {
	thunk := l.loader.Load(ctx, fieldKey{recordType: recordType, field: field, id: id})

	type result struct {
		value any
		err   error
	}
	done := make(chan result, 1)
	go func() {
		v, err := thunk()
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// batch receives the context of whichever caller opened the batch. It is
// detached from that caller's cancellation and bounded by batchTimeout
// instead, since the query serves every key in the window.
func (l *FieldLoader) batch(callerCtx context.Context, keys []fieldKey) []*dataloader.Result[any] {
	type group struct{ recordType, field string }

	ctx, cancel := context.WithTimeout(context.WithoutCancel(callerCtx), batchTimeout)
	defer cancel()

	ids := make(map[group][]uuid.UUID)
	for _, k := range keys {
		g := group{k.recordType, k.field}
		ids[g] = append(ids[g], k.id)
	}

	values := make(map[group]map[uuid.UUID]any, len(ids))
	errs := make(map[group]error)
	for g, groupIDs := range ids {
		v, err := l.source.FetchFields(ctx, g.recordType, g.field, groupIDs)
		if err != nil {
			errs[g] = err
			continue
		}
		values[g] = v
	}

	results := make([]*dataloader.Result[any], len(keys))
	for i, k := range keys {
		g := group{k.recordType, k.field}
		if err, ok := errs[g]; ok {
			results[i] = &dataloader.Result[any]{Error: err}
			continue
		}
		results[i] = &dataloader.Result[any]{Data: values[g][k.id]}
	}
	return results
}

// Ensure FieldLoader implements RecordService
var _ ledger.RecordService = (*FieldLoader)(nil)
