package trade

import "context"

// Recompute triggers reported to Metrics.ReceiptRecomputed
const (
	TriggerEdit   = "edit"
	TriggerInsert = "insert"
	TriggerRemove = "remove"
	TriggerRender = "render"
	TriggerSave   = "save"
)

// Metrics receives lock enforcement and reconciliation measurements
type Metrics interface {
	AdvisoryWarning(ctx context.Context, documentType string)
	GateRejected(ctx context.Context, documentType string)
	LookupFailed(ctx context.Context, lookup string)
	ReceiptRecomputed(ctx context.Context, trigger string)
}

type nopMetrics struct{}

func (nopMetrics) AdvisoryWarning(context.Context, string)   {}
func (nopMetrics) GateRejected(context.Context, string)      {}
func (nopMetrics) LookupFailed(context.Context, string)      {}
func (nopMetrics) ReceiptRecomputed(context.Context, string) {}
