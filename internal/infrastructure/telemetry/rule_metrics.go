package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics set is built without a meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// RuleMetrics counts credit and lock rule outcomes. It satisfies the metrics
// ports of both the partner and trade application services.
type RuleMetrics struct {
	lookupFailed        *Counter
	creditLimitAssigned *Counter
	advisoryWarning     *Counter
	gateRejected        *Counter
	receiptRecomputed   *Counter
}

// NewRuleMetrics registers the rule counters on meter
func NewRuleMetrics(meter metric.Meter) (*RuleMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &RuleMetrics{}
	counters := []struct {
		dst         **Counter
		name        string
		description string
		unit        string
	}{
		{&m.lookupFailed, "surgishop_ledger_lookup_failed_total", "Ledger lookups that failed or timed out", "{lookup}"},
		{&m.creditLimitAssigned, "surgishop_credit_limit_assigned_total", "Facility credit limits written to a customer", "{assignment}"},
		{&m.advisoryWarning, "surgishop_lock_advisory_total", "Locked-customer notices shown on customer selection", "{notice}"},
		{&m.gateRejected, "surgishop_lock_gate_rejected_total", "Saves rejected because the customer is locked", "{save}"},
		{&m.receiptRecomputed, "surgishop_receipt_recompute_total", "Purchase receipt total recomputations", "{recompute}"},
	}
	for _, c := range counters {
		counter, err := NewCounter(meter, c.name, c.description, c.unit)
		if err != nil {
			return nil, err
		}
		*c.dst = counter
	}
	return m, nil
}

// LookupFailed counts a failed ledger lookup by lookup name
func (m *RuleMetrics) LookupFailed(ctx context.Context, lookup string) {
	m.lookupFailed.Inc(ctx, AttrLookup.String(lookup))
}

// CreditLimitAssigned counts a facility limit assignment
func (m *RuleMetrics) CreditLimitAssigned(ctx context.Context, facilityType string) {
	m.creditLimitAssigned.Inc(ctx, AttrFacilityType.String(facilityType))
}

// AdvisoryWarning counts a locked-customer notice
func (m *RuleMetrics) AdvisoryWarning(ctx context.Context, documentType string) {
	m.advisoryWarning.Inc(ctx, AttrDocumentType.String(documentType))
}

// GateRejected counts a save blocked by the lock gate
func (m *RuleMetrics) GateRejected(ctx context.Context, documentType string) {
	m.gateRejected.Inc(ctx, AttrDocumentType.String(documentType))
}

// ReceiptRecomputed counts a totals recomputation by trigger
func (m *RuleMetrics) ReceiptRecomputed(ctx context.Context, trigger string) {
	m.receiptRecomputed.Inc(ctx, AttrTrigger.String(trigger))
}
