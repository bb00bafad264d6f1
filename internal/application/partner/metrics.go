package partner

import "context"

// Metrics receives credit engine measurements
type Metrics interface {
	LookupFailed(ctx context.Context, lookup string)
	CreditLimitAssigned(ctx context.Context, facilityType string)
}

type nopMetrics struct{}

func (nopMetrics) LookupFailed(context.Context, string)        {}
func (nopMetrics) CreditLimitAssigned(context.Context, string) {}
