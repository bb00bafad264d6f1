package trade

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	blemishMarker = "blemish"
	storeMarker   = "store"
)

// ReceiptTotals are the header aggregates of a purchase receipt
type ReceiptTotals struct {
	TotalAccepted decimal.Decimal `json:"total_accepted"`
	TotalBlemish  decimal.Decimal `json:"total_blemish"`
	TotalRejected decimal.Decimal `json:"total_rejected"`
	TotalReceived decimal.Decimal `json:"total_received"`
}

// Equal compares totals by value
func (t ReceiptTotals) Equal(other ReceiptTotals) bool {
	return t.TotalAccepted.Equal(other.TotalAccepted) &&
		t.TotalBlemish.Equal(other.TotalBlemish) &&
		t.TotalRejected.Equal(other.TotalRejected) &&
		t.TotalReceived.Equal(other.TotalReceived)
}

// ZeroTotals returns totals with every bucket at zero
func ZeroTotals() ReceiptTotals {
	return ReceiptTotals{
		TotalAccepted: decimal.Zero,
		TotalBlemish:  decimal.Zero,
		TotalRejected: decimal.Zero,
		TotalReceived: decimal.Zero,
	}
}

// AcceptedQuantity is the accepted quantity when present (zero included),
// otherwise the line quantity, otherwise zero
func AcceptedQuantity(line ReceiptLine) decimal.Decimal {
	if line.AcceptedQty != nil {
		return *line.AcceptedQty
	}
	if line.Qty != nil {
		return *line.Qty
	}
	return decimal.Zero
}

// Bucket names the total a line's good quantity is counted towards
type Bucket string

const (
	BucketNone     Bucket = ""
	BucketBlemish  Bucket = "blemish"
	BucketAccepted Bucket = "accepted"
)

// BucketFor classifies a warehouse name. Blemish wins over store when both match.
func BucketFor(warehouse string) Bucket {
	w := strings.ToLower(warehouse)
	switch {
	case strings.Contains(w, blemishMarker):
		return BucketBlemish
	case strings.Contains(w, storeMarker):
		return BucketAccepted
	default:
		return BucketNone
	}
}

// Reconcile folds receipt lines into header totals. It is pure and deterministic.
func Reconcile(lines []ReceiptLine) ReceiptTotals {
	totals := ZeroTotals()

	for _, line := range lines {
		accepted := AcceptedQuantity(line)

		switch BucketFor(line.Warehouse) {
		case BucketBlemish:
			if line.BlemishQty != nil && !line.BlemishQty.IsZero() {
				totals.TotalBlemish = totals.TotalBlemish.Add(decimal.Max(*line.BlemishQty, decimal.Zero))
			} else {
				totals.TotalBlemish = totals.TotalBlemish.Add(accepted)
			}
		case BucketAccepted:
			totals.TotalAccepted = totals.TotalAccepted.Add(accepted)
		}

		totals.TotalRejected = totals.TotalRejected.Add(valueOrZero(line.RejectedQty))
	}

	totals.TotalReceived = totals.TotalAccepted.Add(totals.TotalBlemish).Add(totals.TotalRejected)
	return totals
}
