package trade

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/surgishop/backend/internal/domain/shared"
)

// Editable receipt line fields
const (
	LineFieldWarehouse   = "warehouse"
	LineFieldAcceptedQty = "accepted_qty"
	LineFieldQty         = "qty"
	LineFieldBlemishQty  = "blemish_qty"
	LineFieldRejectedQty = "rejected_qty"
)

// Column widths of the stored line text fields, in characters
const (
	MaxItemCodeLen  = 50
	MaxWarehouseLen = 140
)

// ReceiptLine is one item row of a purchase receipt. Nil quantities are absent.
type ReceiptLine struct {
	ItemCode    string
	Warehouse   string
	AcceptedQty *decimal.Decimal
	Qty         *decimal.Decimal
	BlemishQty  *decimal.Decimal
	RejectedQty *decimal.Decimal
}

// IsQuantityField reports whether a field participates in totals
func IsQuantityField(field string) bool {
	switch field {
	case LineFieldWarehouse, LineFieldAcceptedQty, LineFieldQty, LineFieldBlemishQty, LineFieldRejectedQty:
		return true
	}
	return false
}

// Apply updates the line from a set of field values. Unknown fields are ignored.
// Returns true when any totals-relevant field was present.
func (l *ReceiptLine) Apply(fields map[string]any) bool {
	relevant := false
	for field, value := range fields {
		switch field {
		case "item_code":
			l.ItemCode = stringValue(value)
		case LineFieldWarehouse:
			l.Warehouse = stringValue(value)
		case LineFieldAcceptedQty:
			l.AcceptedQty = ParseQuantity(value)
		case LineFieldQty:
			l.Qty = ParseQuantity(value)
		case LineFieldBlemishQty:
			l.BlemishQty = ParseQuantity(value)
		case LineFieldRejectedQty:
			l.RejectedQty = ParseQuantity(value)
		default:
			continue
		}
		if IsQuantityField(field) {
			relevant = true
		}
	}
	return relevant
}

// NewReceiptLine builds a line from raw field values and validates it
func NewReceiptLine(fields map[string]any) (ReceiptLine, error) {
	var l ReceiptLine
	l.Apply(fields)
	return l, l.Validate()
}

// Validate rejects text fields wider than their stored columns
func (l ReceiptLine) Validate() error {
	if utf8.RuneCountInString(l.ItemCode) > MaxItemCodeLen {
		return invalidLineField("item_code", MaxItemCodeLen)
	}
	if utf8.RuneCountInString(l.Warehouse) > MaxWarehouseLen {
		return invalidLineField(LineFieldWarehouse, MaxWarehouseLen)
	}
	return nil
}

func invalidLineField(field string, limit int) *shared.DomainError {
	return shared.NewDomainError("INVALID_LINE_FIELD",
		fmt.Sprintf("%s must be at most %d characters", field, limit))
}

func stringValue(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// PurchaseReceipt is the aggregate root for goods received from a supplier
type PurchaseReceipt struct {
	shared.BaseAggregateRoot
	Number   string
	Supplier string
	Items    []ReceiptLine
	Totals   ReceiptTotals
	Status   DocumentStatus
}

// NewPurchaseReceipt creates a draft receipt
func NewPurchaseReceipt(number, supplier string) (*PurchaseReceipt, error) {
	if strings.TrimSpace(number) == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot be empty")
	}
	return &PurchaseReceipt{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            strings.TrimSpace(number),
		Supplier:          strings.TrimSpace(supplier),
		Items:             make([]ReceiptLine, 0),
		Totals:            ZeroTotals(),
		Status:            DocumentStatusDraft,
	}, nil
}

// AddItem appends a line and returns its index
func (r *PurchaseReceipt) AddItem(line ReceiptLine) int {
	r.Items = append(r.Items, line)
	r.Touch()
	return len(r.Items) - 1
}

// UpdateItem applies field values to the line at idx
func (r *PurchaseReceipt) UpdateItem(idx int, fields map[string]any) (bool, error) {
	if idx < 0 || idx >= len(r.Items) {
		return false, shared.NewDomainError("INVALID_LINE_INDEX", "Receipt line does not exist")
	}
	line := r.Items[idx]
	relevant := line.Apply(fields)
	if err := line.Validate(); err != nil {
		return false, err
	}
	r.Items[idx] = line
	r.Touch()
	return relevant, nil
}

// RemoveItem deletes the line at idx
func (r *PurchaseReceipt) RemoveItem(idx int) error {
	if idx < 0 || idx >= len(r.Items) {
		return shared.NewDomainError("INVALID_LINE_INDEX", "Receipt line does not exist")
	}
	r.Items = append(r.Items[:idx], r.Items[idx+1:]...)
	r.Touch()
	return nil
}

// Recompute reconciles the lines and writes the totals to the header
func (r *PurchaseReceipt) Recompute() ReceiptTotals {
	r.Totals = Reconcile(r.Items)
	return r.Totals
}

// MarkSaved transitions the receipt to saved and records the final totals
func (r *PurchaseReceipt) MarkSaved() {
	r.Status = DocumentStatusSaved
	r.Touch()
	r.AddDomainEvent(NewPurchaseReceiptSavedEvent(r))
}

// Clone returns a deep copy safe to hand outside an edit session
func (r *PurchaseReceipt) Clone() *PurchaseReceipt {
	cp := *r
	cp.Items = make([]ReceiptLine, len(r.Items))
	copy(cp.Items, r.Items)
	return &cp
}

