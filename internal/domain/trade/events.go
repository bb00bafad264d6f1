package trade

import (
	"github.com/google/uuid"
	"github.com/surgishop/backend/internal/domain/shared"
)

// Event type constants
const (
	EventTypeSalesDocumentSaved   = "SalesDocumentSaved"
	EventTypePurchaseReceiptSaved = "PurchaseReceiptSaved"
)

// SalesDocumentSavedEvent is published after a quotation or sales order passed its save checks
type SalesDocumentSavedEvent struct {
	shared.BaseDomainEvent
	DocumentType DocumentType `json:"document_type"`
	Number       string       `json:"number"`
	CustomerID   *uuid.UUID   `json:"customer_id,omitempty"`
}

// NewSalesDocumentSavedEvent creates a new SalesDocumentSavedEvent
func NewSalesDocumentSavedEvent(doc *SalesDocument) *SalesDocumentSavedEvent {
	return &SalesDocumentSavedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesDocumentSaved, AggregateTypeSalesDocument, doc.ID),
		DocumentType:    doc.DocumentType,
		Number:          doc.Number,
		CustomerID:      doc.CustomerID,
	}
}

// PurchaseReceiptSavedEvent is published with the totals persisted at save time
type PurchaseReceiptSavedEvent struct {
	shared.BaseDomainEvent
	Number string        `json:"number"`
	Totals ReceiptTotals `json:"totals"`
}

// NewPurchaseReceiptSavedEvent creates a new PurchaseReceiptSavedEvent
func NewPurchaseReceiptSavedEvent(r *PurchaseReceipt) *PurchaseReceiptSavedEvent {
	return &PurchaseReceiptSavedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseReceiptSaved, AggregateTypePurchaseReceipt, r.ID),
		Number:          r.Number,
		Totals:          r.Totals,
	}
}
