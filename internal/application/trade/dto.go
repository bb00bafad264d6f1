package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/surgishop/backend/internal/domain/trade"
)

// OpenSalesDocumentRequest opens an edit session on a new quotation or sales order
type OpenSalesDocumentRequest struct {
	Number     string     `json:"number" binding:"required,min=1,max=100"`
	CustomerID *uuid.UUID `json:"customer_id"`
	Remark     string     `json:"remark" binding:"max=500"`
}

// SetCustomerRequest selects the customer of a sales document.
// A null customer_id clears the selection.
type SetCustomerRequest struct {
	CustomerID *uuid.UUID `json:"customer_id"`
}

// SalesDocumentResponse represents a quotation or sales order in API responses
type SalesDocumentResponse struct {
	ID           uuid.UUID  `json:"id"`
	DocumentType string     `json:"document_type"`
	Number       string     `json:"number"`
	CustomerID   *uuid.UUID `json:"customer_id,omitempty"`
	Status       string     `json:"status"`
	Remark       string     `json:"remark,omitempty"`
	Notices      []Notice   `json:"notices,omitempty"`
	Version      int        `json:"version"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// SetCustomerResponse carries the document after a customer selection
type SetCustomerResponse struct {
	SalesDocumentResponse
	// Pending is true when the advisory lookup had not resolved yet;
	// its notice, if any, shows up on the next read
	Pending bool `json:"pending"`
	Cleared bool `json:"cleared"`
}

// ToSalesDocumentResponse converts a domain document to a response DTO
func ToSalesDocumentResponse(doc *trade.SalesDocument, notices []Notice) SalesDocumentResponse {
	return SalesDocumentResponse{
		ID:           doc.ID,
		DocumentType: doc.DocumentType.String(),
		Number:       doc.Number,
		CustomerID:   doc.CustomerID,
		Status:       string(doc.Status),
		Remark:       doc.Remark,
		Notices:      notices,
		Version:      doc.Version,
		UpdatedAt:    doc.UpdatedAt,
	}
}

// OpenPurchaseReceiptRequest opens an edit session on a new purchase receipt.
// Items are raw field maps so that absent and explicit values stay distinct.
type OpenPurchaseReceiptRequest struct {
	Number   string           `json:"number" binding:"required,min=1,max=100"`
	Supplier string           `json:"supplier" binding:"max=200"`
	Items    []map[string]any `json:"items"`
}

// ReceiptLineResponse is one receipt line in API responses
type ReceiptLineResponse struct {
	Index       int              `json:"idx"`
	ItemCode    string           `json:"item_code"`
	Warehouse   string           `json:"warehouse"`
	AcceptedQty *decimal.Decimal `json:"accepted_qty"`
	Qty         *decimal.Decimal `json:"qty"`
	BlemishQty  *decimal.Decimal `json:"blemish_qty"`
	RejectedQty *decimal.Decimal `json:"rejected_qty"`
}

// PurchaseReceiptResponse represents a purchase receipt in API responses
type PurchaseReceiptResponse struct {
	ID        uuid.UUID             `json:"id"`
	Number    string                `json:"number"`
	Supplier  string                `json:"supplier"`
	Status    string                `json:"status"`
	Items     []ReceiptLineResponse `json:"items"`
	Totals    trade.ReceiptTotals   `json:"totals"`
	Pending   bool                  `json:"recompute_pending"`
	Version   int                   `json:"version"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// ToPurchaseReceiptResponse converts a domain receipt to a response DTO
func ToPurchaseReceiptResponse(r *trade.PurchaseReceipt, pending bool) PurchaseReceiptResponse {
	items := make([]ReceiptLineResponse, len(r.Items))
	for i, line := range r.Items {
		items[i] = ReceiptLineResponse{
			Index:       i,
			ItemCode:    line.ItemCode,
			Warehouse:   line.Warehouse,
			AcceptedQty: line.AcceptedQty,
			Qty:         line.Qty,
			BlemishQty:  line.BlemishQty,
			RejectedQty: line.RejectedQty,
		}
	}
	return PurchaseReceiptResponse{
		ID:        r.ID,
		Number:    r.Number,
		Supplier:  r.Supplier,
		Status:    string(r.Status),
		Items:     items,
		Totals:    r.Totals,
		Pending:   pending,
		Version:   r.Version,
		UpdatedAt: r.UpdatedAt,
	}
}
