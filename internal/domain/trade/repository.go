package trade

import (
	"context"

	"github.com/google/uuid"
)

// SalesDocumentRepository persists quotations and sales orders
type SalesDocumentRepository interface {
	FindByID(ctx context.Context, docType DocumentType, id uuid.UUID) (*SalesDocument, error)
	Save(ctx context.Context, doc *SalesDocument) error
}

// PurchaseReceiptRepository persists purchase receipts with their lines
type PurchaseReceiptRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseReceipt, error)
	Save(ctx context.Context, receipt *PurchaseReceipt) error
}
