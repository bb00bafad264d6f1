package trade

import (
	"strings"

	"github.com/surgishop/backend/internal/domain/shared"
)

// DocumentType identifies a commercial document kind
type DocumentType string

const (
	DocumentTypeQuotation       DocumentType = "Quotation"
	DocumentTypeSalesOrder      DocumentType = "Sales Order"
	DocumentTypePurchaseReceipt DocumentType = "Purchase Receipt"
)

// documentSlugs maps URL-friendly names to document types
var documentSlugs = map[string]DocumentType{
	"quotation":        DocumentTypeQuotation,
	"quotations":       DocumentTypeQuotation,
	"sales-order":      DocumentTypeSalesOrder,
	"sales-orders":     DocumentTypeSalesOrder,
	"purchase-receipt": DocumentTypePurchaseReceipt,
}

// ParseDocumentType resolves a label or slug to a document type
func ParseDocumentType(s string) (DocumentType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if dt, ok := documentSlugs[key]; ok {
		return dt, nil
	}
	for _, dt := range []DocumentType{DocumentTypeQuotation, DocumentTypeSalesOrder, DocumentTypePurchaseReceipt} {
		if strings.EqualFold(key, string(dt)) {
			return dt, nil
		}
	}
	return "", shared.NewDomainError("INVALID_DOCUMENT_TYPE", "Unknown document type: "+s)
}

// String returns the display label
func (d DocumentType) String() string {
	return string(d)
}

// IsSalesDocument reports whether the document references a customer
func (d DocumentType) IsSalesDocument() bool {
	return d == DocumentTypeQuotation || d == DocumentTypeSalesOrder
}
