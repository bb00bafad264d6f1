package trade

import (
	"strings"

	"github.com/google/uuid"
	"github.com/surgishop/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeSalesDocument   = "SalesDocument"
	AggregateTypePurchaseReceipt = "PurchaseReceipt"
)

// DocumentStatus is the lifecycle state of a document
type DocumentStatus string

const (
	DocumentStatusDraft DocumentStatus = "draft"
	DocumentStatusSaved DocumentStatus = "saved"
)

// SalesDocument is a quotation or sales order that references a customer
type SalesDocument struct {
	shared.BaseAggregateRoot
	DocumentType DocumentType
	Number       string
	CustomerID   *uuid.UUID
	Status       DocumentStatus
	Remark       string
}

// NewSalesDocument creates a draft quotation or sales order
func NewSalesDocument(docType DocumentType, number string) (*SalesDocument, error) {
	if !docType.IsSalesDocument() {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_TYPE", "Document type does not reference a customer")
	}
	if strings.TrimSpace(number) == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot be empty")
	}
	return &SalesDocument{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DocumentType:      docType,
		Number:            strings.TrimSpace(number),
		Status:            DocumentStatusDraft,
	}, nil
}

// SetCustomer sets the referenced customer
func (d *SalesDocument) SetCustomer(customerID uuid.UUID) {
	id := customerID
	d.CustomerID = &id
	d.Touch()
}

// ClearCustomer removes the customer reference
func (d *SalesDocument) ClearCustomer() {
	d.CustomerID = nil
	d.Touch()
}

// HasCustomer reports whether a customer is referenced
func (d *SalesDocument) HasCustomer() bool {
	return d.CustomerID != nil
}

// MarkSaved transitions the document to saved
func (d *SalesDocument) MarkSaved() {
	d.Status = DocumentStatusSaved
	d.Touch()
}

