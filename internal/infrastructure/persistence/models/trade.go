package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/surgishop/backend/internal/domain/trade"
)

// SalesDocumentModel stores quotations and sales orders in one table,
// discriminated by document_type.
type SalesDocumentModel struct {
	AggregateModel
	DocumentType string     `gorm:"type:varchar(40);not null;uniqueIndex:idx_sales_doc_type_number"`
	Number       string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_sales_doc_type_number"`
	CustomerID   *uuid.UUID `gorm:"type:uuid;index"`
	Status       string     `gorm:"type:varchar(20);not null"`
	Remark       string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SalesDocumentModel) TableName() string {
	return "sales_documents"
}

// ToDomain converts the persistence model to a domain SalesDocument.
func (m *SalesDocumentModel) ToDomain() *trade.SalesDocument {
	doc := &trade.SalesDocument{
		DocumentType: trade.DocumentType(m.DocumentType),
		Number:       m.Number,
		Status:       trade.DocumentStatus(m.Status),
		Remark:       m.Remark,
	}
	if m.CustomerID != nil {
		id := *m.CustomerID
		doc.CustomerID = &id
	}
	m.PopulateAggregateRoot(&doc.BaseAggregateRoot)
	return doc
}

// SalesDocumentModelFromDomain creates a persistence model from a domain SalesDocument.
func SalesDocumentModelFromDomain(doc *trade.SalesDocument) *SalesDocumentModel {
	m := &SalesDocumentModel{
		DocumentType: string(doc.DocumentType),
		Number:       doc.Number,
		CustomerID:   doc.CustomerID,
		Status:       string(doc.Status),
		Remark:       doc.Remark,
	}
	m.FromDomainAggregateRoot(&doc.BaseAggregateRoot)
	return m
}

// PurchaseReceiptModel is the persistence model for the PurchaseReceipt
// aggregate root. Header totals are stored as computed at save time.
type PurchaseReceiptModel struct {
	AggregateModel
	Number        string                     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Supplier      string                     `gorm:"type:varchar(200)"`
	Status        string                     `gorm:"type:varchar(20);not null"`
	TotalAccepted decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	TotalBlemish  decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	TotalRejected decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	TotalReceived decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	Items         []PurchaseReceiptItemModel `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (PurchaseReceiptModel) TableName() string {
	return "purchase_receipts"
}

// PurchaseReceiptItemModel is one line of a purchase receipt. Quantity
// columns are nullable: NULL means the field was never entered.
type PurchaseReceiptItemModel struct {
	ReceiptID   uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Idx         int                 `gorm:"primaryKey;autoIncrement:false"`
	ItemCode    string              `gorm:"type:varchar(50)"`
	Warehouse   string              `gorm:"type:varchar(140)"`
	AcceptedQty decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	Qty         decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	BlemishQty  decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	RejectedQty decimal.NullDecimal `gorm:"type:decimal(18,4)"`
}

// TableName returns the table name for GORM
func (PurchaseReceiptItemModel) TableName() string {
	return "purchase_receipt_items"
}

// ToDomain converts the persistence model to a domain PurchaseReceipt.
func (m *PurchaseReceiptModel) ToDomain() *trade.PurchaseReceipt {
	r := &trade.PurchaseReceipt{
		Number:   m.Number,
		Supplier: m.Supplier,
		Status:   trade.DocumentStatus(m.Status),
		Items:    make([]trade.ReceiptLine, len(m.Items)),
		Totals: trade.ReceiptTotals{
			TotalAccepted: m.TotalAccepted,
			TotalBlemish:  m.TotalBlemish,
			TotalRejected: m.TotalRejected,
			TotalReceived: m.TotalReceived,
		},
	}
	for i, item := range m.Items {
		r.Items[i] = trade.ReceiptLine{
			ItemCode:    item.ItemCode,
			Warehouse:   item.Warehouse,
			AcceptedQty: fromNull(item.AcceptedQty),
			Qty:         fromNull(item.Qty),
			BlemishQty:  fromNull(item.BlemishQty),
			RejectedQty: fromNull(item.RejectedQty),
		}
	}
	m.PopulateAggregateRoot(&r.BaseAggregateRoot)
	return r
}

// PurchaseReceiptModelFromDomain creates a persistence model from a domain PurchaseReceipt.
func PurchaseReceiptModelFromDomain(r *trade.PurchaseReceipt) *PurchaseReceiptModel {
	m := &PurchaseReceiptModel{
		Number:        r.Number,
		Supplier:      r.Supplier,
		Status:        string(r.Status),
		TotalAccepted: r.Totals.TotalAccepted,
		TotalBlemish:  r.Totals.TotalBlemish,
		TotalRejected: r.Totals.TotalRejected,
		TotalReceived: r.Totals.TotalReceived,
		Items:         make([]PurchaseReceiptItemModel, len(r.Items)),
	}
	m.FromDomainAggregateRoot(&r.BaseAggregateRoot)
	for i, line := range r.Items {
		m.Items[i] = PurchaseReceiptItemModel{
			ReceiptID:   r.ID,
			Idx:         i,
			ItemCode:    line.ItemCode,
			Warehouse:   line.Warehouse,
			AcceptedQty: toNull(line.AcceptedQty),
			Qty:         toNull(line.Qty),
			BlemishQty:  toNull(line.BlemishQty),
			RejectedQty: toNull(line.RejectedQty),
		}
	}
	return m
}

func toNull(q *decimal.Decimal) decimal.NullDecimal {
	if q == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*q)
}

func fromNull(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}
