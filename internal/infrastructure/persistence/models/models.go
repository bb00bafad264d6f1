package models

// All returns every model managed by AutoMigrate, parents before children.
func All() []any {
	return []any{
		&CustomerModel{},
		&CustomerCreditLimitModel{},
		&LedgerEntryModel{},
		&SalesDocumentModel{},
		&PurchaseReceiptModel{},
		&PurchaseReceiptItemModel{},
	}
}
