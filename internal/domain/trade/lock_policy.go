package trade

// LockPolicy describes how a document type reacts to a locked customer.
//
// Advisory checks run when the customer is selected; Gate checks run at save
// time and abort the save.
type LockPolicy struct {
	Advisory    bool
	ClearOnLock bool
	Gate        bool
	// Message is shown both for the advisory notice and the gate error
	Message string
}

// NoticeTitle is the heading of advisory lock notices
const NoticeTitle = "Customer Locked"

var lockPolicies = map[DocumentType]LockPolicy{
	DocumentTypeQuotation: {
		Advisory:    true,
		ClearOnLock: true,
		Gate:        true,
		Message:     "This customer is locked and cannot be used for Quotation.",
	},
	DocumentTypeSalesOrder: {
		Advisory:    true,
		ClearOnLock: false,
		Gate:        false,
		Message:     "This customer is locked and cannot be used for Sales Orders.",
	},
}

// PolicyFor returns the lock policy of a document type.
// Types without a policy are not subject to lock enforcement.
func PolicyFor(docType DocumentType) (LockPolicy, bool) {
	p, ok := lockPolicies[docType]
	return p, ok
}
