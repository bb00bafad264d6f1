package partner

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LimitEntry is one credit ceiling for a customer/company pair
type LimitEntry struct {
	Company     string
	LimitAmount decimal.Decimal
}

// NewLimitEntry creates a limit entry, normalizing the company name
func NewLimitEntry(company string, amount decimal.Decimal) LimitEntry {
	return LimitEntry{
		Company:     strings.TrimSpace(company),
		LimitAmount: amount,
	}
}

// CreditLimits is the ordered limit table of a customer.
//
// The facility assigner only ever manages the primary slot. Additional rows are
// kept as entered and never touched by the assigner, so the table behaves as an
// optional scalar plus a tail of legacy rows.
type CreditLimits struct {
	primary *LimitEntry
	extra   []LimitEntry
}

// NewCreditLimits builds the table from an ordered list of entries
func NewCreditLimits(entries []LimitEntry) CreditLimits {
	if len(entries) == 0 {
		return CreditLimits{}
	}
	first := entries[0]
	extra := make([]LimitEntry, len(entries)-1)
	copy(extra, entries[1:])
	return CreditLimits{primary: &first, extra: extra}
}

// Primary returns the first entry, if any
func (l CreditLimits) Primary() (LimitEntry, bool) {
	if l.primary == nil {
		return LimitEntry{}, false
	}
	return *l.primary, true
}

// Entries returns the ordered view of all entries
func (l CreditLimits) Entries() []LimitEntry {
	if l.primary == nil {
		return []LimitEntry{}
	}
	out := make([]LimitEntry, 0, len(l.extra)+1)
	out = append(out, *l.primary)
	out = append(out, l.extra...)
	return out
}

// Len returns the number of entries
func (l CreditLimits) Len() int {
	if l.primary == nil {
		return 0
	}
	return len(l.extra) + 1
}

// setPrimaryAmount overwrites the first entry's amount, creating the entry for
// defaultCompany when the table is empty
func (l *CreditLimits) setPrimaryAmount(defaultCompany string, amount decimal.Decimal) {
	if l.primary == nil {
		entry := NewLimitEntry(defaultCompany, amount)
		l.primary = &entry
		return
	}
	updated := *l.primary
	updated.LimitAmount = amount
	l.primary = &updated
}

func (l *CreditLimits) append(entry LimitEntry) {
	if l.primary == nil {
		l.primary = &entry
		return
	}
	l.extra = append(l.extra, entry)
}

// remove deletes the entry at idx; removing the primary promotes the next row
func (l *CreditLimits) remove(idx int) bool {
	if idx < 0 || idx >= l.Len() {
		return false
	}
	if idx > 0 {
		l.extra = append(l.extra[:idx-1], l.extra[idx:]...)
		return true
	}
	if len(l.extra) == 0 {
		l.primary = nil
		return true
	}
	next := l.extra[0]
	l.primary = &next
	l.extra = l.extra[1:]
	return true
}
