package trade

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/surgishop/backend/internal/domain/trade"
)

// AdvisoryOutcome reports what the advisory check did to the document
type AdvisoryOutcome struct {
	Notice *Notice
	// Cleared is true when the customer selection was reset
	Cleared bool
	// Stale is true when a newer selection or a save superseded this check
	Stale bool
}

// SalesDocumentSession is the edit session of one quotation or sales order.
//
// Customer selection triggers an asynchronous advisory lookup. Every selection
// and every save bumps seq; a lookup result is applied only if seq is unchanged
// when it arrives.
type SalesDocumentSession struct {
	mu       sync.Mutex
	doc      *trade.SalesDocument
	enforcer *LockEnforcer
	seq      uint64
	notices  []Notice
}

// NewSalesDocumentSession opens a session on doc
func NewSalesDocumentSession(doc *trade.SalesDocument, enforcer *LockEnforcer) *SalesDocumentSession {
	return &SalesDocumentSession{
		doc:      doc,
		enforcer: enforcer,
	}
}

// ID returns the document id
func (s *SalesDocumentSession) ID() uuid.UUID {
	return s.doc.ID
}

// DocumentType returns the document type
func (s *SalesDocumentSession) DocumentType() trade.DocumentType {
	return s.doc.DocumentType
}

// SetCustomer selects a customer and starts the advisory check.
// uuid.Nil clears the selection. The returned channel receives exactly one
// outcome and is then closed; callers may ignore it.
func (s *SalesDocumentSession) SetCustomer(ctx context.Context, customerID uuid.UUID) <-chan AdvisoryOutcome {
	out := make(chan AdvisoryOutcome, 1)

	s.mu.Lock()
	s.seq++
	seq := s.seq
	if customerID == uuid.Nil {
		s.doc.ClearCustomer()
		s.mu.Unlock()
		out <- AdvisoryOutcome{}
		close(out)
		return out
	}
	s.doc.SetCustomer(customerID)
	docType := s.doc.DocumentType
	s.mu.Unlock()

	policy, ok := trade.PolicyFor(docType)
	if !ok || !policy.Advisory {
		out <- AdvisoryOutcome{}
		close(out)
		return out
	}

	// The lookup outlives the request that triggered it
	lookupCtx := context.WithoutCancel(ctx)
	go func() {
		notice := s.enforcer.CheckAdvisory(lookupCtx, docType, customerID)
		out <- s.applyAdvisory(seq, customerID, policy, notice)
		close(out)
	}()
	return out
}

func (s *SalesDocumentSession) applyAdvisory(seq uint64, customerID uuid.UUID, policy trade.LockPolicy, notice *Notice) AdvisoryOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return AdvisoryOutcome{Stale: true}
	}
	if notice == nil {
		return AdvisoryOutcome{}
	}

	s.notices = append(s.notices, *notice)
	outcome := AdvisoryOutcome{Notice: notice}
	if policy.ClearOnLock && s.doc.CustomerID != nil && *s.doc.CustomerID == customerID {
		s.doc.ClearCustomer()
		outcome.Cleared = true
	}
	return outcome
}

// Save runs the lock gate and persists the document. The gate lookup is awaited
// while the session is held, so no edit can slip in between check and persist.
// On any error the session state is left as it was.
func (s *SalesDocumentSession) Save(ctx context.Context, persist func(ctx context.Context, doc *trade.SalesDocument) error) (*trade.SalesDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Pending advisory results are superseded by the authoritative gate
	s.seq++

	if err := s.enforcer.Gate(ctx, s.doc.DocumentType, s.doc.CustomerID); err != nil {
		return nil, err
	}

	next := *s.doc
	next.MarkSaved()
	next.AddDomainEvent(trade.NewSalesDocumentSavedEvent(&next))
	if err := persist(ctx, &next); err != nil {
		return nil, err
	}

	saved := next
	next.ClearDomainEvents()
	*s.doc = next
	return &saved, nil
}

// Notices drains the advisory notices collected since the last call
func (s *SalesDocumentSession) Notices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.notices
	s.notices = nil
	return out
}

// Snapshot returns a copy of the current document state
func (s *SalesDocumentSession) Snapshot() trade.SalesDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *s.doc
	if s.doc.CustomerID != nil {
		id := *s.doc.CustomerID
		cp.CustomerID = &id
	}
	return cp
}
