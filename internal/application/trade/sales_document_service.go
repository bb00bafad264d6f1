package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/surgishop/backend/internal/domain/shared"
	"github.com/surgishop/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// SalesDocumentService manages quotation and sales order edit sessions
type SalesDocumentService struct {
	repo           trade.SalesDocumentRepository
	enforcer       *LockEnforcer
	sessions       *SessionStore[*SalesDocumentSession]
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	advisoryWait   time.Duration
}

// NewSalesDocumentService creates a new SalesDocumentService. advisoryWait is
// how long SetCustomer waits for the advisory lookup before answering; zero
// waits until it resolves.
func NewSalesDocumentService(
	repo trade.SalesDocumentRepository,
	enforcer *LockEnforcer,
	sessions *SessionStore[*SalesDocumentSession],
	advisoryWait time.Duration,
	logger *zap.Logger,
) *SalesDocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SalesDocumentService{
		repo:         repo,
		enforcer:     enforcer,
		sessions:     sessions,
		logger:       logger,
		advisoryWait: advisoryWait,
	}
}

// SetEventPublisher sets the publisher for document events
func (s *SalesDocumentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Open starts a session on a new draft document
func (s *SalesDocumentService) Open(ctx context.Context, docType trade.DocumentType, req OpenSalesDocumentRequest) (*SetCustomerResponse, error) {
	doc, err := trade.NewSalesDocument(docType, req.Number)
	if err != nil {
		return nil, err
	}
	doc.Remark = req.Remark

	session := NewSalesDocumentSession(doc, s.enforcer)
	s.sessions.Put(doc.ID, session)

	if req.CustomerID == nil || *req.CustomerID == uuid.Nil {
		snap := session.Snapshot()
		return &SetCustomerResponse{SalesDocumentResponse: ToSalesDocumentResponse(&snap, nil)}, nil
	}
	return s.awaitAdvisory(ctx, session, session.SetCustomer(ctx, *req.CustomerID))
}

// SetCustomer selects the customer of a document and reports the advisory
// outcome if it resolves within the wait window
func (s *SalesDocumentService) SetCustomer(ctx context.Context, docType trade.DocumentType, id uuid.UUID, req SetCustomerRequest) (*SetCustomerResponse, error) {
	session, err := s.session(ctx, docType, id)
	if err != nil {
		return nil, err
	}

	customerID := uuid.Nil
	if req.CustomerID != nil {
		customerID = *req.CustomerID
	}
	return s.awaitAdvisory(ctx, session, session.SetCustomer(ctx, customerID))
}

// Get returns the document with any advisory notices collected so far
func (s *SalesDocumentService) Get(ctx context.Context, docType trade.DocumentType, id uuid.UUID) (*SalesDocumentResponse, error) {
	session, err := s.session(ctx, docType, id)
	if err != nil {
		return nil, err
	}
	snap := session.Snapshot()
	resp := ToSalesDocumentResponse(&snap, session.Notices())
	return &resp, nil
}

// Save runs the save-time lock gate and persists the document
func (s *SalesDocumentService) Save(ctx context.Context, docType trade.DocumentType, id uuid.UUID) (*SalesDocumentResponse, error) {
	session, err := s.session(ctx, docType, id)
	if err != nil {
		return nil, err
	}

	saved, err := session.Save(ctx, s.repo.Save)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, saved)

	resp := ToSalesDocumentResponse(saved, session.Notices())
	return &resp, nil
}

// Close drops the edit session of a document
func (s *SalesDocumentService) Close(id uuid.UUID) {
	s.sessions.Delete(id)
}

// session returns the open session, reopening it from storage when needed
func (s *SalesDocumentService) session(ctx context.Context, docType trade.DocumentType, id uuid.UUID) (*SalesDocumentSession, error) {
	session, err := s.sessions.GetOrCreate(id, func() (*SalesDocumentSession, error) {
		doc, err := s.repo.FindByID(ctx, docType, id)
		if err != nil {
			return nil, err
		}
		return NewSalesDocumentSession(doc, s.enforcer), nil
	})
	if err != nil {
		return nil, err
	}
	if session.DocumentType() != docType {
		return nil, shared.ErrNotFound
	}
	return session, nil
}

func (s *SalesDocumentService) awaitAdvisory(ctx context.Context, session *SalesDocumentSession, outcomes <-chan AdvisoryOutcome) (*SetCustomerResponse, error) {
	resp := &SetCustomerResponse{}

	var wait <-chan time.Time
	if s.advisoryWait > 0 {
		timer := time.NewTimer(s.advisoryWait)
		defer timer.Stop()
		wait = timer.C
	}

	select {
	case outcome := <-outcomes:
		resp.Cleared = outcome.Cleared
	case <-wait:
		resp.Pending = true
	case <-ctx.Done():
		resp.Pending = true
	}

	snap := session.Snapshot()
	var notices []Notice
	if !resp.Pending {
		notices = session.Notices()
	}
	resp.SalesDocumentResponse = ToSalesDocumentResponse(&snap, notices)
	return resp, nil
}

func (s *SalesDocumentService) publish(ctx context.Context, doc *trade.SalesDocument) {
	events := doc.GetDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish sales document events",
			zap.String("document_id", doc.ID.String()),
			zap.Error(err),
		)
	}
}
