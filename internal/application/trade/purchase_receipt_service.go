package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/surgishop/backend/internal/domain/shared"
	"github.com/surgishop/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// PurchaseReceiptService manages purchase receipt edit sessions
type PurchaseReceiptService struct {
	repo           trade.PurchaseReceiptRepository
	sessions       *SessionStore[*ReceiptReconciler]
	eventPublisher shared.EventPublisher
	metrics        Metrics
	logger         *zap.Logger
	debounce       time.Duration
}

// NewPurchaseReceiptService creates a new PurchaseReceiptService
func NewPurchaseReceiptService(
	repo trade.PurchaseReceiptRepository,
	sessions *SessionStore[*ReceiptReconciler],
	debounce time.Duration,
	logger *zap.Logger,
) *PurchaseReceiptService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchaseReceiptService{
		repo:     repo,
		sessions: sessions,
		metrics:  nopMetrics{},
		logger:   logger,
		debounce: debounce,
	}
}

// SetEventPublisher sets the publisher for receipt events
func (s *PurchaseReceiptService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMetrics sets the metrics sink handed to new sessions
func (s *PurchaseReceiptService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// Open starts a session on a new draft receipt
func (s *PurchaseReceiptService) Open(ctx context.Context, req OpenPurchaseReceiptRequest) (*PurchaseReceiptResponse, error) {
	receipt, err := trade.NewPurchaseReceipt(req.Number, req.Supplier)
	if err != nil {
		return nil, err
	}

	lines := make([]trade.ReceiptLine, 0, len(req.Items))
	for _, fields := range req.Items {
		line, err := trade.NewReceiptLine(fields)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	session := NewReceiptReconciler(receipt, s.debounce, s.metrics)
	for _, line := range lines {
		session.AddLine(line)
	}
	s.sessions.Put(receipt.ID, session)

	return s.render(session), nil
}

// AddItem appends a line built from raw field values
func (s *PurchaseReceiptService) AddItem(ctx context.Context, id uuid.UUID, fields map[string]any) (*PurchaseReceiptResponse, error) {
	line, err := trade.NewReceiptLine(fields)
	if err != nil {
		return nil, err
	}
	session, err := s.session(ctx, id)
	if err != nil {
		return nil, err
	}
	session.AddLine(line)
	return s.snapshot(session), nil
}

// UpdateItem applies raw field values to the line at idx
func (s *PurchaseReceiptService) UpdateItem(ctx context.Context, id uuid.UUID, idx int, fields map[string]any) (*PurchaseReceiptResponse, error) {
	session, err := s.session(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := session.EditLine(idx, fields); err != nil {
		return nil, err
	}
	return s.snapshot(session), nil
}

// RemoveItem deletes the line at idx
func (s *PurchaseReceiptService) RemoveItem(ctx context.Context, id uuid.UUID, idx int) (*PurchaseReceiptResponse, error) {
	session, err := s.session(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := session.RemoveLine(idx); err != nil {
		return nil, err
	}
	return s.snapshot(session), nil
}

// Get renders the receipt, which schedules a debounced recomputation
func (s *PurchaseReceiptService) Get(ctx context.Context, id uuid.UUID) (*PurchaseReceiptResponse, error) {
	session, err := s.session(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.render(session), nil
}

// Save recomputes the totals synchronously and persists the receipt
func (s *PurchaseReceiptService) Save(ctx context.Context, id uuid.UUID) (*PurchaseReceiptResponse, error) {
	session, err := s.session(ctx, id)
	if err != nil {
		return nil, err
	}

	saved, err := session.Save(ctx, s.repo.Save)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, saved)

	resp := ToPurchaseReceiptResponse(saved, false)
	return &resp, nil
}

// Close drops the edit session of a receipt
func (s *PurchaseReceiptService) Close(id uuid.UUID) {
	s.sessions.Delete(id)
}

func (s *PurchaseReceiptService) session(ctx context.Context, id uuid.UUID) (*ReceiptReconciler, error) {
	return s.sessions.GetOrCreate(id, func() (*ReceiptReconciler, error) {
		receipt, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return NewReceiptReconciler(receipt, s.debounce, s.metrics), nil
	})
}

func (s *PurchaseReceiptService) render(session *ReceiptReconciler) *PurchaseReceiptResponse {
	receipt := session.Render()
	resp := ToPurchaseReceiptResponse(receipt, session.Pending())
	return &resp
}

func (s *PurchaseReceiptService) snapshot(session *ReceiptReconciler) *PurchaseReceiptResponse {
	resp := ToPurchaseReceiptResponse(session.Snapshot(), session.Pending())
	return &resp
}

func (s *PurchaseReceiptService) publish(ctx context.Context, receipt *trade.PurchaseReceipt) {
	events := receipt.GetDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish purchase receipt events",
			zap.String("receipt_id", receipt.ID.String()),
			zap.Error(err),
		)
	}
}
