package event

import (
	"context"

	"github.com/surgishop/backend/internal/domain/partner"
	"github.com/surgishop/backend/internal/domain/shared"
	"github.com/surgishop/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// AuditLogHandler writes credit and document events to the log so that
// limit assignments, lock flips and saved totals leave a trace
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates a new AuditLogHandler
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: logger.Named("audit")}
}

// EventTypes implements shared.EventHandler
func (h *AuditLogHandler) EventTypes() []string {
	return []string{
		partner.EventTypeCustomerCreditLimitAssigned,
		partner.EventTypeCustomerLockChanged,
		trade.EventTypeSalesDocumentSaved,
		trade.EventTypePurchaseReceiptSaved,
	}
}

// Handle implements shared.EventHandler
func (h *AuditLogHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
	}

	switch e := event.(type) {
	case *partner.CustomerCreditLimitAssignedEvent:
		fields = append(fields,
			zap.String("facility_type", e.FacilityType.String()),
			zap.String("company", e.Company),
			zap.String("limit_amount", e.LimitAmount.String()),
		)
	case *partner.CustomerLockChangedEvent:
		fields = append(fields, zap.Bool("account_locked", e.Locked))
	case *trade.SalesDocumentSavedEvent:
		fields = append(fields, zap.String("document_type", e.DocumentType.String()), zap.String("number", e.Number))
	case *trade.PurchaseReceiptSavedEvent:
		fields = append(fields,
			zap.String("number", e.Number),
			zap.String("total_received", e.Totals.TotalReceived.String()),
		)
	}

	h.logger.Info("domain event", fields...)
	return nil
}

var _ shared.EventHandler = (*AuditLogHandler)(nil)
