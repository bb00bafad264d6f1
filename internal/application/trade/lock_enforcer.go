package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/surgishop/backend/internal/domain/ledger"
	"github.com/surgishop/backend/internal/domain/shared"
	"github.com/surgishop/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// Notice indicators
const (
	IndicatorRed = "red"
)

// Notice is a non-fatal message shown to the user while editing a document
type Notice struct {
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Indicator string    `json:"indicator"`
	At        time.Time `json:"at"`
}

// LockEnforcer checks the customer account lock flag for dependent documents
type LockEnforcer struct {
	records ledger.RecordService
	timeout time.Duration
	metrics Metrics
	logger  *zap.Logger
}

// NewLockEnforcer creates a new LockEnforcer. A zero timeout leaves lookups
// bounded only by the caller's context.
func NewLockEnforcer(records ledger.RecordService, timeout time.Duration, logger *zap.Logger) *LockEnforcer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LockEnforcer{
		records: records,
		timeout: timeout,
		metrics: nopMetrics{},
		logger:  logger,
	}
}

// SetMetrics sets the metrics sink
func (e *LockEnforcer) SetMetrics(m Metrics) {
	if m != nil {
		e.metrics = m
	}
}

// IsLocked reads the account lock flag of a customer
func (e *LockEnforcer) IsLocked(ctx context.Context, customerID uuid.UUID) (bool, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	value, err := e.records.FetchField(ctx, ledger.RecordTypeCustomer, customerID, ledger.FieldAccountLocked)
	if err != nil {
		return false, err
	}
	return ledger.Truthy(value), nil
}

// CheckAdvisory returns a notice when the selected customer is locked.
// Nil means nothing to show: the document type has no advisory check, the
// customer is not locked, or the lookup failed.
func (e *LockEnforcer) CheckAdvisory(ctx context.Context, docType trade.DocumentType, customerID uuid.UUID) *Notice {
	policy, ok := trade.PolicyFor(docType)
	if !ok || !policy.Advisory {
		return nil
	}

	locked, err := e.IsLocked(ctx, customerID)
	if err != nil {
		e.metrics.LookupFailed(ctx, ledger.FieldAccountLocked)
		e.logger.Warn("account lock lookup failed",
			zap.String("customer_id", customerID.String()),
			zap.String("document_type", docType.String()),
			zap.Error(err),
		)
		return nil
	}
	if !locked {
		return nil
	}

	e.metrics.AdvisoryWarning(ctx, docType.String())
	return &Notice{
		Title:     trade.NoticeTitle,
		Message:   policy.Message,
		Indicator: IndicatorRed,
		At:        time.Now(),
	}
}

// Gate runs the save-time check. It blocks until the lookup resolves and
// returns a CUSTOMER_LOCKED error when the save must not proceed. A failed
// lookup is logged and lets the save through.
func (e *LockEnforcer) Gate(ctx context.Context, docType trade.DocumentType, customerID *uuid.UUID) error {
	policy, ok := trade.PolicyFor(docType)
	if !ok || !policy.Gate || customerID == nil {
		return nil
	}

	locked, err := e.IsLocked(ctx, *customerID)
	if err != nil {
		e.metrics.LookupFailed(ctx, ledger.FieldAccountLocked)
		e.logger.Warn("account lock lookup failed at save",
			zap.String("customer_id", customerID.String()),
			zap.String("document_type", docType.String()),
			zap.Error(err),
		)
		return nil
	}
	if !locked {
		return nil
	}

	e.metrics.GateRejected(ctx, docType.String())
	e.logger.Info("save rejected for locked customer",
		zap.String("customer_id", customerID.String()),
		zap.String("document_type", docType.String()),
	)
	return shared.NewDomainError(shared.ErrCustomerLocked.Code, policy.Message)
}
