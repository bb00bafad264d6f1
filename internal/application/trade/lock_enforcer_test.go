package trade

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/surgishop/backend/internal/domain/ledger"
	"github.com/surgishop/backend/internal/domain/shared"
	"github.com/surgishop/backend/internal/domain/trade"
)

func expectLock(records *MockRecordService, customerID uuid.UUID, value any, err error) *mock.Call {
	return records.On("FetchField", mock.Anything, ledger.RecordTypeCustomer, customerID, ledger.FieldAccountLocked).Return(value, err)
}

func TestLockEnforcer_Gate(t *testing.T) {
	customerID := uuid.New()

	tests := []struct {
		name    string
		docType trade.DocumentType
		locked  any
		wantErr bool
	}{
		{name: "quotation with locked customer is rejected", docType: trade.DocumentTypeQuotation, locked: true, wantErr: true},
		{name: "quotation with numeric flag is rejected", docType: trade.DocumentTypeQuotation, locked: 1, wantErr: true},
		{name: "quotation with unlocked customer passes", docType: trade.DocumentTypeQuotation, locked: false},
		{name: "quotation with null flag passes", docType: trade.DocumentTypeQuotation, locked: nil},
		{name: "sales order with locked customer passes", docType: trade.DocumentTypeSalesOrder, locked: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := new(MockRecordService)
			expectLock(records, customerID, tt.locked, nil)
			metrics := newCountingMetrics()
			enforcer := NewLockEnforcer(records, 0, nil)
			enforcer.SetMetrics(metrics)

			err := enforcer.Gate(context.Background(), tt.docType, &customerID)

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, shared.ErrCustomerLocked)
			assert.Contains(t, err.Error(), "Quotation")
			assert.Equal(t, 1, metrics.get("gate:Quotation"))
		})
	}
}

func TestLockEnforcer_Gate_SalesOrderSkipsLookup(t *testing.T) {
	records := new(MockRecordService)
	enforcer := NewLockEnforcer(records, 0, nil)
	customerID := uuid.New()

	require.NoError(t, enforcer.Gate(context.Background(), trade.DocumentTypeSalesOrder, &customerID))
	records.AssertNotCalled(t, "FetchField", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLockEnforcer_Gate_NoCustomer(t *testing.T) {
	records := new(MockRecordService)
	enforcer := NewLockEnforcer(records, 0, nil)

	require.NoError(t, enforcer.Gate(context.Background(), trade.DocumentTypeQuotation, nil))
	records.AssertNotCalled(t, "FetchField", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLockEnforcer_Gate_LookupFailureLetsSaveThrough(t *testing.T) {
	records := new(MockRecordService)
	customerID := uuid.New()
	expectLock(records, customerID, nil, errors.New("connection refused"))
	metrics := newCountingMetrics()
	enforcer := NewLockEnforcer(records, 0, nil)
	enforcer.SetMetrics(metrics)

	assert.NoError(t, enforcer.Gate(context.Background(), trade.DocumentTypeQuotation, &customerID))
	assert.Equal(t, 1, metrics.get("lookup_failed:account_locked"))
}

func TestLockEnforcer_CheckAdvisory(t *testing.T) {
	customerID := uuid.New()

	t.Run("quotation notice", func(t *testing.T) {
		records := new(MockRecordService)
		expectLock(records, customerID, true, nil)
		enforcer := NewLockEnforcer(records, 0, nil)

		notice := enforcer.CheckAdvisory(context.Background(), trade.DocumentTypeQuotation, customerID)

		require.NotNil(t, notice)
		assert.Equal(t, "Customer Locked", notice.Title)
		assert.Equal(t, "This customer is locked and cannot be used for Quotation.", notice.Message)
		assert.Equal(t, IndicatorRed, notice.Indicator)
	})

	t.Run("sales order notice", func(t *testing.T) {
		records := new(MockRecordService)
		expectLock(records, customerID, "1", nil)
		enforcer := NewLockEnforcer(records, 0, nil)

		notice := enforcer.CheckAdvisory(context.Background(), trade.DocumentTypeSalesOrder, customerID)

		require.NotNil(t, notice)
		assert.Equal(t, "This customer is locked and cannot be used for Sales Orders.", notice.Message)
	})

	t.Run("unlocked customer", func(t *testing.T) {
		records := new(MockRecordService)
		expectLock(records, customerID, false, nil)
		enforcer := NewLockEnforcer(records, 0, nil)

		assert.Nil(t, enforcer.CheckAdvisory(context.Background(), trade.DocumentTypeQuotation, customerID))
	})

	t.Run("lookup failure shows nothing", func(t *testing.T) {
		records := new(MockRecordService)
		expectLock(records, customerID, nil, errors.New("timeout"))
		enforcer := NewLockEnforcer(records, 0, nil)

		assert.Nil(t, enforcer.CheckAdvisory(context.Background(), trade.DocumentTypeQuotation, customerID))
	})

	t.Run("purchase receipt has no policy", func(t *testing.T) {
		records := new(MockRecordService)
		enforcer := NewLockEnforcer(records, 0, nil)

		assert.Nil(t, enforcer.CheckAdvisory(context.Background(), trade.DocumentTypePurchaseReceipt, customerID))
		records.AssertNotCalled(t, "FetchField", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
