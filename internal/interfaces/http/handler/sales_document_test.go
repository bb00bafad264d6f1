package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surgishop/backend/internal/interfaces/http/dto"
)

func lockedCustomer(t *testing.T, env *testEnv, code string) string {
	t.Helper()
	return env.createCustomer(t, map[string]any{"code": code, "name": "Locked " + code, "account_locked": true})
}

func notices(data map[string]any) []any {
	n, _ := data["notices"].([]any)
	return n
}

func TestSalesDocumentHandler_QuotationAdvisoryClearsLockedCustomer(t *testing.T) {
	env := newTestEnv(t)
	customerID := lockedCustomer(t, env, "LQ")

	w, resp := env.do(t, http.MethodPost, "/sales-documents/quotation", map[string]any{"number": "QTN-001"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	docID := resp.Data["id"].(string)

	w, resp = env.do(t, http.MethodPut, "/sales-documents/quotation/"+docID+"/customer", map[string]any{"customer_id": customerID})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, resp.Data["cleared"])
	assert.Equal(t, false, resp.Data["pending"])
	assert.Nil(t, resp.Data["customer_id"])
	require.Len(t, notices(resp.Data), 1)
	notice := notices(resp.Data)[0].(map[string]any)
	assert.Equal(t, "Customer Locked", notice["title"])
	assert.Equal(t, "This customer is locked and cannot be used for Quotation.", notice["message"])
	assert.Equal(t, "red", notice["indicator"])

	// With the customer cleared, the save goes through
	w, resp = env.do(t, http.MethodPost, "/sales-documents/quotation/"+docID+"/save", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "saved", resp.Data["status"])
}

func TestSalesDocumentHandler_QuotationGateRejectsSave(t *testing.T) {
	env := newTestEnv(t)
	customerID := env.createCustomer(t, map[string]any{"code": "GATE", "name": "Gate Co"})

	w, resp := env.do(t, http.MethodPost, "/sales-documents/quotations", map[string]any{
		"number":      "QTN-002",
		"customer_id": customerID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Empty(t, notices(resp.Data))
	docID := resp.Data["id"].(string)

	// Lock lands after selection; only the gate sees it
	w, _ = env.do(t, http.MethodPut, "/customers/"+customerID+"/account-lock", map[string]any{"locked": true})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = env.do(t, http.MethodPost, "/sales-documents/quotation/"+docID+"/save", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, dto.ErrCodeCustomerLocked, resp.Error.Code)
	assert.Equal(t, "This customer is locked and cannot be used for Quotation.", resp.Error.Message)
	assert.NotEmpty(t, resp.Error.RequestID)

	// The draft survives the rejected save
	w, resp = env.do(t, http.MethodGet, "/sales-documents/quotation/"+docID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "draft", resp.Data["status"])
	assert.Equal(t, customerID, resp.Data["customer_id"])
}

func TestSalesDocumentHandler_SalesOrderWarnsButSaves(t *testing.T) {
	env := newTestEnv(t)
	customerID := lockedCustomer(t, env, "LSO")

	w, resp := env.do(t, http.MethodPost, "/sales-documents/sales-order", map[string]any{
		"number":      "SO-001",
		"customer_id": customerID,
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, false, resp.Data["cleared"])
	assert.Equal(t, customerID, resp.Data["customer_id"])
	require.Len(t, notices(resp.Data), 1)
	assert.Equal(t, "This customer is locked and cannot be used for Sales Orders.",
		notices(resp.Data)[0].(map[string]any)["message"])

	docID := resp.Data["id"].(string)
	w, resp = env.do(t, http.MethodPost, "/sales-documents/sales-order/"+docID+"/save", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "saved", resp.Data["status"])
	assert.Equal(t, customerID, resp.Data["customer_id"])
}

func TestSalesDocumentHandler_ReopensSavedDocumentFromStorage(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodPost, "/sales-documents/quotation", map[string]any{"number": "QTN-003"})
	require.Equal(t, http.StatusCreated, w.Code)
	docID := resp.Data["id"].(string)

	w, _ = env.do(t, http.MethodPost, "/sales-documents/quotation/"+docID+"/save", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = env.do(t, http.MethodDelete, "/sales-documents/quotation/"+docID+"/session", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w, resp = env.do(t, http.MethodGet, "/sales-documents/quotation/"+docID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "QTN-003", resp.Data["number"])

	// A quotation id is not a sales order
	w, _ = env.do(t, http.MethodGet, "/sales-documents/sales-order/"+docID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSalesDocumentHandler_BadRequests(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodPost, "/sales-documents/purchase-receipt", map[string]any{"number": "X"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidDocType, resp.Error.Code)

	w, _ = env.do(t, http.MethodPost, "/sales-documents/invoice", map[string]any{"number": "X"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = env.do(t, http.MethodPost, "/sales-documents/quotation", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)

	w, _ = env.do(t, http.MethodGet, "/sales-documents/quotation/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
