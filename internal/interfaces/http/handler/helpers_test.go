package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	partnerapp "github.com/surgishop/backend/internal/application/partner"
	tradeapp "github.com/surgishop/backend/internal/application/trade"
	"github.com/surgishop/backend/internal/infrastructure/config"
	"github.com/surgishop/backend/internal/infrastructure/persistence"
	"github.com/surgishop/backend/internal/infrastructure/records"
	"github.com/surgishop/backend/internal/interfaces/http/dto"
	"github.com/surgishop/backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
}

// newTestEnv wires the real services over an in-memory database
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	require.NoError(t, middleware.SetupValidator())

	database, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: persistence.DriverSQLite, Path: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, database.AutoMigrate())

	recordService := records.NewGormRecordService(database.DB)
	creditService := partnerapp.NewCreditService(
		persistence.NewGormCustomerRepository(database.DB),
		recordService,
		partnerapp.CreditServiceConfig{DefaultCompany: "SurgiShop"},
		nil,
	)
	salesSessions := tradeapp.NewSessionStore[*tradeapp.SalesDocumentSession](0)
	receiptSessions := tradeapp.NewSessionStore[*tradeapp.ReceiptReconciler](0)
	salesService := tradeapp.NewSalesDocumentService(
		persistence.NewGormSalesDocumentRepository(database.DB),
		tradeapp.NewLockEnforcer(recordService, 0, nil),
		salesSessions,
		0,
		nil,
	)
	receiptService := tradeapp.NewPurchaseReceiptService(
		persistence.NewGormPurchaseReceiptRepository(database.DB),
		receiptSessions,
		20*time.Millisecond,
		nil,
	)

	customers := NewCustomerHandler(creditService)
	sales := NewSalesDocumentHandler(salesService)
	receipts := NewPurchaseReceiptHandler(receiptService)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.POST("/customers", customers.Create)
	r.GET("/customers", customers.List)
	r.GET("/customers/:id", customers.GetByID)
	r.PUT("/customers/:id/facility-type", customers.ChangeFacilityType)
	r.PUT("/customers/:id/overdue-days", customers.SetOverdueDays)
	r.PUT("/customers/:id/account-lock", customers.SetAccountLock)
	r.POST("/customers/:id/credit-limits", customers.AddCreditLimit)
	r.DELETE("/customers/:id/credit-limits/:idx", customers.RemoveCreditLimit)
	r.POST("/customers/:id/balance/refresh", customers.RefreshBalance)
	r.GET("/customers/:id/lock-banner", customers.LockBanner)

	r.POST("/sales-documents/:type", sales.Open)
	r.GET("/sales-documents/:type/:id", sales.Get)
	r.PUT("/sales-documents/:type/:id/customer", sales.SetCustomer)
	r.POST("/sales-documents/:type/:id/save", sales.Save)
	r.DELETE("/sales-documents/:type/:id/session", sales.Close)

	r.POST("/purchase-receipts", receipts.Open)
	r.GET("/purchase-receipts/:id", receipts.Get)
	r.POST("/purchase-receipts/:id/items", receipts.AddItem)
	r.PATCH("/purchase-receipts/:id/items/:idx", receipts.UpdateItem)
	r.DELETE("/purchase-receipts/:id/items/:idx", receipts.RemoveItem)
	r.POST("/purchase-receipts/:id/save", receipts.Save)
	r.DELETE("/purchase-receipts/:id/session", receipts.Close)

	return &testEnv{router: r, db: database.DB}
}

// apiResponse mirrors dto.Response with a generic data payload
type apiResponse struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
	Error   *dto.ErrorInfo `json:"error"`
	Meta    *dto.Meta      `json:"meta"`
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp apiResponse
	if w.Body.Len() > 0 {
		// list endpoints return an array; decode those separately
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
	}
	return w, resp
}

// createCustomer posts a customer and returns its id
func (e *testEnv) createCustomer(t *testing.T, body map[string]any) string {
	t.Helper()
	w, resp := e.do(t, http.MethodPost, "/customers", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return resp.Data["id"].(string)
}
