package router

import (
	"github.com/surgishop/backend/internal/interfaces/http/handler"
)

// Handlers bundles the API handlers
type Handlers struct {
	Customers        *handler.CustomerHandler
	SalesDocuments   *handler.SalesDocumentHandler
	PurchaseReceipts *handler.PurchaseReceiptHandler
	System           *handler.SystemHandler
}

// CustomerRoutes serves credit limits, balance and lock state
func CustomerRoutes(h *handler.CustomerHandler) *DomainGroup {
	return NewDomainGroup("customers", "/customers").
		POST("", h.Create).
		GET("", h.List).
		GET("/:id", h.GetByID).
		PUT("/:id/facility-type", h.ChangeFacilityType).
		PUT("/:id/overdue-days", h.SetOverdueDays).
		PUT("/:id/account-lock", h.SetAccountLock).
		POST("/:id/credit-limits", h.AddCreditLimit).
		DELETE("/:id/credit-limits/:idx", h.RemoveCreditLimit).
		POST("/:id/balance/refresh", h.RefreshBalance).
		GET("/:id/lock-banner", h.LockBanner)
}

// SalesDocumentRoutes serves quotation and sales order sessions
func SalesDocumentRoutes(h *handler.SalesDocumentHandler) *DomainGroup {
	return NewDomainGroup("sales-documents", "/sales-documents/:type").
		POST("", h.Open).
		GET("/:id", h.Get).
		PUT("/:id/customer", h.SetCustomer).
		POST("/:id/save", h.Save).
		DELETE("/:id/session", h.Close)
}

// PurchaseReceiptRoutes serves purchase receipt sessions
func PurchaseReceiptRoutes(h *handler.PurchaseReceiptHandler) *DomainGroup {
	return NewDomainGroup("purchase-receipts", "/purchase-receipts").
		POST("", h.Open).
		GET("/:id", h.Get).
		POST("/:id/items", h.AddItem).
		PATCH("/:id/items/:idx", h.UpdateItem).
		DELETE("/:id/items/:idx", h.RemoveItem).
		POST("/:id/save", h.Save).
		DELETE("/:id/session", h.Close)
}

// SystemRoutes serves build information under the API prefix
func SystemRoutes(h *handler.SystemHandler) *DomainGroup {
	return NewDomainGroup("system", "/system").
		GET("/info", h.GetSystemInfo)
}
