package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/surgishop/backend/internal/application/partner"
	"github.com/surgishop/backend/internal/interfaces/http/dto"
)

// CustomerHandler serves customer credit endpoints
type CustomerHandler struct {
	BaseHandler
	creditService *partnerapp.CreditService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(creditService *partnerapp.CreditService) *CustomerHandler {
	return &CustomerHandler{creditService: creditService}
}

// BalanceRefreshResponse reports whether the ledger lookup succeeded
type BalanceRefreshResponse struct {
	Customer  *partnerapp.CustomerResponse `json:"customer"`
	Refreshed bool                         `json:"refreshed"`
}

// Create handles POST /customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req partnerapp.CreateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	customer, err := h.creditService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// List handles GET /customers
func (h *CustomerHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := req.Filter()
	list, err := h.creditService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, list.Items, list.Total, filter.Page, filter.PageSize)
}

// GetByID handles GET /customers/:id. The balance indicator is refreshed on read.
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	customer, err := h.creditService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// ChangeFacilityType handles PUT /customers/:id/facility-type
func (h *CustomerHandler) ChangeFacilityType(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req partnerapp.ChangeFacilityTypeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	customer, err := h.creditService.ChangeFacilityType(c.Request.Context(), id, req.FacilityType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// SetOverdueDays handles PUT /customers/:id/overdue-days
func (h *CustomerHandler) SetOverdueDays(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req partnerapp.SetOverdueDaysRequest
	if !h.bindJSON(c, &req) {
		return
	}
	customer, err := h.creditService.SetOverdueDays(c.Request.Context(), id, *req.OverdueDays)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// SetAccountLock handles PUT /customers/:id/account-lock
func (h *CustomerHandler) SetAccountLock(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req partnerapp.SetAccountLockRequest
	if !h.bindJSON(c, &req) {
		return
	}
	customer, err := h.creditService.SetAccountLocked(c.Request.Context(), id, *req.Locked)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// AddCreditLimit handles POST /customers/:id/credit-limits
func (h *CustomerHandler) AddCreditLimit(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req partnerapp.AddCreditLimitRequest
	if !h.bindJSON(c, &req) {
		return
	}
	customer, err := h.creditService.AddCreditLimit(c.Request.Context(), id, req.Company, req.LimitAmount)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// RemoveCreditLimit handles DELETE /customers/:id/credit-limits/:idx
func (h *CustomerHandler) RemoveCreditLimit(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	idx, ok := h.pathIndex(c, "idx")
	if !ok {
		return
	}
	customer, err := h.creditService.RemoveCreditLimit(c.Request.Context(), id, idx)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// RefreshBalance handles POST /customers/:id/balance/refresh
func (h *CustomerHandler) RefreshBalance(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	customer, refreshed, err := h.creditService.RefreshBalance(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, BalanceRefreshResponse{Customer: customer, Refreshed: refreshed})
}

// LockBanner handles GET /customers/:id/lock-banner
func (h *CustomerHandler) LockBanner(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	banner, err := h.creditService.LockBanner(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, banner)
}
