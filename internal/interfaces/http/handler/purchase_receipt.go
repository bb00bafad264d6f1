package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/surgishop/backend/internal/application/trade"
)

// PurchaseReceiptHandler serves purchase receipt edit sessions
type PurchaseReceiptHandler struct {
	BaseHandler
	service *tradeapp.PurchaseReceiptService
}

// NewPurchaseReceiptHandler creates a new PurchaseReceiptHandler
func NewPurchaseReceiptHandler(service *tradeapp.PurchaseReceiptService) *PurchaseReceiptHandler {
	return &PurchaseReceiptHandler{service: service}
}

// Open handles POST /purchase-receipts
func (h *PurchaseReceiptHandler) Open(c *gin.Context) {
	var req tradeapp.OpenPurchaseReceiptRequest
	if !h.bindJSON(c, &req) {
		return
	}
	receipt, err := h.service.Open(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, receipt)
}

// Get handles GET /purchase-receipts/:id. Rendering schedules a debounced
// recomputation, so totals may trail recent edits until the next read.
func (h *PurchaseReceiptHandler) Get(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	receipt, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receipt)
}

// AddItem handles POST /purchase-receipts/:id/items
func (h *PurchaseReceiptHandler) AddItem(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	fields, ok := h.bindFields(c)
	if !ok {
		return
	}
	receipt, err := h.service.AddItem(c.Request.Context(), id, fields)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, receipt)
}

// UpdateItem handles PATCH /purchase-receipts/:id/items/:idx.
// Only the keys present in the body are applied; null clears a quantity.
func (h *PurchaseReceiptHandler) UpdateItem(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	idx, ok := h.pathIndex(c, "idx")
	if !ok {
		return
	}
	fields, ok := h.bindFields(c)
	if !ok {
		return
	}
	receipt, err := h.service.UpdateItem(c.Request.Context(), id, idx, fields)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receipt)
}

// RemoveItem handles DELETE /purchase-receipts/:id/items/:idx
func (h *PurchaseReceiptHandler) RemoveItem(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	idx, ok := h.pathIndex(c, "idx")
	if !ok {
		return
	}
	receipt, err := h.service.RemoveItem(c.Request.Context(), id, idx)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receipt)
}

// Save handles POST /purchase-receipts/:id/save
func (h *PurchaseReceiptHandler) Save(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	receipt, err := h.service.Save(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receipt)
}

// Close handles DELETE /purchase-receipts/:id/session
func (h *PurchaseReceiptHandler) Close(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	h.service.Close(id)
	h.NoContent(c)
}

func (h *PurchaseReceiptHandler) bindFields(c *gin.Context) (map[string]any, bool) {
	fields := map[string]any{}
	if !h.bindJSON(c, &fields) {
		return nil, false
	}
	return fields, true
}
