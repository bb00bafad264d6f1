package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/surgishop/backend/internal/application/trade"
	"github.com/surgishop/backend/internal/domain/trade"
	"github.com/surgishop/backend/internal/interfaces/http/dto"
)

// SalesDocumentHandler serves quotation and sales order edit sessions.
// The :type path segment selects the document kind.
type SalesDocumentHandler struct {
	BaseHandler
	service *tradeapp.SalesDocumentService
}

// NewSalesDocumentHandler creates a new SalesDocumentHandler
func NewSalesDocumentHandler(service *tradeapp.SalesDocumentService) *SalesDocumentHandler {
	return &SalesDocumentHandler{service: service}
}

func (h *SalesDocumentHandler) documentType(c *gin.Context) (trade.DocumentType, bool) {
	docType, err := trade.ParseDocumentType(c.Param("type"))
	if err != nil || !docType.IsSalesDocument() {
		h.ErrorWithCode(c, dto.ErrCodeInvalidDocType, "Unknown sales document type: "+c.Param("type"))
		return "", false
	}
	return docType, true
}

// Open handles POST /sales-documents/:type
func (h *SalesDocumentHandler) Open(c *gin.Context) {
	docType, ok := h.documentType(c)
	if !ok {
		return
	}
	var req tradeapp.OpenSalesDocumentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	doc, err := h.service.Open(c.Request.Context(), docType, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, doc)
}

// Get handles GET /sales-documents/:type/:id
func (h *SalesDocumentHandler) Get(c *gin.Context) {
	docType, ok := h.documentType(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	doc, err := h.service.Get(c.Request.Context(), docType, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// SetCustomer handles PUT /sales-documents/:type/:id/customer.
// The selection always succeeds; a locked customer only adds a notice.
func (h *SalesDocumentHandler) SetCustomer(c *gin.Context) {
	docType, ok := h.documentType(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req tradeapp.SetCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	doc, err := h.service.SetCustomer(c.Request.Context(), docType, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// Save handles POST /sales-documents/:type/:id/save
func (h *SalesDocumentHandler) Save(c *gin.Context) {
	docType, ok := h.documentType(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	doc, err := h.service.Save(c.Request.Context(), docType, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// Close handles DELETE /sales-documents/:type/:id/session
func (h *SalesDocumentHandler) Close(c *gin.Context) {
	if _, ok := h.documentType(c); !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	h.service.Close(id)
	h.NoContent(c)
}
