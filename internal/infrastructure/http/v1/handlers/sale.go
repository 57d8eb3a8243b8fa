package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gescom/internal/core/apperror"
	"gescom/internal/core/entity"
	"gescom/internal/core/id"
	"gescom/internal/domain"
	"gescom/internal/domain/documents/sale"
	"gescom/internal/infrastructure/http/v1/dto"
)

// SaleHandler handles sale document endpoints.
type SaleHandler struct {
	*BaseHandler
	service *sale.Service
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(base *BaseHandler, service *sale.Service) *SaleHandler {
	return &SaleHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /sales - record a sale, checking stock and
// updating the product balance.
func (h *SaleHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := req.ToSale()
	if err != nil {
		h.Error(c, apperror.NewValidation(err.Error()))
		return
	}

	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	resp := dto.FromSale(doc)
	h.CompleteIdempotency(c, http.StatusCreated, "application/json", resp)

	c.JSON(http.StatusCreated, resp)
}

// Get handles GET /sales/:id.
func (h *SaleHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromSale(doc))
}

// List handles GET /sales with document filters.
func (h *SaleHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter, err := h.parseListFilter(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, doc := range result.Items {
		items[i] = dto.FromSale(doc)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Cancel handles POST /sales/:id/cancel - return the goods to stock and
// mark the document cancelled.
func (h *SaleHandler) Cancel(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.CancelRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.Cancel(ctx, docID, req.Reason)
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := dto.FromSale(doc)
	h.CompleteIdempotency(c, http.StatusOK, "application/json", resp)

	c.JSON(http.StatusOK, resp)
}

func (h *SaleHandler) parseListFilter(c *gin.Context) (sale.ListFilter, error) {
	filter := sale.ListFilter{
		ListFilter: domain.ListFilter{
			Search:  c.Query("search"),
			Limit:   h.ParseIntQuery(c, "limit", 50),
			Offset:  h.ParseIntQuery(c, "offset", 0),
			OrderBy: c.DefaultQuery("orderBy", "date DESC"),
		},
	}

	if productID := c.Query("productId"); productID != "" {
		parsed, err := id.Parse(productID)
		if err != nil {
			return filter, apperror.NewValidation("invalid productId format")
		}
		filter.ProductID = &parsed
	}

	if clientID := c.Query("clientId"); clientID != "" {
		parsed, err := id.Parse(clientID)
		if err != nil {
			return filter, apperror.NewValidation("invalid clientId format")
		}
		filter.ClientID = &parsed
	}

	if status := c.Query("status"); status != "" {
		s := entity.Status(status)
		filter.Status = &s
	}

	if from := c.Query("fromDate"); from != "" {
		parsed, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return filter, apperror.NewValidation("invalid fromDate format (RFC3339 expected)")
		}
		filter.DateFrom = &parsed
	}

	if to := c.Query("toDate"); to != "" {
		parsed, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return filter, apperror.NewValidation("invalid toDate format (RFC3339 expected)")
		}
		filter.DateTo = &parsed
	}

	return filter, nil
}
