package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gescom/internal/core/apperror"
	"gescom/internal/core/entity"
	"gescom/internal/core/id"
	"gescom/internal/domain/registers/stock"
)

// StockHandler handles stock register read endpoints. The register
// itself is written only by document services.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *stock.Service) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetMovements handles GET /stock/movements?productId=... - the
// movement journal for one product.
func (h *StockHandler) GetMovements(c *gin.Context) {
	ctx := c.Request.Context()

	productIDStr := c.Query("productId")
	if productIDStr == "" {
		h.Error(c, apperror.NewValidation("productId is required"))
		return
	}
	productID, err := id.Parse(productIDStr)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	filter := stock.MovementFilter{
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	if recordType := c.Query("recordType"); recordType != "" {
		rt := entity.RecordType(recordType)
		if rt != entity.RecordTypeReceipt && rt != entity.RecordTypeExpense {
			h.Error(c, apperror.NewValidation("recordType must be receipt or expense"))
			return
		}
		filter.RecordType = &rt
	}

	if from := c.Query("fromDate"); from != "" {
		parsed, err := time.Parse(time.RFC3339, from)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid fromDate format (RFC3339 expected)"))
			return
		}
		filter.FromDate = &parsed
	}

	if to := c.Query("toDate"); to != "" {
		parsed, err := time.Parse(time.RFC3339, to)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid toDate format (RFC3339 expected)"))
			return
		}
		filter.ToDate = &parsed
	}

	movements, err := h.service.GetMovementHistory(ctx, productID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": movements})
}

// GetTurnover handles GET /stock/turnover - receipt/expense totals with
// opening and closing balances over a period.
func (h *StockHandler) GetTurnover(c *gin.Context) {
	ctx := c.Request.Context()

	fromDate, toDate, err := h.parsePeriod(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	filter := stock.TurnoverFilter{
		FromDate: fromDate,
		ToDate:   toDate,
	}

	if productID := c.Query("productId"); productID != "" {
		parsed, err := id.Parse(productID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productId format"))
			return
		}
		filter.ProductID = &parsed
	}

	turnover, err := h.service.GetTurnover(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, turnover)
}

// GetQuantityAtDate handles GET /stock/quantity-at-date - the stock
// level of one product at a historical point, reconstructed from the
// journal.
func (h *StockHandler) GetQuantityAtDate(c *gin.Context) {
	ctx := c.Request.Context()

	productIDStr := c.Query("productId")
	if productIDStr == "" {
		h.Error(c, apperror.NewValidation("productId is required"))
		return
	}
	productID, err := id.Parse(productIDStr)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		h.Error(c, apperror.NewValidation("date is required"))
		return
	}
	date, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid date format (RFC3339 expected)"))
		return
	}

	quantity, err := h.service.GetQuantityAtDate(ctx, productID, date)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"productId": productID,
		"date":      date,
		"quantity":  quantity,
	})
}

func (h *StockHandler) parsePeriod(c *gin.Context) (time.Time, time.Time, error) {
	fromStr := c.Query("fromDate")
	toStr := c.Query("toDate")
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, apperror.NewValidation("fromDate and toDate are required")
	}

	fromDate, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.NewValidation("invalid fromDate format (RFC3339 expected)")
	}

	toDate, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.NewValidation("invalid toDate format (RFC3339 expected)")
	}

	if fromDate.After(toDate) {
		return time.Time{}, time.Time{}, apperror.NewValidation("fromDate must be before toDate")
	}

	return fromDate, toDate, nil
}
