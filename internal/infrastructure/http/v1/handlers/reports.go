package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gescom/internal/core/apperror"
	"gescom/internal/domain/reports"
)

// ReportHandler handles report endpoints. All reports are computed on
// demand from completed documents.
type ReportHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportHandler creates a new report handler.
func NewReportHandler(base *BaseHandler, service *reports.Service) *ReportHandler {
	return &ReportHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetBalance handles GET /reports/balance - sales minus purchases with
// margin. Date bounds are optional; absent bounds mean all time.
func (h *ReportHandler) GetBalance(c *gin.Context) {
	ctx := c.Request.Context()

	var from, to *time.Time

	if fromStr := c.Query("fromDate"); fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid fromDate format (RFC3339 expected)"))
			return
		}
		from = &parsed
	}

	if toStr := c.Query("toDate"); toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid toDate format (RFC3339 expected)"))
			return
		}
		to = &parsed
	}

	report, err := h.service.GetBalance(ctx, from, to)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetPeriodSummary handles GET /reports/period-summary - zero-filled
// daily or monthly buckets over a range.
func (h *ReportHandler) GetPeriodSummary(c *gin.Context) {
	ctx := c.Request.Context()

	filter, err := h.parsePeriodFilter(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	granularity := reports.Granularity(c.DefaultQuery("granularity", string(reports.GranularityDaily)))

	summary, err := h.service.GetPeriodSummary(ctx, granularity, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetTopProducts handles GET /reports/top-products.
func (h *ReportHandler) GetTopProducts(c *gin.Context) {
	h.topReport(c, h.service.GetTopProducts)
}

// GetTopClients handles GET /reports/top-clients.
func (h *ReportHandler) GetTopClients(c *gin.Context) {
	h.topReport(c, h.service.GetTopClients)
}

// GetTopSuppliers handles GET /reports/top-suppliers.
func (h *ReportHandler) GetTopSuppliers(c *gin.Context) {
	h.topReport(c, h.service.GetTopSuppliers)
}

// GetProductPerformance handles GET /reports/product-performance -
// per-product revenue, profit and turnover ratio over a window.
func (h *ReportHandler) GetProductPerformance(c *gin.Context) {
	ctx := c.Request.Context()

	filter, err := h.parsePeriodFilter(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	items, err := h.service.GetProductPerformance(ctx, filter, h.ParseIntQuery(c, "limit", 0))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetDashboard handles GET /reports/dashboard - the landing-page bundle.
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	dashboard, err := h.service.GetDashboard(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

func (h *ReportHandler) topReport(
	c *gin.Context,
	fetch func(ctx context.Context, filter reports.PeriodFilter, limit int) ([]reports.TopItem, error),
) {
	ctx := c.Request.Context()

	filter, err := h.parsePeriodFilter(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	items, err := fetch(ctx, filter, h.ParseIntQuery(c, "limit", 0))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *ReportHandler) parsePeriodFilter(c *gin.Context) (reports.PeriodFilter, error) {
	fromStr := c.Query("fromDate")
	toStr := c.Query("toDate")
	if fromStr == "" || toStr == "" {
		return reports.PeriodFilter{}, apperror.NewValidation("fromDate and toDate are required")
	}

	fromDate, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		return reports.PeriodFilter{}, apperror.NewValidation("invalid fromDate format (RFC3339 expected)")
	}

	toDate, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		return reports.PeriodFilter{}, apperror.NewValidation("invalid toDate format (RFC3339 expected)")
	}

	return reports.PeriodFilter{FromDate: fromDate, ToDate: toDate}, nil
}
