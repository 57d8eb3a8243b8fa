package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gescom/internal/domain/alerts"
)

// AlertHandler handles alert evaluation endpoints.
type AlertHandler struct {
	*BaseHandler
	service *alerts.Service
}

// NewAlertHandler creates a new alert handler.
func NewAlertHandler(base *BaseHandler, service *alerts.Service) *AlertHandler {
	return &AlertHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /alerts - evaluate all rules against current state.
// Alerts are never stored; every call recomputes them.
func (h *AlertHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	result, err := h.service.Evaluate(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	urgentCount := 0
	for _, a := range result {
		if a.Urgent {
			urgentCount++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       result,
		"totalCount":  len(result),
		"urgentCount": urgentCount,
	})
}
