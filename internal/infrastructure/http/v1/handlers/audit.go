package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gescom/internal/core/apperror"
	"gescom/internal/core/id"
	"gescom/internal/infrastructure/storage/postgres"
)

// AuditHandler exposes the audit trail for inspection.
type AuditHandler struct {
	*BaseHandler
	service *postgres.AuditService
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, service *postgres.AuditService) *AuditHandler {
	return &AuditHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetEntityHistory handles GET /audit/:entityType/:id - the change
// history for one entity, newest first.
func (h *AuditHandler) GetEntityHistory(c *gin.Context) {
	ctx := c.Request.Context()

	entityType := c.Param("entityType")
	if entityType == "" {
		h.Error(c, apperror.NewValidation("entityType is required"))
		return
	}

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	limit := h.ParseIntQuery(c, "limit", 50)
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	entries, err := h.service.GetEntityHistory(ctx, entityType, entityID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]gin.H, len(entries))
	for i, e := range entries {
		items[i] = gin.H{
			"id":         e.ID,
			"entityType": e.EntityType,
			"entityId":   e.EntityID,
			"action":     e.Action,
			"userId":     e.UserID,
			"userEmail":  e.UserEmail,
			"changes":    e.Changes,
			"createdAt":  e.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
