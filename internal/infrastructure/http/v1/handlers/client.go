package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gescom/internal/core/apperror"
	"gescom/internal/core/id"
	"gescom/internal/domain/catalogs/client"
	"gescom/internal/domain/reports"
	"gescom/internal/infrastructure/http/v1/dto"
)

// ClientHandler handles client catalog endpoints.
type ClientHandler struct {
	*CatalogHandler[*client.Client, dto.CreateClientRequest, dto.UpdateClientRequest]
	service *client.Service
	reports *reports.Service
}

// NewClientHandler creates a new client handler.
func NewClientHandler(base *BaseHandler, service *client.Service, reportService *reports.Service) *ClientHandler {
	catalogHandler := NewCatalogHandler(base, CatalogHandlerConfig[*client.Client, dto.CreateClientRequest, dto.UpdateClientRequest]{
		Service:    service.CatalogService,
		EntityName: "client",
		MapCreateDTO: func(req dto.CreateClientRequest) (*client.Client, error) {
			return req.ToClient(), nil
		},
		MapUpdateDTO: func(req dto.UpdateClientRequest, existing *client.Client) (*client.Client, error) {
			req.Apply(existing)
			return existing, nil
		},
		MapToDTO: func(cl *client.Client) any {
			return dto.FromClient(cl)
		},
	})

	return &ClientHandler{
		CatalogHandler: catalogHandler,
		service:        service,
		reports:        reportService,
	}
}

// GetStats handles GET /clients/:id/stats - derived purchase statistics
// for one client.
func (h *ClientHandler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	clientID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	// Ensure the client exists so a typo'd ID is a 404, not empty stats
	if _, err := h.service.GetByID(ctx, clientID); err != nil {
		h.Error(c, err)
		return
	}

	stats, err := h.reports.GetClientStats(ctx, clientID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
