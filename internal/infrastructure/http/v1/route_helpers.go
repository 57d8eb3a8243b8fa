package v1

import (
	"github.com/gin-gonic/gin"

	"gescom/internal/core/security"
	"gescom/internal/infrastructure/http/v1/middleware"
)

// catalogRoutes is the handler set every catalog entity exposes.
type catalogRoutes interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	SetDeletionMark(c *gin.Context)
}

// documentRoutes is the handler set every document type exposes.
// Documents are immutable once recorded: no update, only cancel.
type documentRoutes interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Cancel(c *gin.Context)
}

// registerCatalogRoutes wires the standard CRUD route set for a catalog
// under the given group, guarded by read/write permissions.
func registerCatalogRoutes(group *gin.RouterGroup, h catalogRoutes, readPerm, writePerm security.Permission) {
	read := middleware.RequirePermission(readPerm)
	write := middleware.RequirePermission(writePerm)

	group.GET("", read, h.List)
	group.GET("/:id", read, h.Get)
	group.POST("", write, h.Create)
	group.PUT("/:id", write, h.Update)
	group.DELETE("/:id", write, h.Delete)
	group.POST("/:id/deletion-mark", write, h.SetDeletionMark)
}

// registerDocumentRoutes wires the standard route set for a document
// type: list, get, create and cancel, each with its own permission.
func registerDocumentRoutes(group *gin.RouterGroup, h documentRoutes, readPerm, createPerm, cancelPerm security.Permission) {
	group.GET("", middleware.RequirePermission(readPerm), h.List)
	group.GET("/:id", middleware.RequirePermission(readPerm), h.Get)
	group.POST("", middleware.RequirePermission(createPerm), h.Create)
	group.POST("/:id/cancel", middleware.RequirePermission(cancelPerm), h.Cancel)
}
