// Package v1 provides the HTTP API router.
package v1

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"gescom/internal/core/security"
	"gescom/internal/domain"
	"gescom/internal/domain/alerts"
	"gescom/internal/domain/audit"
	"gescom/internal/domain/auth"
	"gescom/internal/domain/catalogs/client"
	"gescom/internal/domain/catalogs/product"
	"gescom/internal/domain/documents/purchase"
	"gescom/internal/domain/documents/sale"
	"gescom/internal/domain/registers/stock"
	"gescom/internal/domain/reports"
	"gescom/internal/infrastructure/http/v1/handlers"
	"gescom/internal/infrastructure/http/v1/middleware"
	"gescom/internal/infrastructure/storage/postgres"
	"gescom/pkg/logger"
)

// RouterConfig holds everything the router needs.
type RouterConfig struct {
	Pool    *pgxpool.Pool
	Logger  *logger.Logger
	Version string

	JWTValidator     middleware.JWTValidator
	IdempotencyStore *postgres.IdempotencyStore
	AuditService     *postgres.AuditService

	AuthService     *auth.Service
	ProductService  *product.Service
	ClientService   *client.Service
	PurchaseService *purchase.Service
	SaleService     *sale.Service
	StockService    *stock.Service
	AlertService    *alerts.Service
	ReportService   *reports.Service
}

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	registerAuditHooks(cfg)

	base := handlers.NewBaseHandler()

	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	api := router.Group("/api/v1")

	public := api.Group("")

	protected := api.Group("")
	protected.Use(middleware.Auth(cfg.JWTValidator))
	protected.Use(middleware.UserContext())
	protected.Use(middleware.Idempotency(cfg.IdempotencyStore))

	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)
	authHandler.RegisterRoutes(public, protected, middleware.RequireRole(string(security.RoleAdmin)))

	productHandler := handlers.NewProductHandler(base, cfg.ProductService)
	registerCatalogRoutes(
		protected.Group("/products"),
		productHandler,
		security.PermProductsRead, security.PermProductsWrite,
	)
	protected.GET("/products/low-stock",
		middleware.RequirePermission(security.PermProductsRead), productHandler.ListLowStock)

	clientHandler := handlers.NewClientHandler(base, cfg.ClientService, cfg.ReportService)
	registerCatalogRoutes(
		protected.Group("/clients"),
		clientHandler,
		security.PermClientsRead, security.PermClientsWrite,
	)
	protected.GET("/clients/:id/stats",
		middleware.RequirePermission(security.PermClientsRead), clientHandler.GetStats)

	registerDocumentRoutes(
		protected.Group("/purchases"),
		handlers.NewPurchaseHandler(base, cfg.PurchaseService),
		security.PermPurchasesRead, security.PermPurchasesWrite, security.PermPurchasesVoid,
	)

	registerDocumentRoutes(
		protected.Group("/sales"),
		handlers.NewSaleHandler(base, cfg.SaleService),
		security.PermSalesRead, security.PermSalesWrite, security.PermSalesVoid,
	)

	stockHandler := handlers.NewStockHandler(base, cfg.StockService)
	stockGroup := protected.Group("/stock", middleware.RequirePermission(security.PermStockRead))
	{
		stockGroup.GET("/movements", stockHandler.GetMovements)
		stockGroup.GET("/turnover", stockHandler.GetTurnover)
		stockGroup.GET("/quantity-at-date", stockHandler.GetQuantityAtDate)
	}

	alertHandler := handlers.NewAlertHandler(base, cfg.AlertService)
	protected.GET("/alerts",
		middleware.RequirePermission(security.PermAlertsRead), alertHandler.List)

	reportHandler := handlers.NewReportHandler(base, cfg.ReportService)
	reportGroup := protected.Group("/reports", middleware.RequirePermission(security.PermReportsRead))
	{
		reportGroup.GET("/balance", reportHandler.GetBalance)
		reportGroup.GET("/period-summary", reportHandler.GetPeriodSummary)
		reportGroup.GET("/top-products", reportHandler.GetTopProducts)
		reportGroup.GET("/top-clients", reportHandler.GetTopClients)
		reportGroup.GET("/top-suppliers", reportHandler.GetTopSuppliers)
		reportGroup.GET("/product-performance", reportHandler.GetProductPerformance)
		reportGroup.GET("/dashboard", reportHandler.GetDashboard)
	}

	auditHandler := handlers.NewAuditHandler(base, cfg.AuditService)
	protected.GET("/audit/:entityType/:id",
		middleware.RequirePermission(security.PermAuditRead), auditHandler.GetEntityHistory)

	return router
}

// registerAuditHooks attaches author stamping and audit logging to the
// domain services. The after-hooks fire once the service transaction
// has committed; the audit insert then runs on the pool, and a failure
// only logs a warning rather than undoing the committed change.
func registerAuditHooks(cfg RouterConfig) {
	cfg.ProductService.Hooks().On(domain.AfterCreate, func(ctx context.Context, p *product.Product) error {
		return cfg.AuditService.LogChange(ctx, "product", p.ID, postgres.AuditActionCreate, map[string]any{
			"code": p.Code,
			"name": p.Name,
		})
	})
	cfg.ProductService.Hooks().On(domain.AfterUpdate, func(ctx context.Context, p *product.Product) error {
		return cfg.AuditService.LogChange(ctx, "product", p.ID, postgres.AuditActionUpdate, map[string]any{
			"name":    p.Name,
			"version": p.Version,
		})
	})

	cfg.ClientService.Hooks().On(domain.AfterCreate, func(ctx context.Context, c *client.Client) error {
		return cfg.AuditService.LogChange(ctx, "client", c.ID, postgres.AuditActionCreate, map[string]any{
			"code": c.Code,
			"name": c.Name,
		})
	})
	cfg.ClientService.Hooks().On(domain.AfterUpdate, func(ctx context.Context, c *client.Client) error {
		return cfg.AuditService.LogChange(ctx, "client", c.ID, postgres.AuditActionUpdate, map[string]any{
			"name":    c.Name,
			"version": c.Version,
		})
	})

	cfg.PurchaseService.Hooks().On(domain.BeforeCreate, func(ctx context.Context, doc *purchase.Purchase) error {
		audit.EnrichCreatedBy(ctx, &doc.CreatedBy, &doc.UpdatedBy)
		return nil
	})
	cfg.PurchaseService.Hooks().On(domain.AfterCreate, func(ctx context.Context, doc *purchase.Purchase) error {
		return cfg.AuditService.LogChange(ctx, "purchase", doc.ID, postgres.AuditActionCreate, map[string]any{
			"number":      doc.Number,
			"productId":   doc.ProductID,
			"quantity":    doc.Quantity,
			"totalAmount": doc.TotalAmount,
		})
	})

	cfg.SaleService.Hooks().On(domain.BeforeCreate, func(ctx context.Context, doc *sale.Sale) error {
		audit.EnrichCreatedBy(ctx, &doc.CreatedBy, &doc.UpdatedBy)
		return nil
	})
	cfg.SaleService.Hooks().On(domain.AfterCreate, func(ctx context.Context, doc *sale.Sale) error {
		return cfg.AuditService.LogChange(ctx, "sale", doc.ID, postgres.AuditActionCreate, map[string]any{
			"number":      doc.Number,
			"productId":   doc.ProductID,
			"clientId":    doc.ClientID,
			"quantity":    doc.Quantity,
			"totalAmount": doc.TotalAmount,
		})
	})
}
