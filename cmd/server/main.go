// Package main is the entry point for the gescom API server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gescom/internal/core/security"
	"gescom/internal/domain/alerts"
	"gescom/internal/domain/auth"
	"gescom/internal/domain/catalogs/client"
	"gescom/internal/domain/catalogs/product"
	"gescom/internal/domain/documents/purchase"
	"gescom/internal/domain/documents/sale"
	"gescom/internal/domain/inventory"
	"gescom/internal/domain/registers/stock"
	"gescom/internal/domain/reports"
	v1 "gescom/internal/infrastructure/http/v1"
	"gescom/internal/infrastructure/numerator"
	"gescom/internal/infrastructure/storage/postgres"
	"gescom/internal/infrastructure/storage/postgres/auth_repo"
	"gescom/internal/infrastructure/storage/postgres/catalog_repo"
	"gescom/internal/infrastructure/storage/postgres/document_repo"
	"gescom/internal/infrastructure/storage/postgres/register_repo"
	"gescom/internal/infrastructure/storage/postgres/report_repo"
	"gescom/pkg/logger"
)

var version = "dev"

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting gescom server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Infrastructure services ---
	numeratorService := numerator.New(pool)
	idempotencyStore := postgres.NewIdempotencyStore(pool, txManager,
		getEnvDuration("IDEMPOTENCY_TTL", 24*time.Hour))

	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to create audit service", "error", err)
	}

	outboxPublisher := postgres.NewOutboxPublisher(txManager)

	// --- Repositories ---
	productRepo := catalog_repo.NewProductRepo(txManager)
	clientRepo := catalog_repo.NewClientRepo(txManager)
	purchaseRepo := document_repo.NewPurchaseRepo(txManager)
	saleRepo := document_repo.NewSaleRepo(txManager)
	stockRepo := register_repo.NewStockRepo(txManager)
	reportRepo := report_repo.NewReportRepo(txManager)
	userRepo := auth_repo.NewUserRepo(txManager)
	tokenRepo := auth_repo.NewTokenRepo(txManager)

	// --- Domain services ---
	engine := inventory.NewEngine()
	stockService := stock.NewService(stockRepo)

	productService := product.NewService(productRepo, txManager, numeratorService)
	clientService := client.NewService(clientRepo, txManager, numeratorService)

	policy := cancellationPolicy()

	purchaseService := purchase.NewService(
		purchaseRepo, productRepo, engine, stockService,
		numeratorService, txManager, policy, outboxPublisher,
	)
	saleService := sale.NewService(
		saleRepo, productRepo, clientRepo, engine, stockService,
		numeratorService, txManager, policy, outboxPublisher,
	)

	reportService := reports.NewService(reportRepo, txManager)

	alertRules, err := loadAlertRules()
	if err != nil {
		log.Fatalw("failed to load alert rules", "error", err)
	}
	alertService := alerts.NewService(
		productService, reportRepo, stockRepo, alertRules, alerts.DefaultConfig(),
	)

	// --- Auth ---
	jwtSecret := mustEnv("JWT_SECRET")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))
	authService := auth.NewService(
		userRepo, tokenRepo, txManager, jwtService, auth.DefaultServiceConfig(),
	)

	// --- Background workers ---
	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()
	go runOutboxRelay(workerCtx, pool, log)
	go runIdempotencyCleanup(workerCtx, idempotencyStore, log)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:    pool.Unwrap(),
		Logger:  log,
		Version: version,

		JWTValidator:     jwtService,
		IdempotencyStore: idempotencyStore,
		AuditService:     auditService,

		AuthService:     authService,
		ProductService:  productService,
		ClientService:   clientService,
		PurchaseService: purchaseService,
		SaleService:     saleService,
		StockService:    stockService,
		AlertService:    alertService,
		ReportService:   reportService,
	})

	// --- HTTP server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port, "version", version)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	stopWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

// cancellationPolicy builds the document cancellation policy from env.
// CANCEL_WINDOW_DAYS=0 (the default) allows cancelling any document.
func cancellationPolicy() security.CancellationPolicy {
	if days := getEnvInt("CANCEL_WINDOW_DAYS", 0); days > 0 {
		return security.NewWindowPolicy(time.Duration(days) * 24 * time.Hour)
	}
	return security.OpenPolicy{}
}

// loadAlertRules reads optional custom alert rules from the file named
// by ALERT_RULES_FILE (a JSON array of rules). Returns nil when unset.
func loadAlertRules() (*alerts.RuleSet, error) {
	path := os.Getenv("ALERT_RULES_FILE")
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alert rules: %w", err)
	}

	var rules []alerts.Rule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse alert rules: %w", err)
	}

	ruleSet, err := alerts.NewRuleSet()
	if err != nil {
		return nil, err
	}
	for _, r := range rules {
		if err := ruleSet.Add(r); err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Name, err)
		}
	}

	return ruleSet, nil
}

// runOutboxRelay drains the transactional outbox. Events are logged;
// a message broker can replace the handler without touching the
// document services.
func runOutboxRelay(ctx context.Context, pool *postgres.Pool, log *logger.Logger) {
	relay := postgres.NewOutboxRelay(pool.Unwrap(), 100, outboxLogHandler{log: log})
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	// Messages that exhausted their retries move to the dead letter
	// table so the pending queue stays short.
	dlqTicker := time.NewTicker(10 * time.Minute)
	defer dlqTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := relay.ProcessBatch(ctx); err != nil {
				log.Warnw("outbox relay batch failed", "error", err)
			} else if n > 0 {
				log.Debugw("outbox relay processed messages", "count", n)
			}
		case <-dlqTicker.C:
			if n, err := relay.MoveToDLQ(ctx); err != nil {
				log.Warnw("outbox DLQ sweep failed", "error", err)
			} else if n > 0 {
				log.Warnw("outbox messages moved to DLQ", "count", n)
			}
		}
	}
}

type outboxLogHandler struct {
	log *logger.Logger
}

func (h outboxLogHandler) Handle(ctx context.Context, msg *postgres.OutboxMessage) error {
	h.log.Infow("domain event",
		"event_type", msg.EventType,
		"aggregate_type", msg.AggregateType,
		"aggregate_id", msg.AggregateID,
	)
	return nil
}

// runIdempotencyCleanup purges expired idempotency keys hourly.
func runIdempotencyCleanup(ctx context.Context, store *postgres.IdempotencyStore, log *logger.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := store.CleanupExpired(ctx); err != nil {
				log.Warnw("idempotency cleanup failed", "error", err)
			} else if n > 0 {
				log.Infow("idempotency keys purged", "count", n)
			}
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
