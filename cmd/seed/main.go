// Package main provides a CLI tool for seeding the database with an
// admin user and optional demo data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"gescom/internal/core/id"
	"gescom/internal/core/security"
	"gescom/internal/core/types"
	"gescom/internal/domain/catalogs/client"
	"gescom/internal/domain/catalogs/product"
	"gescom/internal/domain/documents/purchase"
	"gescom/internal/domain/documents/sale"
	"gescom/internal/domain/inventory"
	"gescom/internal/domain/registers/stock"
	"gescom/internal/infrastructure/numerator"
	"gescom/internal/infrastructure/storage/postgres"
	"gescom/internal/infrastructure/storage/postgres/catalog_repo"
	"gescom/internal/infrastructure/storage/postgres/document_repo"
	"gescom/internal/infrastructure/storage/postgres/register_repo"
	"gescom/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedAdminUser(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@gescom.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	var existingID id.ID
	err := pool.QueryRow(ctx,
		`SELECT id FROM sys_users WHERE email = $1 AND deleted_at IS NULL`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	now := time.Now().UTC()

	_, err = pool.Exec(ctx, `
		INSERT INTO sys_users (
			id, email, password_hash, first_name, last_name,
			is_active, is_admin, created_at, updated_at, version
		)
		VALUES ($1, $2, $3, 'System', 'Admin', true, true, $4, $4, 1)
	`, userID, adminEmail, string(passwordHash), now)
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO sys_user_roles (user_id, role_code, granted_by, granted_at)
		VALUES ($1, $2, NULL, $3)
		ON CONFLICT (user_id, role_code) DO NOTHING
	`, userID, string(security.RoleAdmin), now)
	if err != nil {
		return fmt.Errorf("assign admin role: %w", err)
	}

	log.Infow("admin user created", "email", adminEmail, "user_id", userID)
	return nil
}

// seedDemoData creates a small office-supplies shop through the domain
// services, so codes, stock levels, average costs and the movement
// journal all come out the same way normal operation produces them.
func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	log.Info("seeding demo data...")

	txManager := postgres.NewTxManager(pool)
	numeratorService := numerator.New(pool)

	productRepo := catalog_repo.NewProductRepo(txManager)
	clientRepo := catalog_repo.NewClientRepo(txManager)
	purchaseRepo := document_repo.NewPurchaseRepo(txManager)
	saleRepo := document_repo.NewSaleRepo(txManager)
	stockRepo := register_repo.NewStockRepo(txManager)

	engine := inventory.NewEngine()
	stockService := stock.NewService(stockRepo)
	publisher := postgres.NewOutboxPublisher(txManager)

	productService := product.NewService(productRepo, txManager, numeratorService)
	clientService := client.NewService(clientRepo, txManager, numeratorService)
	purchaseService := purchase.NewService(
		purchaseRepo, productRepo, engine, stockService,
		numeratorService, txManager, security.OpenPolicy{}, publisher,
	)
	saleService := sale.NewService(
		saleRepo, productRepo, clientRepo, engine, stockService,
		numeratorService, txManager, security.OpenPolicy{}, publisher,
	)

	// --- Products ---
	demoProducts := []struct {
		name     string
		category string
		cost     string
		price    string
		stock    float64
		minimum  float64
	}{
		{"A4 copy paper (500 sheets)", "paper", "3.20", "5.90", 120, 20},
		{"Ballpoint pen blue", "writing", "0.35", "1.20", 500, 100},
		{"Desktop stapler", "accessories", "6.50", "12.90", 25, 5},
		{"Paper clips 28mm (box of 100)", "accessories", "0.80", "1.95", 60, 10},
		{"Lever arch file", "filing", "2.10", "4.50", 80, 15},
	}

	products := make([]*product.Product, 0, len(demoProducts))
	for _, dp := range demoProducts {
		p := product.New("", dp.name, types.MustMoney(dp.cost), types.MustMoney(dp.price))
		p.Category = dp.category
		p.StockQuantity = types.NewQuantityFromFloat64(dp.stock)
		p.StockMinimum = types.NewQuantityFromFloat64(dp.minimum)

		if err := productService.Create(ctx, p); err != nil {
			return fmt.Errorf("create product %q: %w", dp.name, err)
		}
		products = append(products, p)
	}
	log.Infow("demo products created", "count", len(products))

	// --- Clients ---
	demoClients := []struct {
		name  string
		email string
		city  string
	}{
		{"Martin & Sons Consulting", "contact@martin-sons.example", "Lyon"},
		{"Atelier Dubois", "hello@atelier-dubois.example", "Paris"},
		{"Cafe du Centre", "cafe.centre@example.com", "Bordeaux"},
	}

	clients := make([]*client.Client, 0, len(demoClients))
	for _, dc := range demoClients {
		email := dc.email
		city := dc.city
		cl := client.New("", dc.name)
		cl.Email = &email
		cl.City = &city

		if err := clientService.Create(ctx, cl); err != nil {
			return fmt.Errorf("create client %q: %w", dc.name, err)
		}
		clients = append(clients, cl)
	}
	log.Infow("demo clients created", "count", len(clients))

	// --- Purchases ---
	// Restock at a higher price than the opening stock, so the
	// weighted-average cost visibly moves.
	restocks := []struct {
		productIdx int
		quantity   float64
		unitPrice  string
		supplier   string
	}{
		{0, 50, "3.40", "Paperco Distribution"},
		{1, 200, "0.38", "Brightline Supplies"},
		{2, 10, "6.80", "Brightline Supplies"},
	}

	for _, r := range restocks {
		doc := purchase.New(products[r.productIdx].ID,
			types.NewQuantityFromFloat64(r.quantity), types.MustMoney(r.unitPrice))
		doc.Supplier = r.supplier

		if err := purchaseService.Create(ctx, doc); err != nil {
			return fmt.Errorf("create purchase for %q: %w", products[r.productIdx].Name, err)
		}
	}
	log.Infow("demo purchases created", "count", len(restocks))

	// --- Sales ---
	demoSales := []struct {
		productIdx int
		clientIdx  int
		quantity   float64
	}{
		{0, 0, 10},
		{1, 1, 50},
		{4, 2, 5},
		{0, 2, 4},
	}

	for _, ds := range demoSales {
		doc := sale.New(products[ds.productIdx].ID, clients[ds.clientIdx].ID,
			types.NewQuantityFromFloat64(ds.quantity), types.Zero())

		if err := saleService.Create(ctx, doc); err != nil {
			return fmt.Errorf("create sale for %q: %w", products[ds.productIdx].Name, err)
		}
	}
	log.Infow("demo sales created", "count", len(demoSales))

	log.Info("demo data seeded successfully")
	return nil
}
