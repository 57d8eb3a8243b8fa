package product

import (
	"context"
	"fmt"
	"time"

	"gescom/internal/core/apperror"
	"gescom/internal/core/id"
	"gescom/internal/core/numerator"
	"gescom/internal/core/tx"
	"gescom/internal/domain"
)

// Service provides business logic for the Product catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Product]
	repo      Repository
	numerator numerator.Generator
}

// NewService creates a new Product service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	numerator numerator.Generator,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      numerator,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)

	return svc
}

// prepareForCreate handles code generation and creation-time pricing
// policy. The sale price must exceed the purchase cost when the product
// is created; the rule is deliberately not re-checked later, because
// purchases move the average cost underneath the price.
func (s *Service) prepareForCreate(ctx context.Context, p *Product) error {
	if p.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("PRD"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		p.Code = code
	} else {
		if exists, err := s.repo.ExistsByCode(ctx, p.Code); err == nil && exists {
			return apperror.NewDuplicate("product", "code", p.Code)
		}
	}

	if !p.SalePrice.GreaterThan(p.PurchaseCost) {
		return apperror.NewValidation("sale price must be greater than purchase cost").
			WithDetail("salePrice", p.SalePrice.String()).
			WithDetail("purchaseCost", p.PurchaseCost.String())
	}

	// The opening stock becomes the immutable baseline for turnover.
	p.InitialStock = p.StockQuantity

	return nil
}

// --- Entity-specific methods ---

// FindLowStock retrieves active products with stock at or below minimum.
func (s *Service) FindLowStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	return s.repo.FindLowStock(ctx, filter)
}

// FindActive retrieves all active products.
func (s *Service) FindActive(ctx context.Context) ([]*Product, error) {
	return s.repo.FindActive(ctx)
}

// Deactivate marks a product as not sellable without deleting it.
func (s *Service) Deactivate(ctx context.Context, productID id.ID) error {
	p, err := s.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	p.Active = false
	return s.Update(ctx, p)
}
