package product

import (
	"context"

	"gescom/internal/core/id"
	"gescom/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// GetForUpdate retrieves a product with row lock.
	// Document posting uses this to serialize stock mutations.
	GetForUpdate(ctx context.Context, id id.ID) (*Product, error)

	// FindLowStock retrieves active products with stock at or below minimum.
	FindLowStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error)

	// FindActive retrieves all active products.
	FindActive(ctx context.Context) ([]*Product, error)
}
