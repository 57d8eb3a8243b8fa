// Package product provides the Product catalog.
// A product carries its current stock level and weighted-average
// purchase cost; both are mutated exclusively by the inventory engine.
package product

import (
	"context"

	"github.com/shopspring/decimal"

	"gescom/internal/core/apperror"
	"gescom/internal/core/entity"
	"gescom/internal/core/types"
)

// Product represents a sellable item.
type Product struct {
	entity.Catalog

	// Category groups products for reporting (free text)
	Category string `db:"category" json:"category,omitempty"`

	// Description is a detailed description
	Description *string `db:"description" json:"description,omitempty"`

	// PurchaseCost is the running weighted-average purchase cost.
	// Owned by the inventory engine; never assign directly.
	PurchaseCost types.Money `db:"purchase_cost" json:"purchaseCost"`

	// SalePrice is the default selling price per unit
	SalePrice types.Money `db:"sale_price" json:"salePrice"`

	// StockQuantity is the current stock level. Invariant: >= 0.
	// Owned by the inventory engine; never assign directly.
	StockQuantity types.Quantity `db:"stock_quantity" json:"stockQuantity"`

	// StockMinimum is the low-stock alert threshold
	StockMinimum types.Quantity `db:"stock_minimum" json:"stockMinimum"`

	// InitialStock is the stock level at creation time.
	// Never mutated afterwards; used for turnover ratio.
	InitialStock types.Quantity `db:"initial_stock" json:"initialStock"`

	// Active marks the product as sellable
	Active bool `db:"active" json:"active"`
}

// New creates a new active Product.
func New(code, name string, purchaseCost, salePrice types.Money) *Product {
	return &Product{
		Catalog:      entity.NewCatalog(code, name),
		PurchaseCost: purchaseCost,
		SalePrice:    salePrice,
		Active:       true,
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	// Base catalog validation
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.PurchaseCost.IsNegative() {
		return apperror.NewValidation("purchase cost cannot be negative").
			WithDetail("field", "purchaseCost")
	}

	if p.SalePrice.IsNegative() {
		return apperror.NewValidation("sale price cannot be negative").
			WithDetail("field", "salePrice")
	}

	if p.StockQuantity.IsNegative() {
		return apperror.NewValidation("stock quantity cannot be negative").
			WithDetail("field", "stockQuantity")
	}

	if p.StockMinimum.IsNegative() {
		return apperror.NewValidation("stock minimum cannot be negative").
			WithDetail("field", "stockMinimum")
	}

	return nil
}

// IsOutOfStock returns true when nothing is left.
func (p *Product) IsOutOfStock() bool {
	return p.StockQuantity <= 0
}

// IsLowStock returns true when stock is at or below the minimum.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.StockMinimum
}

// UnitMargin returns sale price minus current average cost.
func (p *Product) UnitMargin() types.Money {
	return p.SalePrice.Sub(p.PurchaseCost)
}

// MarginPercent returns margin relative to cost, in percent.
// Returns zero when the cost is zero.
func (p *Product) MarginPercent() decimal.Decimal {
	if p.PurchaseCost.IsZero() {
		return decimal.Zero
	}
	return p.UnitMargin().
		Div(p.PurchaseCost).
		Mul(decimal.NewFromInt(100))
}

// StockValue returns current stock valued at average cost.
func (p *Product) StockValue() types.Money {
	return p.PurchaseCost.Mul(p.StockQuantity.Decimal())
}
