// Package inventory owns the stock and valuation rules.
//
// The Engine is the single authority for mutating a product's
// StockQuantity and PurchaseCost. Transaction services load the product
// under a row lock, apply exactly one engine operation, and persist the
// result together with the document in the same transaction. No other
// code path may assign these fields.
package inventory

import (
	"gescom/internal/core/apperror"
	"gescom/internal/core/types"
	"gescom/internal/domain/catalogs/product"
)

// Engine applies transaction events to product stock state.
// All operations are pure with respect to external state: they either
// mutate the passed product in full or leave it untouched and return
// an error.
type Engine struct{}

// NewEngine creates the inventory engine.
func NewEngine() *Engine {
	return &Engine{}
}

// ApplyPurchase increases stock and recomputes the weighted-average
// purchase cost:
//
//	prior stock 0:  cost = unit price
//	otherwise:      cost = (prior*oldCost + qty*price) / (prior + qty)
//
// The average is order-dependent and is not rewound on cancellation.
func (e *Engine) ApplyPurchase(p *product.Product, qty types.Quantity, unitPrice types.Money) error {
	if !qty.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("quantity", qty.String())
	}
	if !unitPrice.IsPositive() {
		return apperror.NewValidation("unit price must be positive").
			WithDetail("unitPrice", unitPrice.String())
	}

	prior := p.StockQuantity

	if prior.IsPositive() {
		oldValue := p.PurchaseCost.Mul(prior.Decimal())
		newValue := unitPrice.Mul(qty.Decimal())
		p.PurchaseCost = oldValue.Add(newValue).Div(prior.Add(qty).Decimal())
	} else {
		p.PurchaseCost = unitPrice
	}

	p.StockQuantity = prior.Add(qty)
	return nil
}

// ApplySale decreases stock. Fails with InsufficientStock when the
// requested quantity exceeds what is available; on failure the product
// is untouched. The average cost never changes on sales.
func (e *Engine) ApplySale(p *product.Product, qty types.Quantity) error {
	if !qty.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("quantity", qty.String())
	}

	if p.StockQuantity < qty {
		return apperror.NewInsufficientStock(
			p.ID.String(),
			qty.Float64(),
			p.StockQuantity.Float64(),
		)
	}

	p.StockQuantity = p.StockQuantity.Sub(qty)
	return nil
}

// ReversePurchase removes previously received stock when a purchase is
// cancelled. Fails with InsufficientStock if the stock has since been
// sold through - undoing the purchase may not drive stock negative.
// The average cost is left as-is: rewinding it would require a full
// cost history.
func (e *Engine) ReversePurchase(p *product.Product, qty types.Quantity) error {
	if !qty.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("quantity", qty.String())
	}

	if p.StockQuantity < qty {
		return apperror.NewInsufficientStock(
			p.ID.String(),
			qty.Float64(),
			p.StockQuantity.Float64(),
		)
	}

	p.StockQuantity = p.StockQuantity.Sub(qty)
	return nil
}

// ReverseSale restores stock when a sale is cancelled. Adding stock
// back cannot violate the non-negativity invariant, so this always
// succeeds for a valid quantity.
func (e *Engine) ReverseSale(p *product.Product, qty types.Quantity) error {
	if !qty.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("quantity", qty.String())
	}

	p.StockQuantity = p.StockQuantity.Add(qty)
	return nil
}
