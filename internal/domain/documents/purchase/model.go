// Package purchase provides the Purchase document: goods received from
// a supplier into stock.
package purchase

import (
	"context"

	"gescom/internal/core/apperror"
	"gescom/internal/core/entity"
	"gescom/internal/core/id"
	"gescom/internal/core/types"
)

// Purchase represents a stock replenishment from a supplier.
// One product per document; the unit price feeds the weighted-average
// cost of the product.
type Purchase struct {
	entity.Document

	// Product being received
	ProductID id.ID `db:"product_id" json:"productId"`

	// Quantity received
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// UnitPrice is the purchase price per unit
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`

	// TotalAmount = UnitPrice * Quantity
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`

	// Supplier is a free-text supplier name (optional)
	Supplier string `db:"supplier" json:"supplier,omitempty"`

	// InvoiceNumber is the supplier's invoice reference (optional)
	InvoiceNumber string `db:"invoice_number" json:"invoiceNumber,omitempty"`
}

// New creates a new purchase document in completed state.
func New(productID id.ID, quantity types.Quantity, unitPrice types.Money) *Purchase {
	p := &Purchase{
		Document:  entity.NewDocument(),
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
	p.Recalculate()
	return p
}

// Recalculate updates the document total from quantity and price.
func (p *Purchase) Recalculate() {
	p.TotalAmount = p.UnitPrice.Mul(p.Quantity.Decimal())
}

// Validate implements entity.Validatable.
func (p *Purchase) Validate(ctx context.Context) error {
	if err := p.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}

	if !p.Quantity.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity").
			WithDetail("value", p.Quantity.String())
	}

	if !p.UnitPrice.IsPositive() {
		return apperror.NewValidation("unit price must be positive").
			WithDetail("field", "unitPrice").
			WithDetail("value", p.UnitPrice.String())
	}

	return nil
}

// GetDocumentType returns the document type name for the movement
// journal and audit trail.
func (p *Purchase) GetDocumentType() string {
	return "Purchase"
}

// GenerateMovements creates the stock register rows for this document.
func (p *Purchase) GenerateMovements() []entity.StockMovement {
	return []entity.StockMovement{
		entity.NewStockMovement(
			p.ID,
			p.GetDocumentType(),
			p.Date,
			entity.RecordTypeReceipt,
			p.ProductID,
			p.Quantity,
			p.TotalAmount,
		),
	}
}
