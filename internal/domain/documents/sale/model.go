// Package sale provides the Sale document: goods sold to a client out
// of stock.
package sale

import (
	"context"

	"github.com/shopspring/decimal"

	"gescom/internal/core/apperror"
	"gescom/internal/core/entity"
	"gescom/internal/core/id"
	"gescom/internal/core/types"
)

var oneHundred = decimal.NewFromInt(100)

// Sale represents a sale to a client.
// One product per document. The unit price defaults to the product's
// sale price when not given; a percentage discount applies to the
// gross amount.
type Sale struct {
	entity.Document

	// Product being sold
	ProductID id.ID `db:"product_id" json:"productId"`

	// Client buying the product
	ClientID id.ID `db:"client_id" json:"clientId"`

	// Quantity sold
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// UnitPrice is the selling price per unit; zero on input means
	// "use the product's sale price"
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`

	// DiscountPercent in [0, 100]
	DiscountPercent types.Money `db:"discount_percent" json:"discountPercent"`

	// DiscountAmount = gross * DiscountPercent / 100
	DiscountAmount types.Money `db:"discount_amount" json:"discountAmount"`

	// TotalAmount = gross - DiscountAmount
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`
}

// New creates a new sale document in completed state.
func New(productID, clientID id.ID, quantity types.Quantity, unitPrice types.Money) *Sale {
	s := &Sale{
		Document:  entity.NewDocument(),
		ProductID: productID,
		ClientID:  clientID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
	s.Recalculate()
	return s
}

// Gross returns quantity times unit price, before discount.
func (s *Sale) Gross() types.Money {
	return s.UnitPrice.Mul(s.Quantity.Decimal())
}

// Recalculate updates discount amount and total from quantity, price
// and discount percent.
func (s *Sale) Recalculate() {
	gross := s.Gross()
	s.DiscountAmount = gross.Mul(s.DiscountPercent).Div(oneHundred)
	s.TotalAmount = gross.Sub(s.DiscountAmount)
}

// Validate implements entity.Validatable.
func (s *Sale) Validate(ctx context.Context) error {
	if err := s.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(s.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}

	if id.IsNil(s.ClientID) {
		return apperror.NewValidation("client is required").
			WithDetail("field", "clientId")
	}

	if !s.Quantity.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity").
			WithDetail("value", s.Quantity.String())
	}

	if !s.UnitPrice.IsPositive() {
		return apperror.NewValidation("unit price must be positive").
			WithDetail("field", "unitPrice").
			WithDetail("value", s.UnitPrice.String())
	}

	if s.DiscountPercent.IsNegative() || s.DiscountPercent.GreaterThan(oneHundred) {
		return apperror.NewValidation("discount percent must be between 0 and 100").
			WithDetail("field", "discountPercent").
			WithDetail("value", s.DiscountPercent.String())
	}

	return nil
}

// GetDocumentType returns the document type name for the movement
// journal and audit trail.
func (s *Sale) GetDocumentType() string {
	return "Sale"
}

// GenerateMovements creates the stock register rows for this document.
func (s *Sale) GenerateMovements() []entity.StockMovement {
	return []entity.StockMovement{
		entity.NewStockMovement(
			s.ID,
			s.GetDocumentType(),
			s.Date,
			entity.RecordTypeExpense,
			s.ProductID,
			s.Quantity,
			s.TotalAmount,
		),
	}
}
