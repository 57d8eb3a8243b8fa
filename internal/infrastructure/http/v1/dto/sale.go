package dto

import (
	"time"

	"gescom/internal/core/id"
	"gescom/internal/core/types"
	"gescom/internal/domain/documents/sale"
)

// SaleResponse represents a sale document in API responses.
type SaleResponse struct {
	DocumentResponse
	ProductID       string  `json:"productId"`
	ClientID        string  `json:"clientId"`
	Quantity        float64 `json:"quantity"`
	UnitPrice       string  `json:"unitPrice"`
	DiscountPercent string  `json:"discountPercent"`
	DiscountAmount  string  `json:"discountAmount"`
	TotalAmount     string  `json:"totalAmount"`
}

// FromSale creates SaleResponse from domain sale.
func FromSale(s *sale.Sale) *SaleResponse {
	return &SaleResponse{
		DocumentResponse: FromDocument(s.Document),
		ProductID:        s.ProductID.String(),
		ClientID:         s.ClientID.String(),
		Quantity:         s.Quantity.Float64(),
		UnitPrice:        s.UnitPrice.String(),
		DiscountPercent:  s.DiscountPercent.String(),
		DiscountAmount:   s.DiscountAmount.String(),
		TotalAmount:      s.TotalAmount.String(),
	}
}

// CreateSaleRequest for recording a sale. UnitPrice is optional: when
// absent, the product's current sale price applies.
type CreateSaleRequest struct {
	ProductID       string     `json:"productId" binding:"required,uuid"`
	ClientID        string     `json:"clientId" binding:"required,uuid"`
	Quantity        float64    `json:"quantity" binding:"required"`
	UnitPrice       *string    `json:"unitPrice"`
	DiscountPercent *string    `json:"discountPercent"`
	Date            *time.Time `json:"date"`
	Notes           string     `json:"notes"`
}

// ToSale converts the request to a domain sale.
func (r *CreateSaleRequest) ToSale() (*sale.Sale, error) {
	productID, err := id.Parse(r.ProductID)
	if err != nil {
		return nil, err
	}
	clientID, err := id.Parse(r.ClientID)
	if err != nil {
		return nil, err
	}

	unitPrice := types.Zero()
	if r.UnitPrice != nil {
		unitPrice, err = types.NewMoneyFromString(*r.UnitPrice)
		if err != nil {
			return nil, err
		}
	}

	doc := sale.New(productID, clientID, types.NewQuantityFromFloat64(r.Quantity), unitPrice)
	if r.DiscountPercent != nil {
		discount, err := types.NewMoneyFromString(*r.DiscountPercent)
		if err != nil {
			return nil, err
		}
		doc.DiscountPercent = discount
	}
	if r.Date != nil {
		doc.Date = r.Date.UTC()
	}
	doc.Notes = r.Notes
	return doc, nil
}
