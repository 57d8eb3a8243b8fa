package dto

import (
	"time"

	"gescom/internal/core/id"
	"gescom/internal/core/types"
	"gescom/internal/domain/documents/purchase"
)

// PurchaseResponse represents a purchase document in API responses.
type PurchaseResponse struct {
	DocumentResponse
	ProductID     string  `json:"productId"`
	Quantity      float64 `json:"quantity"`
	UnitPrice     string  `json:"unitPrice"`
	TotalAmount   string  `json:"totalAmount"`
	Supplier      string  `json:"supplier,omitempty"`
	InvoiceNumber string  `json:"invoiceNumber,omitempty"`
}

// FromPurchase creates PurchaseResponse from domain purchase.
func FromPurchase(p *purchase.Purchase) *PurchaseResponse {
	return &PurchaseResponse{
		DocumentResponse: FromDocument(p.Document),
		ProductID:        p.ProductID.String(),
		Quantity:         p.Quantity.Float64(),
		UnitPrice:        p.UnitPrice.String(),
		TotalAmount:      p.TotalAmount.String(),
		Supplier:         p.Supplier,
		InvoiceNumber:    p.InvoiceNumber,
	}
}

// CreatePurchaseRequest for recording a purchase.
type CreatePurchaseRequest struct {
	ProductID     string     `json:"productId" binding:"required,uuid"`
	Quantity      float64    `json:"quantity" binding:"required"`
	UnitPrice     string     `json:"unitPrice" binding:"required"`
	Date          *time.Time `json:"date"`
	Supplier      string     `json:"supplier"`
	InvoiceNumber string     `json:"invoiceNumber"`
	Notes         string     `json:"notes"`
}

// ToPurchase converts the request to a domain purchase.
func (r *CreatePurchaseRequest) ToPurchase() (*purchase.Purchase, error) {
	productID, err := id.Parse(r.ProductID)
	if err != nil {
		return nil, err
	}
	unitPrice, err := types.NewMoneyFromString(r.UnitPrice)
	if err != nil {
		return nil, err
	}

	doc := purchase.New(productID, types.NewQuantityFromFloat64(r.Quantity), unitPrice)
	if r.Date != nil {
		doc.Date = r.Date.UTC()
	}
	doc.Supplier = r.Supplier
	doc.InvoiceNumber = r.InvoiceNumber
	doc.Notes = r.Notes
	return doc, nil
}
