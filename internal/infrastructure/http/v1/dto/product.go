package dto

import (
	"gescom/internal/core/types"
	"gescom/internal/domain/catalogs/product"
)

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	BaseResponse
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Category      string  `json:"category,omitempty"`
	Description   *string `json:"description,omitempty"`
	PurchaseCost  string  `json:"purchaseCost"`
	SalePrice     string  `json:"salePrice"`
	StockQuantity float64 `json:"stockQuantity"`
	StockMinimum  float64 `json:"stockMinimum"`
	InitialStock  float64 `json:"initialStock"`
	Active        bool    `json:"active"`
	LowStock      bool    `json:"lowStock"`
	MarginPercent string  `json:"marginPercent"`
	StockValue    string  `json:"stockValue"`
}

// FromProduct creates ProductResponse from domain product.
func FromProduct(p *product.Product) *ProductResponse {
	return &ProductResponse{
		BaseResponse:  FromBaseCatalog(p.BaseCatalog),
		Code:          p.Code,
		Name:          p.Name,
		Category:      p.Category,
		Description:   p.Description,
		PurchaseCost:  p.PurchaseCost.String(),
		SalePrice:     p.SalePrice.String(),
		StockQuantity: p.StockQuantity.Float64(),
		StockMinimum:  p.StockMinimum.Float64(),
		InitialStock:  p.InitialStock.Float64(),
		Active:        p.Active,
		LowStock:      p.IsLowStock(),
		MarginPercent: p.MarginPercent().StringFixed(2),
		StockValue:    p.StockValue().String(),
	}
}

// CreateProductRequest for creating products.
type CreateProductRequest struct {
	Code         string  `json:"code"`
	Name         string  `json:"name" binding:"required"`
	Category     string  `json:"category"`
	Description  *string `json:"description"`
	PurchaseCost string  `json:"purchaseCost" binding:"required"`
	SalePrice    string  `json:"salePrice" binding:"required"`
	InitialStock float64 `json:"initialStock"`
	StockMinimum float64 `json:"stockMinimum"`
}

// ToProduct converts the request to a domain product.
func (r *CreateProductRequest) ToProduct() (*product.Product, error) {
	purchaseCost, err := types.NewMoneyFromString(r.PurchaseCost)
	if err != nil {
		return nil, err
	}
	salePrice, err := types.NewMoneyFromString(r.SalePrice)
	if err != nil {
		return nil, err
	}

	p := product.New(r.Code, r.Name, purchaseCost, salePrice)
	p.Category = r.Category
	p.Description = r.Description
	p.StockQuantity = types.NewQuantityFromFloat64(r.InitialStock)
	p.StockMinimum = types.NewQuantityFromFloat64(r.StockMinimum)
	return p, nil
}

// UpdateProductRequest for updating products. Stock and cost are
// deliberately absent: only purchases and sales move them.
type UpdateProductRequest struct {
	Name         *string  `json:"name"`
	Category     *string  `json:"category"`
	Description  *string  `json:"description"`
	SalePrice    *string  `json:"salePrice"`
	StockMinimum *float64 `json:"stockMinimum"`
	Active       *bool    `json:"active"`
	Version      int      `json:"version" binding:"required,min=1"`
}

// Apply maps the update onto an existing product.
func (r *UpdateProductRequest) Apply(p *product.Product) error {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.Description != nil {
		p.Description = r.Description
	}
	if r.SalePrice != nil {
		salePrice, err := types.NewMoneyFromString(*r.SalePrice)
		if err != nil {
			return err
		}
		p.SalePrice = salePrice
	}
	if r.StockMinimum != nil {
		p.StockMinimum = types.NewQuantityFromFloat64(*r.StockMinimum)
	}
	if r.Active != nil {
		p.Active = *r.Active
	}
	p.Version = r.Version
	return nil
}
