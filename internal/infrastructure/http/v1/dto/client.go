package dto

import (
	"gescom/internal/domain/catalogs/client"
)

// ClientResponse represents a client in API responses.
type ClientResponse struct {
	BaseResponse
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	Notes   *string `json:"notes,omitempty"`
	Active  bool    `json:"active"`
}

// FromClient creates ClientResponse from domain client.
func FromClient(c *client.Client) *ClientResponse {
	return &ClientResponse{
		BaseResponse: FromBaseCatalog(c.BaseCatalog),
		Code:         c.Code,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		City:         c.City,
		Notes:        c.Notes,
		Active:       c.Active,
	}
}

// CreateClientRequest for creating clients.
type CreateClientRequest struct {
	Code    string  `json:"code"`
	Name    string  `json:"name" binding:"required"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	Notes   *string `json:"notes"`
}

// ToClient converts the request to a domain client.
func (r *CreateClientRequest) ToClient() *client.Client {
	c := client.New(r.Code, r.Name)
	c.Email = r.Email
	c.Phone = r.Phone
	c.Address = r.Address
	c.City = r.City
	c.Notes = r.Notes
	return c
}

// UpdateClientRequest for updating clients.
type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	Notes   *string `json:"notes"`
	Active  *bool   `json:"active"`
	Version int     `json:"version" binding:"required,min=1"`
}

// Apply maps the update onto an existing client.
func (r *UpdateClientRequest) Apply(c *client.Client) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Email != nil {
		c.Email = r.Email
	}
	if r.Phone != nil {
		c.Phone = r.Phone
	}
	if r.Address != nil {
		c.Address = r.Address
	}
	if r.City != nil {
		c.City = r.City
	}
	if r.Notes != nil {
		c.Notes = r.Notes
	}
	if r.Active != nil {
		c.Active = *r.Active
	}
	c.Version = r.Version
}
