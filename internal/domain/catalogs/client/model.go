// Package client provides the Client catalog.
// Client aggregates (total spend, purchase count, last purchase date)
// are never stored; the reports service derives them from sales.
package client

import (
	"context"
	"strings"

	"gescom/internal/core/apperror"
	"gescom/internal/core/entity"
)

// Client represents a buyer.
type Client struct {
	entity.Catalog

	// Email is the contact email (optional)
	Email *string `db:"email" json:"email,omitempty"`

	// Phone is the contact phone (optional)
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Address is the street address (optional)
	Address *string `db:"address" json:"address,omitempty"`

	// City (optional)
	City *string `db:"city" json:"city,omitempty"`

	// Notes is free-form commentary
	Notes *string `db:"notes" json:"notes,omitempty"`

	// Active marks the client as current
	Active bool `db:"active" json:"active"`
}

// New creates a new active Client.
func New(code, name string) *Client {
	return &Client{
		Catalog: entity.NewCatalog(code, name),
		Active:  true,
	}
}

// Validate implements entity.Validatable interface.
func (c *Client) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if c.Email != nil && *c.Email != "" {
		if !strings.Contains(*c.Email, "@") {
			return apperror.NewValidation("invalid email").
				WithDetail("field", "email").
				WithDetail("value", *c.Email)
		}
	}

	return nil
}
