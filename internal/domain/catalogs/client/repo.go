package client

import (
	"context"

	"gescom/internal/domain"
)

// Repository defines the interface for Client persistence.
type Repository interface {
	domain.CatalogRepository[*Client]

	// FindByEmail retrieves a client by email.
	FindByEmail(ctx context.Context, email string) (*Client, error)
}
