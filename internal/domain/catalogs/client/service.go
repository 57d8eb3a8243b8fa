package client

import (
	"context"
	"fmt"
	"time"

	"gescom/internal/core/apperror"
	"gescom/internal/core/id"
	"gescom/internal/core/numerator"
	"gescom/internal/core/tx"
	"gescom/internal/domain"
)

// Service provides business logic for the Client catalog.
type Service struct {
	*domain.CatalogService[*Client]
	repo      Repository
	numerator numerator.Generator
}

// NewService creates a new Client service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	numerator numerator.Generator,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Client]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "client",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      numerator,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)
	base.Hooks().On(domain.BeforeUpdate, svc.prepareForUpdate)

	return svc
}

// prepareForCreate handles code generation and email uniqueness.
func (s *Service) prepareForCreate(ctx context.Context, c *Client) error {
	if c.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("CLI"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		c.Code = code
	}

	if c.Email != nil && *c.Email != "" {
		if exists, _ := s.checkEmailExists(ctx, *c.Email, c.ID); exists {
			return apperror.NewConflict("client with this email already exists").
				WithDetail("email", *c.Email)
		}
	}

	return nil
}

// prepareForUpdate handles email uniqueness.
func (s *Service) prepareForUpdate(ctx context.Context, c *Client) error {
	if c.Email != nil && *c.Email != "" {
		if exists, _ := s.checkEmailExists(ctx, *c.Email, c.ID); exists {
			return apperror.NewConflict("client with this email already exists").
				WithDetail("email", *c.Email)
		}
	}
	return nil
}

// FindByEmail retrieves a client by email.
func (s *Service) FindByEmail(ctx context.Context, email string) (*Client, error) {
	return s.repo.FindByEmail(ctx, email)
}

// checkEmailExists checks if email is already used by another client.
func (s *Service) checkEmailExists(ctx context.Context, email string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return existing.ID != excludeID, nil
}
