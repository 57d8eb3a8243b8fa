package sale

import (
	"context"
	"fmt"
	"time"

	"gescom/internal/core/apperror"
	"gescom/internal/core/id"
	"gescom/internal/core/numerator"
	"gescom/internal/core/security"
	"gescom/internal/core/tx"
	"gescom/internal/domain"
	"gescom/internal/domain/catalogs/client"
	"gescom/internal/domain/catalogs/product"
	"gescom/internal/domain/inventory"
	"gescom/internal/domain/registers/stock"
	"gescom/pkg/logger"
)

// Service provides business operations for sale documents.
//
// Creation and cancellation run in a single transaction: the product row
// is locked FOR UPDATE, the inventory engine checks availability and
// decrements stock, and the document, product and movement journal are
// persisted together. A concurrent sale of the same product waits on
// the row lock and sees the decremented stock, so the stock can never
// be oversold.
type Service struct {
	repo      Repository
	products  product.Repository
	clients   client.Repository
	engine    *inventory.Engine
	register  *stock.Service
	numerator numerator.Generator
	txManager tx.Manager
	policy    security.CancellationPolicy
	events    domain.EventPublisher
	hooks     *domain.HookRegistry[*Sale]
}

// NewService creates a new sale service.
func NewService(
	repo Repository,
	products product.Repository,
	clients client.Repository,
	engine *inventory.Engine,
	register *stock.Service,
	numerator numerator.Generator,
	txManager tx.Manager,
	policy security.CancellationPolicy,
	events domain.EventPublisher,
) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		clients:   clients,
		engine:    engine,
		register:  register,
		numerator: numerator,
		txManager: txManager,
		policy:    policy,
		events:    events,
		hooks:     domain.NewHookRegistry[*Sale](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Sale] {
	return s.hooks
}

// Create records a sale: stock goes down, the average cost stays put.
// A zero unit price on input means "sell at the product's sale price".
func (s *Service) Create(ctx context.Context, doc *Sale) error {
	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return err
	}

	if doc.Number == "" {
		cfg := numerator.DefaultConfig("SAL")
		number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, time.Now())
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if exists, err := s.clients.Exists(ctx, doc.ClientID); err != nil {
			return fmt.Errorf("check client: %w", err)
		} else if !exists {
			return apperror.NewNotFound("client", doc.ClientID.String())
		}

		p, err := s.products.GetForUpdate(ctx, doc.ProductID)
		if err != nil {
			return err
		}

		if !p.Active {
			return apperror.NewBusinessRule(
				apperror.CodeBusinessRule,
				"product is not sellable",
			).WithDetail("product_id", p.ID.String())
		}

		// Price defaulting needs the product, so it happens under the
		// lock, before validation.
		if doc.UnitPrice.IsZero() {
			doc.UnitPrice = p.SalePrice
		}
		doc.Recalculate()

		if err := doc.Validate(ctx); err != nil {
			return err
		}

		if err := s.engine.ApplySale(p, doc.Quantity); err != nil {
			return err
		}

		if err := s.products.Update(ctx, p); err != nil {
			return fmt.Errorf("update product: %w", err)
		}

		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}

		if err := s.register.RecordMovements(ctx, doc.GenerateMovements()); err != nil {
			return err
		}

		return s.publish(ctx, doc, "SaleCreated")
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterCreate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "sale created",
		"id", doc.ID,
		"number", doc.Number,
		"product_id", doc.ProductID,
		"client_id", doc.ClientID,
		"quantity", doc.Quantity,
		"total", doc.TotalAmount)

	return nil
}

// Cancel reverses a sale and returns the sold quantity to stock.
func (s *Service) Cancel(ctx context.Context, docID id.ID, reason string) (*Sale, error) {
	var doc *Sale

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}

		if err := doc.CanCancel("sale"); err != nil {
			return err
		}

		if err := s.policy.CanCancel(ctx, doc.Date); err != nil {
			return err
		}

		p, err := s.products.GetForUpdate(ctx, doc.ProductID)
		if err != nil {
			return err
		}

		if err := s.engine.ReverseSale(p, doc.Quantity); err != nil {
			return err
		}

		if err := s.products.Update(ctx, p); err != nil {
			return fmt.Errorf("update product: %w", err)
		}

		doc.MarkCancelled(reason)
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}

		if err := s.register.ReverseMovements(ctx, doc.ID); err != nil {
			return err
		}

		return s.publish(ctx, doc, "SaleCancelled")
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sale cancelled",
		"id", doc.ID,
		"number", doc.Number,
		"reason", reason)

	return doc, nil
}

// GetByID retrieves a sale document.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Sale, error) {
	return s.repo.GetByID(ctx, docID)
}

// GetByNumber retrieves a sale document by its number.
func (s *Service) GetByNumber(ctx context.Context, number string) (*Sale, error) {
	return s.repo.GetByNumber(ctx, number)
}

// List retrieves sales with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Sale], error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) publish(ctx context.Context, doc *Sale, eventType string) error {
	if s.events == nil {
		return nil
	}
	return s.events.Publish(ctx, domain.Event{
		AggregateType: doc.GetDocumentType(),
		AggregateID:   doc.ID,
		EventType:     eventType,
		Payload:       doc,
	})
}
