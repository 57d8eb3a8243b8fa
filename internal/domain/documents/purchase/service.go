package purchase

import (
	"context"
	"fmt"
	"time"

	"gescom/internal/core/id"
	"gescom/internal/core/numerator"
	"gescom/internal/core/security"
	"gescom/internal/core/tx"
	"gescom/internal/domain"
	"gescom/internal/domain/catalogs/product"
	"gescom/internal/domain/inventory"
	"gescom/internal/domain/registers/stock"
	"gescom/pkg/logger"
)

// Service provides business operations for purchase documents.
//
// Creation and cancellation run in a single transaction: the product row
// is locked FOR UPDATE, the inventory engine mutates stock and average
// cost, and the document, product and movement journal are persisted
// together.
type Service struct {
	repo      Repository
	products  product.Repository
	engine    *inventory.Engine
	register  *stock.Service
	numerator numerator.Generator
	txManager tx.Manager
	policy    security.CancellationPolicy
	events    domain.EventPublisher
	hooks     *domain.HookRegistry[*Purchase]
}

// NewService creates a new purchase service.
func NewService(
	repo Repository,
	products product.Repository,
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
		engine:    engine,
		register:  register,
		numerator: numerator,
		txManager: txManager,
		policy:    policy,
		events:    events,
		hooks:     domain.NewHookRegistry[*Purchase](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Purchase] {
	return s.hooks
}

// Create records a purchase: stock goes up and the product's
// weighted-average cost absorbs the new price.
func (s *Service) Create(ctx context.Context, doc *Purchase) error {
	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return err
	}

	doc.Recalculate()

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if doc.Number == "" {
		cfg := numerator.DefaultConfig("PUR")
		number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, time.Now())
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.products.GetForUpdate(ctx, doc.ProductID)
		if err != nil {
			return err
		}

		if err := s.engine.ApplyPurchase(p, doc.Quantity, doc.UnitPrice); err != nil {
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

		return s.publish(ctx, doc, "PurchaseCreated")
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterCreate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "purchase created",
		"id", doc.ID,
		"number", doc.Number,
		"product_id", doc.ProductID,
		"quantity", doc.Quantity,
		"total", doc.TotalAmount)

	return nil
}

// Cancel reverses a purchase. The received quantity is removed from
// stock; if it has already been sold through, cancellation fails with
// InsufficientStock. The average cost is left untouched.
func (s *Service) Cancel(ctx context.Context, docID id.ID, reason string) (*Purchase, error) {
	var doc *Purchase

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}

		if err := doc.CanCancel("purchase"); err != nil {
			return err
		}

		if err := s.policy.CanCancel(ctx, doc.Date); err != nil {
			return err
		}

		p, err := s.products.GetForUpdate(ctx, doc.ProductID)
		if err != nil {
			return err
		}

		if err := s.engine.ReversePurchase(p, doc.Quantity); err != nil {
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

		return s.publish(ctx, doc, "PurchaseCancelled")
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "purchase cancelled",
		"id", doc.ID,
		"number", doc.Number,
		"reason", reason)

	return doc, nil
}

// GetByID retrieves a purchase document.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Purchase, error) {
	return s.repo.GetByID(ctx, docID)
}

// GetByNumber retrieves a purchase document by its number.
func (s *Service) GetByNumber(ctx context.Context, number string) (*Purchase, error) {
	return s.repo.GetByNumber(ctx, number)
}

// List retrieves purchases with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Purchase], error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) publish(ctx context.Context, doc *Purchase, eventType string) error {
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
