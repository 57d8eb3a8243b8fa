package purchase

import (
	"context"
	"time"

	"gescom/internal/core/entity"
	"gescom/internal/core/id"
	"gescom/internal/domain"
)

// Repository defines operations for purchase documents.
type Repository interface {
	Create(ctx context.Context, doc *Purchase) error
	GetByID(ctx context.Context, docID id.ID) (*Purchase, error)
	GetByNumber(ctx context.Context, number string) (*Purchase, error)
	Update(ctx context.Context, doc *Purchase) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Purchase], error)

	// GetForUpdate locks the document row for cancellation.
	GetForUpdate(ctx context.Context, docID id.ID) (*Purchase, error)
}

// ListFilter for filtering purchases.
type ListFilter struct {
	domain.ListFilter

	ProductID *id.ID
	Status    *entity.Status
	Supplier  string
	DateFrom  *time.Time
	DateTo    *time.Time
}
