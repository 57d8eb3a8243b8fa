package sale

import (
	"context"
	"time"

	"gescom/internal/core/entity"
	"gescom/internal/core/id"
	"gescom/internal/domain"
)

// Repository defines operations for sale documents.
type Repository interface {
	Create(ctx context.Context, doc *Sale) error
	GetByID(ctx context.Context, docID id.ID) (*Sale, error)
	GetByNumber(ctx context.Context, number string) (*Sale, error)
	Update(ctx context.Context, doc *Sale) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Sale], error)

	// GetForUpdate locks the document row for cancellation.
	GetForUpdate(ctx context.Context, docID id.ID) (*Sale, error)
}

// ListFilter for filtering sales.
type ListFilter struct {
	domain.ListFilter

	ProductID *id.ID
	ClientID  *id.ID
	Status    *entity.Status
	DateFrom  *time.Time
	DateTo    *time.Time
}
