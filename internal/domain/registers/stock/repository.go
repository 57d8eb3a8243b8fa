// Package stock provides the stock movement register.
//
// The register is an append-only journal of receipts and expenses keyed
// by the recording document. Product rows hold the authoritative current
// stock level; the journal exists for history, turnover reports and
// cancellation cleanup.
package stock

import (
	"context"
	"time"

	"gescom/internal/core/entity"
	"gescom/internal/core/id"
	"gescom/internal/core/types"
)

// Repository defines operations for the stock register.
type Repository interface {
	// CreateMovements batch inserts movements (used while a document
	// transaction is open)
	CreateMovements(ctx context.Context, movements []entity.StockMovement) error

	// DeleteMovementsByRecorder removes all movements recorded by a
	// document; used when the document is cancelled
	DeleteMovementsByRecorder(ctx context.Context, recorderID id.ID) error

	// GetMovementsByRecorder retrieves all movements for a document
	GetMovementsByRecorder(ctx context.Context, recorderID id.ID) ([]entity.StockMovement, error)

	// GetMovementHistory returns movement history for a product
	GetMovementHistory(ctx context.Context, productID id.ID, filter MovementFilter) ([]entity.StockMovement, error)

	// GetQuantityAtDate sums signed movements up to a date
	GetQuantityAtDate(ctx context.Context, productID id.ID, date time.Time) (types.Quantity, error)

	// GetTurnover calculates receipt and expense totals for a period
	GetTurnover(ctx context.Context, filter TurnoverFilter) (Turnover, error)

	// GetLastSaleDates returns the most recent expense date per product;
	// products without any expense movement are absent from the map
	GetLastSaleDates(ctx context.Context) (map[id.ID]time.Time, error)
}

// MovementFilter for filtering movement history.
type MovementFilter struct {
	RecordType *entity.RecordType
	FromDate   *time.Time
	ToDate     *time.Time
	Limit      int
	Offset     int
}

// TurnoverFilter for turnover reports.
type TurnoverFilter struct {
	ProductID *id.ID
	FromDate  time.Time
	ToDate    time.Time
}

// Turnover represents receipt/expense totals over a period.
type Turnover struct {
	ProductID      id.ID          `json:"productId,omitempty"`
	OpeningBalance types.Quantity `json:"openingBalance"`
	Receipt        types.Quantity `json:"receipt"`
	Expense        types.Quantity `json:"expense"`
	ClosingBalance types.Quantity `json:"closingBalance"`
}
