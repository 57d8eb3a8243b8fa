package stock

import (
	"context"
	"fmt"
	"time"

	"gescom/internal/core/apperror"
	"gescom/internal/core/entity"
	"gescom/internal/core/id"
	"gescom/internal/core/types"
	"gescom/pkg/logger"
)

// Service provides business operations for the stock register.
// Transactions are managed by the caller (document services).
type Service struct {
	repo Repository
}

// NewService creates a new stock register service.
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// RecordMovements records stock movements emitted by a document.
// Called inside the document's transaction.
func (s *Service) RecordMovements(ctx context.Context, movements []entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	for i, m := range movements {
		if !m.Quantity.IsPositive() {
			return apperror.NewValidation(fmt.Sprintf("movement %d: quantity must be positive", i))
		}
		if id.IsNil(m.RecorderID) {
			return apperror.NewValidation(fmt.Sprintf("movement %d: recorder_id is required", i))
		}
	}

	if err := s.repo.CreateMovements(ctx, movements); err != nil {
		return fmt.Errorf("create movements: %w", err)
	}

	logger.Info(ctx, "recorded stock movements",
		"count", len(movements),
		"recorder_id", movements[0].RecorderID,
	)

	return nil
}

// ReverseMovements removes a cancelled document's movements from the
// journal. Called inside the cancellation transaction.
func (s *Service) ReverseMovements(ctx context.Context, recorderID id.ID) error {
	if err := s.repo.DeleteMovementsByRecorder(ctx, recorderID); err != nil {
		return fmt.Errorf("delete movements: %w", err)
	}

	logger.Info(ctx, "reversed stock movements", "recorder_id", recorderID)

	return nil
}

// GetMovementHistory returns the movement journal for a product.
func (s *Service) GetMovementHistory(ctx context.Context, productID id.ID, filter MovementFilter) ([]entity.StockMovement, error) {
	return s.repo.GetMovementHistory(ctx, productID, filter)
}

// GetMovementsByRecorder returns the movements recorded by a document.
func (s *Service) GetMovementsByRecorder(ctx context.Context, recorderID id.ID) ([]entity.StockMovement, error) {
	return s.repo.GetMovementsByRecorder(ctx, recorderID)
}

// GetQuantityAtDate reconstructs a product's stock level at a point in
// time from the journal.
func (s *Service) GetQuantityAtDate(ctx context.Context, productID id.ID, date time.Time) (types.Quantity, error) {
	return s.repo.GetQuantityAtDate(ctx, productID, date)
}

// GetTurnover calculates opening balance, receipts, expenses and
// closing balance over a period.
func (s *Service) GetTurnover(ctx context.Context, filter TurnoverFilter) (Turnover, error) {
	return s.repo.GetTurnover(ctx, filter)
}
