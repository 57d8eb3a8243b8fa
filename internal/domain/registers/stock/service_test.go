package stock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gescom/internal/core/apperror"
	"gescom/internal/core/entity"
	"gescom/internal/core/id"
	"gescom/internal/core/types"
)

type fakeRepo struct {
	created []entity.StockMovement
	deleted []id.ID
}

func (f *fakeRepo) CreateMovements(ctx context.Context, movements []entity.StockMovement) error {
	f.created = append(f.created, movements...)
	return nil
}

func (f *fakeRepo) DeleteMovementsByRecorder(ctx context.Context, recorderID id.ID) error {
	f.deleted = append(f.deleted, recorderID)
	return nil
}

func (f *fakeRepo) GetMovementsByRecorder(ctx context.Context, recorderID id.ID) ([]entity.StockMovement, error) {
	return nil, nil
}

func (f *fakeRepo) GetMovementHistory(ctx context.Context, productID id.ID, filter MovementFilter) ([]entity.StockMovement, error) {
	return nil, nil
}

func (f *fakeRepo) GetQuantityAtDate(ctx context.Context, productID id.ID, date time.Time) (types.Quantity, error) {
	return types.Quantity(0), nil
}

func (f *fakeRepo) GetTurnover(ctx context.Context, filter TurnoverFilter) (Turnover, error) {
	return Turnover{}, nil
}

func (f *fakeRepo) GetLastSaleDates(ctx context.Context) (map[id.ID]time.Time, error) {
	return nil, nil
}

func movement(recorderID id.ID, qty float64) entity.StockMovement {
	return entity.NewStockMovement(
		recorderID, "Purchase", time.Now(),
		entity.RecordTypeReceipt, id.New(),
		types.NewQuantityFromFloat64(qty), types.MustMoney("100"),
	)
}

func TestService_RecordMovements(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	recorderID := id.New()

	err := svc.RecordMovements(context.Background(), []entity.StockMovement{
		movement(recorderID, 5),
		movement(recorderID, 2.5),
	})
	require.NoError(t, err)
	assert.Len(t, repo.created, 2)
}

func TestService_RecordMovements_EmptyIsNoop(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	require.NoError(t, svc.RecordMovements(context.Background(), nil))
	assert.Empty(t, repo.created)
}

func TestService_RecordMovements_RejectsNonPositiveQuantity(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	err := svc.RecordMovements(context.Background(), []entity.StockMovement{
		movement(id.New(), 0),
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Empty(t, repo.created)
}

func TestService_RecordMovements_RequiresRecorder(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	m := movement(id.New(), 1)
	m.RecorderID = id.Nil()

	err := svc.RecordMovements(context.Background(), []entity.StockMovement{m})
	require.Error(t, err)
	assert.Empty(t, repo.created)
}

func TestService_ReverseMovements(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	recorderID := id.New()

	require.NoError(t, svc.ReverseMovements(context.Background(), recorderID))
	require.Len(t, repo.deleted, 1)
	assert.Equal(t, recorderID, repo.deleted[0])
}
