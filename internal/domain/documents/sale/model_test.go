package sale

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gescom/internal/core/entity"
	"gescom/internal/core/id"
	"gescom/internal/core/types"
)

func TestRecalculate_DiscountMath(t *testing.T) {
	s := New(id.New(), id.New(), types.NewQuantityFromInt(5), types.MustMoney("2500"))
	s.DiscountPercent = types.MustMoney("10")
	s.Recalculate()

	// gross 12500, discount 1250, total 11250
	assert.True(t, s.Gross().Equal(types.MustMoney("12500")), "gross = %s", s.Gross())
	assert.True(t, s.DiscountAmount.Equal(types.MustMoney("1250")), "discount = %s", s.DiscountAmount)
	assert.True(t, s.TotalAmount.Equal(types.MustMoney("11250")), "total = %s", s.TotalAmount)
}

func TestRecalculate_NoDiscount(t *testing.T) {
	s := New(id.New(), id.New(), types.NewQuantityFromInt(3), types.MustMoney("100"))

	assert.True(t, s.DiscountAmount.IsZero())
	assert.True(t, s.TotalAmount.Equal(types.MustMoney("300")))
}

func TestValidate_DiscountBounds(t *testing.T) {
	ctx := context.Background()

	s := New(id.New(), id.New(), types.NewQuantityFromInt(1), types.MustMoney("100"))
	s.DiscountPercent = types.MustMoney("100")
	require.NoError(t, s.Validate(ctx))

	s.DiscountPercent = types.MustMoney("100.01")
	require.Error(t, s.Validate(ctx))

	s.DiscountPercent = types.MustMoney("-1")
	require.Error(t, s.Validate(ctx))
}

func TestValidate_RequiredReferences(t *testing.T) {
	ctx := context.Background()

	s := New(id.Nil(), id.New(), types.NewQuantityFromInt(1), types.MustMoney("100"))
	require.Error(t, s.Validate(ctx))

	s = New(id.New(), id.Nil(), types.NewQuantityFromInt(1), types.MustMoney("100"))
	require.Error(t, s.Validate(ctx))
}

func TestGenerateMovements(t *testing.T) {
	s := New(id.New(), id.New(), types.NewQuantityFromInt(5), types.MustMoney("2500"))
	s.DiscountPercent = types.MustMoney("10")
	s.Recalculate()

	movements := s.GenerateMovements()
	require.Len(t, movements, 1)

	m := movements[0]
	assert.Equal(t, s.ID, m.RecorderID)
	assert.Equal(t, "Sale", m.RecorderType)
	assert.Equal(t, entity.RecordTypeExpense, m.RecordType)
	assert.Equal(t, s.ProductID, m.ProductID)
	assert.Equal(t, types.NewQuantityFromInt(5), m.Quantity)
	assert.True(t, m.Amount.Equal(types.MustMoney("11250")))
}

func TestCancelLifecycle(t *testing.T) {
	s := New(id.New(), id.New(), types.NewQuantityFromInt(1), types.MustMoney("100"))
	require.NoError(t, s.CanCancel("sale"))

	s.MarkCancelled("customer returned the item")

	assert.Equal(t, entity.StatusCancelled, s.Status)
	assert.NotNil(t, s.CancelledAt)
	assert.Equal(t, "customer returned the item", s.CancelReason())

	// Second cancellation must be rejected.
	require.Error(t, s.CanCancel("sale"))
}
