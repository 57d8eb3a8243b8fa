package purchase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gescom/internal/core/entity"
	"gescom/internal/core/id"
	"gescom/internal/core/types"
)

func TestNew_ComputesTotal(t *testing.T) {
	p := New(id.New(), types.NewQuantityFromInt(10), types.MustMoney("1000"))

	assert.Equal(t, entity.StatusCompleted, p.Status)
	assert.True(t, p.TotalAmount.Equal(types.MustMoney("10000")), "total = %s", p.TotalAmount)
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	p := New(id.New(), types.NewQuantityFromInt(10), types.MustMoney("1000"))
	require.NoError(t, p.Validate(ctx))

	p = New(id.Nil(), types.NewQuantityFromInt(10), types.MustMoney("1000"))
	require.Error(t, p.Validate(ctx))

	p = New(id.New(), types.NewQuantityFromInt(0), types.MustMoney("1000"))
	require.Error(t, p.Validate(ctx))

	p = New(id.New(), types.NewQuantityFromInt(10), types.Zero())
	require.Error(t, p.Validate(ctx))
}

func TestGenerateMovements(t *testing.T) {
	p := New(id.New(), types.NewQuantityFromInt(10), types.MustMoney("1000"))

	movements := p.GenerateMovements()
	require.Len(t, movements, 1)

	m := movements[0]
	assert.Equal(t, p.ID, m.RecorderID)
	assert.Equal(t, "Purchase", m.RecorderType)
	assert.Equal(t, entity.RecordTypeReceipt, m.RecordType)
	assert.Equal(t, types.NewQuantityFromInt(10), m.Quantity)
	assert.True(t, m.Amount.Equal(types.MustMoney("10000")))
}
