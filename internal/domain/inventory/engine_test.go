package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gescom/internal/core/apperror"
	"gescom/internal/core/types"
	"gescom/internal/domain/catalogs/product"
)

func newProduct() *product.Product {
	return product.New("PRD-001", "Widget", types.MustMoney("1000"), types.MustMoney("2500"))
}

func TestApplyPurchase_FirstPurchaseSetsCost(t *testing.T) {
	e := NewEngine()
	p := newProduct()
	p.PurchaseCost = types.Zero()

	err := e.ApplyPurchase(p, types.NewQuantityFromInt(10), types.MustMoney("1000"))
	require.NoError(t, err)

	assert.Equal(t, types.NewQuantityFromInt(10), p.StockQuantity)
	assert.True(t, p.PurchaseCost.Equal(types.MustMoney("1000")), "cost = %s", p.PurchaseCost)
}

func TestApplyPurchase_WeightedAverage(t *testing.T) {
	e := NewEngine()
	p := newProduct()
	p.PurchaseCost = types.Zero()

	require.NoError(t, e.ApplyPurchase(p, types.NewQuantityFromInt(10), types.MustMoney("1000")))
	require.NoError(t, e.ApplyPurchase(p, types.NewQuantityFromInt(10), types.MustMoney("2000")))

	// (10*1000 + 10*2000) / 20 = 1500
	assert.Equal(t, types.NewQuantityFromInt(20), p.StockQuantity)
	assert.True(t, p.PurchaseCost.Equal(types.MustMoney("1500")), "cost = %s", p.PurchaseCost)
}

func TestApplyPurchase_AverageIsOrderDependent(t *testing.T) {
	e := NewEngine()
	p := newProduct()
	p.PurchaseCost = types.Zero()

	require.NoError(t, e.ApplyPurchase(p, types.NewQuantityFromInt(1), types.MustMoney("100")))
	require.NoError(t, e.ApplyPurchase(p, types.NewQuantityFromInt(3), types.MustMoney("200")))

	// (1*100 + 3*200) / 4 = 175
	assert.True(t, p.PurchaseCost.Equal(types.MustMoney("175")), "cost = %s", p.PurchaseCost)
}

func TestApplyPurchase_AfterStockout_ResetsToUnitPrice(t *testing.T) {
	e := NewEngine()
	p := newProduct()
	p.PurchaseCost = types.Zero()

	require.NoError(t, e.ApplyPurchase(p, types.NewQuantityFromInt(5), types.MustMoney("1000")))
	require.NoError(t, e.ApplySale(p, types.NewQuantityFromInt(5)))
	require.True(t, p.IsOutOfStock())

	require.NoError(t, e.ApplyPurchase(p, types.NewQuantityFromInt(5), types.MustMoney("3000")))

	assert.True(t, p.PurchaseCost.Equal(types.MustMoney("3000")), "cost = %s", p.PurchaseCost)
}

func TestApplyPurchase_Validation(t *testing.T) {
	e := NewEngine()
	p := newProduct()

	err := e.ApplyPurchase(p, types.NewQuantityFromInt(0), types.MustMoney("100"))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	err = e.ApplyPurchase(p, types.NewQuantityFromInt(-1), types.MustMoney("100"))
	require.Error(t, err)

	err = e.ApplyPurchase(p, types.NewQuantityFromInt(1), types.Zero())
	require.Error(t, err)
	appErr, ok = apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	// Failed calls must not touch the product.
	assert.Equal(t, types.Quantity(0), p.StockQuantity)
}

func TestApplySale_DecrementsStockOnly(t *testing.T) {
	e := NewEngine()
	p := newProduct()
	p.StockQuantity = types.NewQuantityFromInt(20)
	p.PurchaseCost = types.MustMoney("1500")

	require.NoError(t, e.ApplySale(p, types.NewQuantityFromInt(5)))

	assert.Equal(t, types.NewQuantityFromInt(15), p.StockQuantity)
	assert.True(t, p.PurchaseCost.Equal(types.MustMoney("1500")), "sale must not move the average cost")
}

func TestApplySale_InsufficientStock(t *testing.T) {
	e := NewEngine()
	p := newProduct()
	p.StockQuantity = types.NewQuantityFromInt(3)

	err := e.ApplySale(p, types.NewQuantityFromInt(5))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	assert.Equal(t, float64(3), appErr.Details["available"])

	// Product untouched on failure.
	assert.Equal(t, types.NewQuantityFromInt(3), p.StockQuantity)
}

func TestApplySale_ExactStockReachesZero(t *testing.T) {
	e := NewEngine()
	p := newProduct()
	p.StockQuantity = types.NewQuantityFromInt(7)

	require.NoError(t, e.ApplySale(p, types.NewQuantityFromInt(7)))
	assert.True(t, p.StockQuantity.IsZero())
}

func TestReversePurchase_GuardsAgainstNegativeStock(t *testing.T) {
	e := NewEngine()
	p := newProduct()
	p.PurchaseCost = types.Zero()

	require.NoError(t, e.ApplyPurchase(p, types.NewQuantityFromInt(10), types.MustMoney("1000")))
	require.NoError(t, e.ApplySale(p, types.NewQuantityFromInt(8)))

	// Only 2 left; undoing the purchase of 10 would go negative.
	err := e.ReversePurchase(p, types.NewQuantityFromInt(10))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	assert.Equal(t, types.NewQuantityFromInt(2), p.StockQuantity)
}

func TestReversePurchase_KeepsAverageCost(t *testing.T) {
	e := NewEngine()
	p := newProduct()
	p.PurchaseCost = types.Zero()

	require.NoError(t, e.ApplyPurchase(p, types.NewQuantityFromInt(10), types.MustMoney("1000")))
	require.NoError(t, e.ApplyPurchase(p, types.NewQuantityFromInt(10), types.MustMoney("2000")))
	require.NoError(t, e.ReversePurchase(p, types.NewQuantityFromInt(10)))

	assert.Equal(t, types.NewQuantityFromInt(10), p.StockQuantity)
	assert.True(t, p.PurchaseCost.Equal(types.MustMoney("1500")), "cost stays at the blended average")
}

func TestReverseSale_RestoresStock(t *testing.T) {
	e := NewEngine()
	p := newProduct()
	p.StockQuantity = types.NewQuantityFromInt(15)
	p.PurchaseCost = types.MustMoney("1500")

	require.NoError(t, e.ReverseSale(p, types.NewQuantityFromInt(5)))

	assert.Equal(t, types.NewQuantityFromInt(20), p.StockQuantity)
	assert.True(t, p.PurchaseCost.Equal(types.MustMoney("1500")))
}

func TestSaleCancelRoundTrip(t *testing.T) {
	e := NewEngine()
	p := newProduct()
	p.PurchaseCost = types.Zero()

	require.NoError(t, e.ApplyPurchase(p, types.NewQuantityFromInt(10), types.MustMoney("1000")))
	require.NoError(t, e.ApplyPurchase(p, types.NewQuantityFromInt(10), types.MustMoney("2000")))

	before := p.StockQuantity
	require.NoError(t, e.ApplySale(p, types.NewQuantityFromInt(5)))
	require.NoError(t, e.ReverseSale(p, types.NewQuantityFromInt(5)))

	assert.Equal(t, before, p.StockQuantity)
	assert.True(t, p.PurchaseCost.Equal(types.MustMoney("1500")))
}

func TestFractionalQuantities(t *testing.T) {
	e := NewEngine()
	p := newProduct()
	p.PurchaseCost = types.Zero()

	require.NoError(t, e.ApplyPurchase(p, types.NewQuantityFromFloat64(2.5), types.MustMoney("100")))
	require.NoError(t, e.ApplyPurchase(p, types.NewQuantityFromFloat64(2.5), types.MustMoney("200")))

	assert.Equal(t, types.NewQuantityFromInt(5), p.StockQuantity)
	assert.True(t, p.PurchaseCost.Equal(types.MustMoney("150")), "cost = %s", p.PurchaseCost)
}
