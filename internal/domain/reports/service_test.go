package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gescom/internal/core/types"
)

func TestZeroFill_Daily(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 7, 0, 0, 0, 0, time.UTC)

	sparse := []PeriodBucket{
		{Period: "2026-08-02", SalesAmount: types.MustMoney("500"), SalesCount: 2},
		{Period: "2026-08-05", SalesAmount: types.MustMoney("300"), SalesCount: 1},
	}

	buckets := zeroFill(GranularityDaily, from, to, sparse)

	require.Len(t, buckets, 7)
	assert.Equal(t, "2026-08-01", buckets[0].Period)
	assert.Equal(t, "2026-08-07", buckets[6].Period)

	// Filled days carry their data.
	assert.True(t, buckets[1].SalesAmount.Equal(types.MustMoney("500")))
	assert.Equal(t, 2, buckets[1].SalesCount)

	// Empty days are present with zero values.
	assert.True(t, buckets[2].SalesAmount.IsZero())
	assert.Equal(t, 0, buckets[2].SalesCount)
	assert.Equal(t, "2026-08-03", buckets[2].Period)
}

func TestZeroFill_Monthly(t *testing.T) {
	from := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

	sparse := []PeriodBucket{
		{Period: "2026-02", PurchasesAmount: types.MustMoney("1000"), PurchasesCount: 3},
	}

	buckets := zeroFill(GranularityMonthly, from, to, sparse)

	require.Len(t, buckets, 4)
	assert.Equal(t, "2026-01", buckets[0].Period)
	assert.Equal(t, "2026-04", buckets[3].Period)
	assert.True(t, buckets[1].PurchasesAmount.Equal(types.MustMoney("1000")))
	assert.True(t, buckets[2].PurchasesAmount.IsZero())
}

func TestValidatePeriod(t *testing.T) {
	now := time.Now()

	require.NoError(t, validatePeriod(PeriodFilter{FromDate: now.AddDate(0, 0, -7), ToDate: now}))
	require.Error(t, validatePeriod(PeriodFilter{ToDate: now}))
	require.Error(t, validatePeriod(PeriodFilter{FromDate: now, ToDate: now.AddDate(0, 0, -7)}))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, defaultTopLimit, clampLimit(0))
	assert.Equal(t, defaultTopLimit, clampLimit(-5))
	assert.Equal(t, 25, clampLimit(25))
	assert.Equal(t, maxTopLimit, clampLimit(5000))
}
