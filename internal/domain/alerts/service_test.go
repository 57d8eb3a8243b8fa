package alerts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gescom/internal/core/id"
	"gescom/internal/core/types"
	"gescom/internal/domain"
	"gescom/internal/domain/catalogs/product"
)

type fakeProducts struct {
	lowStock []*product.Product
	active   []*product.Product
}

func (f *fakeProducts) FindLowStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*product.Product], error) {
	return domain.ListResult[*product.Product]{Items: f.lowStock, TotalCount: int64(len(f.lowStock))}, nil
}

func (f *fakeProducts) FindActive(ctx context.Context) ([]*product.Product, error) {
	return f.active, nil
}

type fakeSales struct {
	current  SalesTotals
	previous SalesTotals
}

func (f *fakeSales) GetSalesTotals(ctx context.Context, from, to time.Time) (SalesTotals, error) {
	// The current window ends now; the previous window ends earlier.
	if time.Since(to) < time.Hour {
		return f.current, nil
	}
	return f.previous, nil
}

type fakeLastSales struct {
	dates map[id.ID]time.Time
}

func (f *fakeLastSales) GetLastSaleDates(ctx context.Context) (map[id.ID]time.Time, error) {
	if f.dates == nil {
		return map[id.ID]time.Time{}, nil
	}
	return f.dates, nil
}

func stockedProduct(name string, stock, minimum int64) *product.Product {
	p := product.New("", name, types.MustMoney("100"), types.MustMoney("200"))
	p.StockQuantity = types.NewQuantityFromInt(stock)
	p.StockMinimum = types.NewQuantityFromInt(minimum)
	return p
}

func newTestService(products *fakeProducts, sales *fakeSales, lastSales *fakeLastSales) *Service {
	if sales == nil {
		sales = &fakeSales{
			current:  SalesTotals{Amount: types.MustMoney("1000"), Count: 10},
			previous: SalesTotals{Amount: types.MustMoney("1000"), Count: 10},
		}
	}
	if lastSales == nil {
		lastSales = &fakeLastSales{}
	}
	return NewService(products, sales, lastSales, nil, DefaultConfig())
}

func findByType(alerts []Alert, t Type) []Alert {
	var out []Alert
	for _, a := range alerts {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}

func TestLowStock_AtMinimumIsLowNotUrgent(t *testing.T) {
	p := stockedProduct("Widget", 5, 5)
	svc := newTestService(&fakeProducts{lowStock: []*product.Product{p}}, nil, &fakeLastSales{
		dates: map[id.ID]time.Time{p.ID: time.Now()},
	})

	alerts, err := svc.Evaluate(context.Background())
	require.NoError(t, err)

	low := findByType(alerts, TypeLowStock)
	require.Len(t, low, 1)
	assert.Equal(t, SeverityLow, low[0].Severity)
	assert.False(t, low[0].Urgent)
	assert.Equal(t, p.ID, *low[0].ProductID)
}

func TestLowStock_OutOfStockIsCriticalUrgent(t *testing.T) {
	p := stockedProduct("Widget", 0, 5)
	svc := newTestService(&fakeProducts{lowStock: []*product.Product{p}}, nil, nil)

	alerts, err := svc.Evaluate(context.Background())
	require.NoError(t, err)

	low := findByType(alerts, TypeLowStock)
	require.Len(t, low, 1)
	assert.Equal(t, SeverityCritical, low[0].Severity)
	assert.True(t, low[0].Urgent)
}

func TestSalesDrop_Thresholds(t *testing.T) {
	tests := []struct {
		name       string
		current    string
		wantAlert  bool
		wantUrgent bool
	}{
		{name: "no drop", current: "1000", wantAlert: false},
		{name: "small drop", current: "850", wantAlert: false},
		{name: "attention drop", current: "700", wantAlert: true, wantUrgent: false},
		{name: "urgent drop", current: "400", wantAlert: true, wantUrgent: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&fakeProducts{}, &fakeSales{
				current:  SalesTotals{Amount: types.MustMoney(tt.current), Count: 5},
				previous: SalesTotals{Amount: types.MustMoney("1000"), Count: 10},
			}, nil)

			alerts, err := svc.Evaluate(context.Background())
			require.NoError(t, err)

			drops := findByType(alerts, TypeSalesDrop)
			if !tt.wantAlert {
				assert.Empty(t, drops)
				return
			}
			require.Len(t, drops, 1)
			assert.Equal(t, SeverityAttention, drops[0].Severity)
			assert.Equal(t, tt.wantUrgent, drops[0].Urgent)
		})
	}
}

func TestSalesDrop_NoSalesEmitsCritical(t *testing.T) {
	svc := newTestService(&fakeProducts{}, &fakeSales{
		current:  SalesTotals{Amount: types.Zero(), Count: 0},
		previous: SalesTotals{Amount: types.MustMoney("1000"), Count: 10},
	}, nil)

	alerts, err := svc.Evaluate(context.Background())
	require.NoError(t, err)

	noSales := findByType(alerts, TypeNoSales)
	require.Len(t, noSales, 1)
	assert.Equal(t, SeverityCritical, noSales[0].Severity)
	assert.True(t, noSales[0].Urgent)

	// The 100% drop also fires as urgent.
	drops := findByType(alerts, TypeSalesDrop)
	require.Len(t, drops, 1)
	assert.True(t, drops[0].Urgent)
}

func TestStaleInventory(t *testing.T) {
	fresh := stockedProduct("Fresh", 10, 2)
	stale := stockedProduct("Stale", 10, 2)
	empty := stockedProduct("Empty", 0, 2)
	neverSold := stockedProduct("NeverSold", 10, 2)

	svc := newTestService(
		&fakeProducts{active: []*product.Product{fresh, stale, empty, neverSold}},
		nil,
		&fakeLastSales{dates: map[id.ID]time.Time{
			fresh.ID: time.Now().AddDate(0, 0, -3),
			stale.ID: time.Now().AddDate(0, 0, -45),
		}},
	)

	alerts, err := svc.Evaluate(context.Background())
	require.NoError(t, err)

	staleAlerts := findByType(alerts, TypeStaleInventory)
	require.Len(t, staleAlerts, 2)

	ids := map[id.ID]bool{}
	for _, a := range staleAlerts {
		ids[*a.ProductID] = true
	}
	assert.True(t, ids[stale.ID])
	assert.True(t, ids[neverSold.ID])
	assert.False(t, ids[fresh.ID], "recently sold product must not be stale")
	assert.False(t, ids[empty.ID], "empty stock cannot be stale")
}

func TestSort_UrgentFirstThenNewest(t *testing.T) {
	base := time.Now()
	alerts := []Alert{
		{Type: TypeLowStock, Urgent: false, CreatedAt: base.Add(3 * time.Minute)},
		{Type: TypeNoSales, Urgent: true, CreatedAt: base.Add(1 * time.Minute)},
		{Type: TypeStaleInventory, Urgent: false, CreatedAt: base.Add(4 * time.Minute)},
		{Type: TypeLowStock, Urgent: true, CreatedAt: base.Add(2 * time.Minute)},
	}

	Sort(alerts)

	assert.True(t, alerts[0].Urgent)
	assert.True(t, alerts[1].Urgent)
	assert.True(t, alerts[0].CreatedAt.After(alerts[1].CreatedAt))
	assert.False(t, alerts[2].Urgent)
	assert.True(t, alerts[2].CreatedAt.After(alerts[3].CreatedAt))
}

func TestCustomRules_CEL(t *testing.T) {
	rules, err := NewRuleSet()
	require.NoError(t, err)

	require.NoError(t, rules.Add(Rule{
		Name:      "thin margin",
		Severity:  SeverityAttention,
		Condition: "margin_percent < 20.0",
	}))

	thin := product.New("", "ThinMargin", types.MustMoney("100"), types.MustMoney("110"))
	thin.StockQuantity = types.NewQuantityFromInt(5)
	fat := product.New("", "FatMargin", types.MustMoney("100"), types.MustMoney("200"))
	fat.StockQuantity = types.NewQuantityFromInt(5)

	svc := NewService(
		&fakeProducts{active: []*product.Product{thin, fat}},
		&fakeSales{
			current:  SalesTotals{Amount: types.MustMoney("1000"), Count: 5},
			previous: SalesTotals{Amount: types.MustMoney("1000"), Count: 5},
		},
		&fakeLastSales{dates: map[id.ID]time.Time{
			thin.ID: time.Now(),
			fat.ID:  time.Now(),
		}},
		rules,
		DefaultConfig(),
	)

	alerts, err := svc.Evaluate(context.Background())
	require.NoError(t, err)

	custom := findByType(alerts, TypeCustom)
	require.Len(t, custom, 1)
	assert.Equal(t, thin.ID, *custom[0].ProductID)
	assert.Equal(t, "thin margin", custom[0].Title)
}

func TestRuleSet_RejectsInvalidCondition(t *testing.T) {
	rules, err := NewRuleSet()
	require.NoError(t, err)

	require.Error(t, rules.Add(Rule{Name: "broken", Condition: "stock <"}))
	require.Error(t, rules.Add(Rule{Name: "non-bool", Condition: "stock + 1.0"}))
	require.Error(t, rules.Add(Rule{Condition: "stock > 0.0"}))
}
