package reports

import (
	"context"
	"time"

	"gescom/internal/core/id"
	"gescom/internal/core/types"
	"gescom/internal/domain/alerts"
)

// Repository defines report data access. All queries cover completed
// documents only; cancelled ones are excluded at the SQL level.
type Repository interface {
	// GetBalance sums completed sales and purchases; nil bounds mean
	// all time
	GetBalance(ctx context.Context, from, to *time.Time) (*BalanceReport, error)

	// GetSalesTotals aggregates completed sales in [from, to);
	// also serves the alert engine (alerts.SalesSource)
	GetSalesTotals(ctx context.Context, from, to time.Time) (alerts.SalesTotals, error)

	// GetPeriodBuckets returns buckets with activity; the service
	// zero-fills the gaps
	GetPeriodBuckets(ctx context.Context, granularity Granularity, filter PeriodFilter) ([]PeriodBucket, error)

	// Rankings by total completed-sale amount within the window
	GetTopProducts(ctx context.Context, filter PeriodFilter, limit int) ([]TopItem, error)
	GetTopClients(ctx context.Context, filter PeriodFilter, limit int) ([]TopItem, error)

	// GetTopSuppliers ranks purchase spend by free-text supplier name
	GetTopSuppliers(ctx context.Context, filter PeriodFilter, limit int) ([]TopItem, error)

	// GetClientStats derives aggregates for one client
	GetClientStats(ctx context.Context, clientID id.ID) (*ClientStats, error)

	// GetProductPerformance aggregates sales, profit (at current
	// average cost) and turnover per product
	GetProductPerformance(ctx context.Context, filter PeriodFilter, limit int) ([]ProductPerformance, error)

	// GetStockValue sums current stock valued at average cost
	GetStockValue(ctx context.Context) (types.Money, error)
}
