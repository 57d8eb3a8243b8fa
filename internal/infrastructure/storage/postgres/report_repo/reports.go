// Package report_repo provides PostgreSQL implementations for report queries.
// All aggregates cover completed documents only.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"gescom/internal/core/id"
	"gescom/internal/core/types"
	"gescom/internal/domain/alerts"
	"gescom/internal/domain/reports"
	"gescom/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository and alerts.SalesSource.
type ReportRepo struct {
	txManager *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

// GetBalance sums completed sales and purchases.
func (r *ReportRepo) GetBalance(ctx context.Context, from, to *time.Time) (*reports.BalanceReport, error) {
	report := &reports.BalanceReport{
		FromDate: from,
		ToDate:   to,
	}

	sql := `
		SELECT
			COALESCE((SELECT SUM(total_amount) FROM doc_sales
				WHERE status = 'completed'
				  AND ($1::timestamptz IS NULL OR date >= $1)
				  AND ($2::timestamptz IS NULL OR date < $2)), 0),
			COALESCE((SELECT COUNT(*) FROM doc_sales
				WHERE status = 'completed'
				  AND ($1::timestamptz IS NULL OR date >= $1)
				  AND ($2::timestamptz IS NULL OR date < $2)), 0),
			COALESCE((SELECT SUM(total_amount) FROM doc_purchases
				WHERE status = 'completed'
				  AND ($1::timestamptz IS NULL OR date >= $1)
				  AND ($2::timestamptz IS NULL OR date < $2)), 0),
			COALESCE((SELECT COUNT(*) FROM doc_purchases
				WHERE status = 'completed'
				  AND ($1::timestamptz IS NULL OR date >= $1)
				  AND ($2::timestamptz IS NULL OR date < $2)), 0)
	`

	var totalSales, totalPurchases decimal.Decimal
	err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, from, to).Scan(
		&totalSales, &report.SalesCount, &totalPurchases, &report.PurchasesCount,
	)
	if err != nil {
		return nil, fmt.Errorf("balance query: %w", err)
	}

	report.TotalSales = totalSales
	report.TotalPurchases = totalPurchases
	report.Balance = totalSales.Sub(totalPurchases)
	if totalSales.IsPositive() {
		report.MarginPercent = report.Balance.
			Div(totalSales).
			Mul(decimal.NewFromInt(100)).
			InexactFloat64()
	}

	return report, nil
}

// GetSalesTotals aggregates completed sales in [from, to).
func (r *ReportRepo) GetSalesTotals(ctx context.Context, from, to time.Time) (alerts.SalesTotals, error) {
	var totals alerts.SalesTotals

	sql := `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM doc_sales
		WHERE status = 'completed'
		  AND date >= $1 AND date < $2
	`

	var amount decimal.Decimal
	err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, from, to).Scan(&amount, &totals.Count)
	if err != nil {
		return totals, fmt.Errorf("sales totals query: %w", err)
	}

	totals.Amount = amount
	return totals, nil
}

// GetPeriodBuckets returns buckets that have activity. FULL OUTER JOIN
// merges sale and purchase buckets; days with neither are absent and
// get zero-filled by the service.
func (r *ReportRepo) GetPeriodBuckets(ctx context.Context, granularity reports.Granularity, filter reports.PeriodFilter) ([]reports.PeriodBucket, error) {
	format := "YYYY-MM-DD"
	if granularity == reports.GranularityMonthly {
		format = "YYYY-MM"
	}

	sql := fmt.Sprintf(`
		WITH s AS (
			SELECT to_char(date, '%[1]s') AS period,
			       SUM(total_amount) AS amount, COUNT(*) AS cnt
			FROM doc_sales
			WHERE status = 'completed' AND date >= $1 AND date < $2
			GROUP BY 1
		), p AS (
			SELECT to_char(date, '%[1]s') AS period,
			       SUM(total_amount) AS amount, COUNT(*) AS cnt
			FROM doc_purchases
			WHERE status = 'completed' AND date >= $1 AND date < $2
			GROUP BY 1
		)
		SELECT COALESCE(s.period, p.period),
		       COALESCE(s.amount, 0), COALESCE(p.amount, 0),
		       COALESCE(s.cnt, 0), COALESCE(p.cnt, 0)
		FROM s FULL OUTER JOIN p ON s.period = p.period
		ORDER BY 1
	`, format)

	rows, err := r.txManager.GetQuerier(ctx).Query(ctx, sql, filter.FromDate, filter.ToDate)
	if err != nil {
		return nil, fmt.Errorf("period buckets query: %w", err)
	}
	defer rows.Close()

	var buckets []reports.PeriodBucket
	for rows.Next() {
		var b reports.PeriodBucket
		var sales, purchases decimal.Decimal
		if err := rows.Scan(&b.Period, &sales, &purchases, &b.SalesCount, &b.PurchasesCount); err != nil {
			return nil, fmt.Errorf("scan bucket: %w", err)
		}
		b.SalesAmount = sales
		b.PurchasesAmount = purchases
		buckets = append(buckets, b)
	}

	return buckets, rows.Err()
}

// GetTopProducts ranks products by completed-sale amount.
func (r *ReportRepo) GetTopProducts(ctx context.Context, filter reports.PeriodFilter, limit int) ([]reports.TopItem, error) {
	sql := `
		SELECT s.product_id, p.name, SUM(s.total_amount), COUNT(*)
		FROM doc_sales s
		JOIN cat_products p ON p.id = s.product_id
		WHERE s.status = 'completed' AND s.date >= $1 AND s.date < $2
		GROUP BY s.product_id, p.name
		ORDER BY SUM(s.total_amount) DESC
		LIMIT $3
	`
	return r.queryTopItems(ctx, sql, filter, limit, true)
}

// GetTopClients ranks clients by completed-sale amount.
func (r *ReportRepo) GetTopClients(ctx context.Context, filter reports.PeriodFilter, limit int) ([]reports.TopItem, error) {
	sql := `
		SELECT s.client_id, c.name, SUM(s.total_amount), COUNT(*)
		FROM doc_sales s
		JOIN cat_clients c ON c.id = s.client_id
		WHERE s.status = 'completed' AND s.date >= $1 AND s.date < $2
		GROUP BY s.client_id, c.name
		ORDER BY SUM(s.total_amount) DESC
		LIMIT $3
	`
	return r.queryTopItems(ctx, sql, filter, limit, true)
}

// GetTopSuppliers ranks purchase spend by free-text supplier name.
func (r *ReportRepo) GetTopSuppliers(ctx context.Context, filter reports.PeriodFilter, limit int) ([]reports.TopItem, error) {
	sql := `
		SELECT supplier, SUM(total_amount), COUNT(*)
		FROM doc_purchases
		WHERE status = 'completed' AND supplier <> ''
		  AND date >= $1 AND date < $2
		GROUP BY supplier
		ORDER BY SUM(total_amount) DESC
		LIMIT $3
	`
	return r.queryTopItems(ctx, sql, filter, limit, false)
}

func (r *ReportRepo) queryTopItems(ctx context.Context, sql string, filter reports.PeriodFilter, limit int, withID bool) ([]reports.TopItem, error) {
	rows, err := r.txManager.GetQuerier(ctx).Query(ctx, sql, filter.FromDate, filter.ToDate, limit)
	if err != nil {
		return nil, fmt.Errorf("top items query: %w", err)
	}
	defer rows.Close()

	var items []reports.TopItem
	for rows.Next() {
		var item reports.TopItem
		var amount decimal.Decimal
		if withID {
			var itemID id.ID
			if err := rows.Scan(&itemID, &item.Name, &amount, &item.Count); err != nil {
				return nil, fmt.Errorf("scan top item: %w", err)
			}
			item.ID = &itemID
		} else {
			if err := rows.Scan(&item.Name, &amount, &item.Count); err != nil {
				return nil, fmt.Errorf("scan top item: %w", err)
			}
		}
		item.TotalAmount = amount
		items = append(items, item)
	}

	return items, rows.Err()
}

// GetClientStats derives aggregates for one client from its completed
// sales.
func (r *ReportRepo) GetClientStats(ctx context.Context, clientID id.ID) (*reports.ClientStats, error) {
	stats := &reports.ClientStats{ClientID: clientID}

	sql := `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*), MAX(date)
		FROM doc_sales
		WHERE status = 'completed' AND client_id = $1
	`

	var spend decimal.Decimal
	var last *time.Time
	err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, clientID).Scan(&spend, &stats.SalesCount, &last)
	if err != nil && err != pgx.ErrNoRows {
		return nil, fmt.Errorf("client stats query: %w", err)
	}

	stats.TotalSpend = spend
	stats.LastPurchaseAt = last
	return stats, nil
}

// GetProductPerformance aggregates per-product sales, profit at the
// current average cost, and the turnover ratio.
func (r *ReportRepo) GetProductPerformance(ctx context.Context, filter reports.PeriodFilter, limit int) ([]reports.ProductPerformance, error) {
	sql := `
		SELECT
			p.id,
			p.name,
			COALESCE(SUM(s.quantity), 0) AS quantity_sold,
			COALESCE(SUM(s.total_amount), 0) AS revenue,
			COALESCE(SUM(s.total_amount - (s.quantity::numeric / 10000) * p.purchase_cost), 0) AS profit,
			CASE
				WHEN p.initial_stock + p.stock_quantity > 0 THEN
					COALESCE(SUM(s.quantity), 0)::numeric * 2 / (p.initial_stock + p.stock_quantity)
				ELSE 0
			END AS turnover_ratio
		FROM cat_products p
		LEFT JOIN doc_sales s ON s.product_id = p.id
			AND s.status = 'completed'
			AND s.date >= $1 AND s.date < $2
		WHERE p.deletion_mark = false
		GROUP BY p.id, p.name, p.initial_stock, p.stock_quantity, p.purchase_cost
		ORDER BY revenue DESC
		LIMIT $3
	`

	rows, err := r.txManager.GetQuerier(ctx).Query(ctx, sql, filter.FromDate, filter.ToDate, limit)
	if err != nil {
		return nil, fmt.Errorf("product performance query: %w", err)
	}
	defer rows.Close()

	var items []reports.ProductPerformance
	for rows.Next() {
		var item reports.ProductPerformance
		var soldScaled int64
		var revenue, profit, turnover decimal.Decimal
		if err := rows.Scan(&item.ProductID, &item.ProductName, &soldScaled, &revenue, &profit, &turnover); err != nil {
			return nil, fmt.Errorf("scan product performance: %w", err)
		}
		item.QuantitySold = types.NewQuantityFromInt64Scaled(soldScaled)
		item.Revenue = revenue
		item.Profit = profit
		item.TurnoverRatio = turnover.InexactFloat64()
		items = append(items, item)
	}

	return items, rows.Err()
}

// GetStockValue sums current stock valued at average cost.
func (r *ReportRepo) GetStockValue(ctx context.Context) (types.Money, error) {
	sql := `
		SELECT COALESCE(SUM((stock_quantity::numeric / 10000) * purchase_cost), 0)
		FROM cat_products
		WHERE deletion_mark = false AND active = true
	`

	var value decimal.Decimal
	if err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql).Scan(&value); err != nil {
		return types.Zero(), fmt.Errorf("stock value query: %w", err)
	}

	return value, nil
}

// Ensure interface compliance.
var (
	_ reports.Repository = (*ReportRepo)(nil)
	_ alerts.SalesSource = (*ReportRepo)(nil)
)
