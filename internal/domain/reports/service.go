package reports

import (
	"context"
	"fmt"
	"time"

	"gescom/internal/core/apperror"
	"gescom/internal/core/id"
	"gescom/internal/core/tx"
)

const (
	defaultTopLimit = 10
	maxTopLimit     = 100
)

// Service provides report generation operations.
type Service struct {
	repo      Repository
	txManager tx.ReadOnlyManager
}

// NewService creates a new reports service.
func NewService(repo Repository, txManager tx.ReadOnlyManager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// GetBalance returns the sales-minus-purchases rollup. Nil bounds mean
// all time.
func (s *Service) GetBalance(ctx context.Context, from, to *time.Time) (*BalanceReport, error) {
	report, err := s.repo.GetBalance(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("get balance report: %w", err)
	}
	return report, nil
}

// GetPeriodSummary returns a zero-filled bucket series over the range.
func (s *Service) GetPeriodSummary(ctx context.Context, granularity Granularity, filter PeriodFilter) (*PeriodSummary, error) {
	if err := validatePeriod(filter); err != nil {
		return nil, err
	}
	if granularity != GranularityDaily && granularity != GranularityMonthly {
		return nil, apperror.NewValidation("invalid granularity").
			WithDetail("granularity", string(granularity))
	}

	sparse, err := s.repo.GetPeriodBuckets(ctx, granularity, filter)
	if err != nil {
		return nil, fmt.Errorf("get period buckets: %w", err)
	}

	return &PeriodSummary{
		Granularity: granularity,
		FromDate:    filter.FromDate,
		ToDate:      filter.ToDate,
		Buckets:     zeroFill(granularity, filter.FromDate, filter.ToDate, sparse),
	}, nil
}

// GetTopProducts ranks products by completed-sale amount in the window.
func (s *Service) GetTopProducts(ctx context.Context, filter PeriodFilter, limit int) ([]TopItem, error) {
	if err := validatePeriod(filter); err != nil {
		return nil, err
	}
	return s.repo.GetTopProducts(ctx, filter, clampLimit(limit))
}

// GetTopClients ranks clients by completed-sale amount in the window.
func (s *Service) GetTopClients(ctx context.Context, filter PeriodFilter, limit int) ([]TopItem, error) {
	if err := validatePeriod(filter); err != nil {
		return nil, err
	}
	return s.repo.GetTopClients(ctx, filter, clampLimit(limit))
}

// GetTopSuppliers ranks suppliers by completed-purchase amount in the
// window.
func (s *Service) GetTopSuppliers(ctx context.Context, filter PeriodFilter, limit int) ([]TopItem, error) {
	if err := validatePeriod(filter); err != nil {
		return nil, err
	}
	return s.repo.GetTopSuppliers(ctx, filter, clampLimit(limit))
}

// GetClientStats derives total spend, sale count and last purchase date
// for one client from the live sale set.
func (s *Service) GetClientStats(ctx context.Context, clientID id.ID) (*ClientStats, error) {
	stats, err := s.repo.GetClientStats(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("get client stats: %w", err)
	}
	return stats, nil
}

// GetProductPerformance returns per-product sales, profit and turnover
// over the window.
func (s *Service) GetProductPerformance(ctx context.Context, filter PeriodFilter, limit int) ([]ProductPerformance, error) {
	if err := validatePeriod(filter); err != nil {
		return nil, err
	}
	return s.repo.GetProductPerformance(ctx, filter, clampLimit(limit))
}

// GetDashboard bundles the landing-page numbers: all-time balance, the
// last 30 days day by day, and the top rankings for the same window.
// The queries run in a single read-only transaction so the numbers
// describe one consistent snapshot.
func (s *Service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	var dashboard *Dashboard

	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		balance, err := s.repo.GetBalance(ctx, nil, nil)
		if err != nil {
			return fmt.Errorf("dashboard balance: %w", err)
		}

		now := time.Now().UTC()
		window := PeriodFilter{FromDate: now.AddDate(0, 0, -30), ToDate: now}

		recent, err := s.GetPeriodSummary(ctx, GranularityDaily, window)
		if err != nil {
			return fmt.Errorf("dashboard period summary: %w", err)
		}

		topProducts, err := s.repo.GetTopProducts(ctx, window, defaultTopLimit)
		if err != nil {
			return fmt.Errorf("dashboard top products: %w", err)
		}

		topClients, err := s.repo.GetTopClients(ctx, window, defaultTopLimit)
		if err != nil {
			return fmt.Errorf("dashboard top clients: %w", err)
		}

		stockValue, err := s.repo.GetStockValue(ctx)
		if err != nil {
			return fmt.Errorf("dashboard stock value: %w", err)
		}

		dashboard = &Dashboard{
			Balance:     balance,
			RecentDays:  recent,
			TopProducts: topProducts,
			TopClients:  topClients,
			StockValue:  stockValue,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return dashboard, nil
}

// zeroFill expands sparse buckets into a dense series: one bucket per
// day or month over [from, to], zeros where there was no activity.
func zeroFill(granularity Granularity, from, to time.Time, sparse []PeriodBucket) []PeriodBucket {
	layout := "2006-01-02"
	if granularity == GranularityMonthly {
		layout = "2006-01"
	}

	byPeriod := make(map[string]PeriodBucket, len(sparse))
	for _, b := range sparse {
		byPeriod[b.Period] = b
	}

	var buckets []PeriodBucket
	switch granularity {
	case GranularityMonthly:
		cursor := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
		for !cursor.After(end) {
			buckets = append(buckets, bucketAt(byPeriod, cursor.Format(layout)))
			cursor = cursor.AddDate(0, 1, 0)
		}
	default:
		cursor := from.Truncate(24 * time.Hour)
		end := to.Truncate(24 * time.Hour)
		for !cursor.After(end) {
			buckets = append(buckets, bucketAt(byPeriod, cursor.Format(layout)))
			cursor = cursor.AddDate(0, 0, 1)
		}
	}

	return buckets
}

func bucketAt(byPeriod map[string]PeriodBucket, period string) PeriodBucket {
	if b, ok := byPeriod[period]; ok {
		return b
	}
	return PeriodBucket{Period: period}
}

func validatePeriod(filter PeriodFilter) error {
	if filter.FromDate.IsZero() || filter.ToDate.IsZero() {
		return apperror.NewValidation("fromDate and toDate are required")
	}
	if filter.FromDate.After(filter.ToDate) {
		return apperror.NewValidation("fromDate must be before toDate")
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultTopLimit
	}
	if limit > maxTopLimit {
		return maxTopLimit
	}
	return limit
}
