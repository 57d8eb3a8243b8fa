package alerts

import (
	"context"
	"fmt"
	"time"

	"gescom/internal/core/id"
	"gescom/internal/core/types"
	"gescom/internal/domain"
	"gescom/internal/domain/catalogs/product"
	"gescom/pkg/logger"
)

// timeSource abstracts the clock for deterministic tests.
type timeSource func() time.Time

// ProductSource supplies products to the alert rules.
type ProductSource interface {
	FindLowStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*product.Product], error)
	FindActive(ctx context.Context) ([]*product.Product, error)
}

// SalesTotals aggregates completed sales over a period.
type SalesTotals struct {
	Amount types.Money `json:"amount"`
	Count  int         `json:"count"`
}

// SalesSource supplies sales aggregates to the sales-drop rule.
type SalesSource interface {
	GetSalesTotals(ctx context.Context, from, to time.Time) (SalesTotals, error)
}

// LastSaleSource supplies the most recent sale date per product.
type LastSaleSource interface {
	GetLastSaleDates(ctx context.Context) (map[id.ID]time.Time, error)
}

// Config tunes the built-in rules.
type Config struct {
	// DropWindowDays is the comparison window for the sales-drop rule
	DropWindowDays int
	// DropThreshold fires an attention alert (relative change, negative)
	DropThreshold float64
	// DropUrgentThreshold upgrades the alert to urgent
	DropUrgentThreshold float64
	// StaleDays marks stocked products without sales as stale
	StaleDays int
}

// DefaultConfig returns the standard thresholds: a 20% week-over-week
// drop warns, 50% is urgent, 30 days without sales is stale.
func DefaultConfig() Config {
	return Config{
		DropWindowDays:      7,
		DropThreshold:       -20,
		DropUrgentThreshold: -50,
		StaleDays:           30,
	}
}

// Service evaluates the alert rules against current state.
type Service struct {
	products  ProductSource
	sales     SalesSource
	lastSales LastSaleSource
	rules     *RuleSet
	cfg       Config
	now       timeSource
}

// NewService creates the alert service. The rule set may be nil when no
// custom rules are configured.
func NewService(
	products ProductSource,
	sales SalesSource,
	lastSales LastSaleSource,
	rules *RuleSet,
	cfg Config,
) *Service {
	if cfg.DropWindowDays <= 0 {
		cfg = DefaultConfig()
	}
	return &Service{
		products:  products,
		sales:     sales,
		lastSales: lastSales,
		rules:     rules,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Evaluate runs every rule and returns the combined, sorted alert list:
// urgent first, then newest first.
func (s *Service) Evaluate(ctx context.Context) ([]Alert, error) {
	var all []Alert

	lowStock, err := s.evaluateLowStock(ctx)
	if err != nil {
		return nil, err
	}
	all = append(all, lowStock...)

	salesDrop, err := s.evaluateSalesDrop(ctx)
	if err != nil {
		return nil, err
	}
	all = append(all, salesDrop...)

	stale, err := s.evaluateStaleInventory(ctx)
	if err != nil {
		return nil, err
	}
	all = append(all, stale...)

	custom, err := s.evaluateCustomRules(ctx)
	if err != nil {
		return nil, err
	}
	all = append(all, custom...)

	Sort(all)

	logger.Debug(ctx, "alerts evaluated", "count", len(all))

	return all, nil
}

// evaluateLowStock flags active products at or below their minimum.
// Out of stock is critical and urgent; otherwise low.
func (s *Service) evaluateLowStock(ctx context.Context) ([]Alert, error) {
	result, err := s.products.FindLowStock(ctx, domain.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("find low stock products: %w", err)
	}

	alerts := make([]Alert, 0, len(result.Items))
	for _, p := range result.Items {
		productID := p.ID
		a := Alert{
			Type:      TypeLowStock,
			Severity:  SeverityLow,
			ProductID: &productID,
			Title:     "Low stock",
			Message: fmt.Sprintf("%s: %s in stock (minimum %s)",
				p.Name, p.StockQuantity, p.StockMinimum),
			CreatedAt: s.now(),
		}
		if p.IsOutOfStock() {
			a.Severity = SeverityCritical
			a.Urgent = true
			a.Title = "Out of stock"
			a.Message = fmt.Sprintf("%s: out of stock", p.Name)
		}
		alerts = append(alerts, a)
	}

	return alerts, nil
}

// evaluateSalesDrop compares completed sales over the last window
// against the previous window.
func (s *Service) evaluateSalesDrop(ctx context.Context) ([]Alert, error) {
	now := s.now()
	window := time.Duration(s.cfg.DropWindowDays) * 24 * time.Hour

	current, err := s.sales.GetSalesTotals(ctx, now.Add(-window), now)
	if err != nil {
		return nil, fmt.Errorf("current period totals: %w", err)
	}

	previous, err := s.sales.GetSalesTotals(ctx, now.Add(-2*window), now.Add(-window))
	if err != nil {
		return nil, fmt.Errorf("previous period totals: %w", err)
	}

	var alerts []Alert

	if current.Count == 0 {
		alerts = append(alerts, Alert{
			Type:     TypeNoSales,
			Severity: SeverityCritical,
			Urgent:   true,
			Title:    "No sales",
			Message: fmt.Sprintf("No completed sales in the last %d days",
				s.cfg.DropWindowDays),
			CreatedAt: now,
		})
	}

	if previous.Amount.IsPositive() {
		change := current.Amount.Sub(previous.Amount).
			Div(previous.Amount).
			Mul(types.MustMoney("100")).
			InexactFloat64()

		if change < s.cfg.DropThreshold {
			alerts = append(alerts, Alert{
				Type:     TypeSalesDrop,
				Severity: SeverityAttention,
				Urgent:   change < s.cfg.DropUrgentThreshold,
				Title:    "Sales drop",
				Message: fmt.Sprintf("Sales down %.1f%% vs the previous %d days",
					-change, s.cfg.DropWindowDays),
				CreatedAt: now,
			})
		}
	}

	return alerts, nil
}

// evaluateStaleInventory flags stocked products without a completed
// sale in the stale window.
func (s *Service) evaluateStaleInventory(ctx context.Context) ([]Alert, error) {
	products, err := s.products.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("find active products: %w", err)
	}

	lastSales, err := s.lastSales.GetLastSaleDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("last sale dates: %w", err)
	}

	cutoff := s.now().AddDate(0, 0, -s.cfg.StaleDays)

	var alerts []Alert
	for _, p := range products {
		if !p.StockQuantity.IsPositive() {
			continue
		}
		if last, ok := lastSales[p.ID]; ok && last.After(cutoff) {
			continue
		}

		productID := p.ID
		alerts = append(alerts, Alert{
			Type:      TypeStaleInventory,
			Severity:  SeverityAttention,
			ProductID: &productID,
			Title:     "Stale inventory",
			Message: fmt.Sprintf("%s: no sales in the last %d days (%s in stock)",
				p.Name, s.cfg.StaleDays, p.StockQuantity),
			CreatedAt: s.now(),
		})
	}

	return alerts, nil
}

// evaluateCustomRules runs the CEL rule set against active products.
func (s *Service) evaluateCustomRules(ctx context.Context) ([]Alert, error) {
	if s.rules == nil || s.rules.Len() == 0 {
		return nil, nil
	}

	products, err := s.products.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("find active products: %w", err)
	}

	var alerts []Alert
	for _, p := range products {
		fired, err := s.rules.Evaluate(ctx, p, s.now)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, fired...)
	}

	return alerts, nil
}
