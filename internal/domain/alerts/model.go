// Package alerts derives operational alerts from current entity state.
// Alerts are stateless: recomputed on demand, never persisted.
package alerts

import (
	"sort"
	"time"

	"gescom/internal/core/id"
)

// Type identifies the rule that produced an alert.
type Type string

const (
	TypeLowStock       Type = "low_stock"
	TypeSalesDrop      Type = "sales_drop"
	TypeNoSales        Type = "no_sales"
	TypeStaleInventory Type = "stale_inventory"
	TypeCustom         Type = "custom"
)

// Severity grades an alert.
type Severity string

const (
	SeverityLow       Severity = "low"
	SeverityAttention Severity = "attention"
	SeverityCritical  Severity = "critical"
)

// Alert is a derived signal about a product or the sales trend.
type Alert struct {
	Type     Type     `json:"type"`
	Severity Severity `json:"severity"`
	Urgent   bool     `json:"urgent"`

	// ProductID is set for product-scoped alerts
	ProductID *id.ID `json:"productId,omitempty"`

	Title   string `json:"title"`
	Message string `json:"message"`

	CreatedAt time.Time `json:"createdAt"`
}

// Sort orders alerts for display: urgent first (stable), then newest
// first.
func Sort(alerts []Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].Urgent != alerts[j].Urgent {
			return alerts[i].Urgent
		}
		return alerts[i].CreatedAt.After(alerts[j].CreatedAt)
	})
}
