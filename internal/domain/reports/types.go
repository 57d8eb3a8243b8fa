// Package reports provides read-only rollups over completed purchases
// and sales. Reports never mutate entity state and can be recomputed at
// any time from the transaction log.
package reports

import (
	"time"

	"gescom/internal/core/id"
	"gescom/internal/core/types"
)

// Granularity selects the time bucket size for period summaries.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityMonthly Granularity = "monthly"
)

// --- Balance ---

// BalanceReport is the headline financial rollup: completed sales minus
// completed purchases, with the gross margin relative to sales.
type BalanceReport struct {
	FromDate *time.Time `json:"fromDate,omitempty"`
	ToDate   *time.Time `json:"toDate,omitempty"`

	TotalSales     types.Money `json:"totalSales"`
	TotalPurchases types.Money `json:"totalPurchases"`
	Balance        types.Money `json:"balance"`

	// MarginPercent = Balance / TotalSales * 100; zero when no sales
	MarginPercent float64 `json:"marginPercent"`

	SalesCount     int `json:"salesCount"`
	PurchasesCount int `json:"purchasesCount"`
}

// --- Period summaries ---

// PeriodBucket is one time bucket in a period summary. Buckets without
// activity are present with zero values.
type PeriodBucket struct {
	// Period is "2006-01-02" for daily and "2006-01" for monthly buckets
	Period string `json:"period"`

	SalesAmount     types.Money `json:"salesAmount"`
	PurchasesAmount types.Money `json:"purchasesAmount"`
	SalesCount      int         `json:"salesCount"`
	PurchasesCount  int         `json:"purchasesCount"`
}

// PeriodSummary is a zero-filled series of buckets over a range.
type PeriodSummary struct {
	Granularity Granularity    `json:"granularity"`
	FromDate    time.Time      `json:"fromDate"`
	ToDate      time.Time      `json:"toDate"`
	Buckets     []PeriodBucket `json:"buckets"`
}

// --- Rankings ---

// TopItem is one row of a top-N ranking. ID is nil for free-text
// dimensions (suppliers).
type TopItem struct {
	ID          *id.ID      `json:"id,omitempty"`
	Name        string      `json:"name"`
	TotalAmount types.Money `json:"totalAmount"`
	Count       int         `json:"count"`
}

// --- Client statistics ---

// ClientStats are derived aggregates for one client; never stored.
type ClientStats struct {
	ClientID       id.ID       `json:"clientId"`
	TotalSpend     types.Money `json:"totalSpend"`
	SalesCount     int         `json:"salesCount"`
	LastPurchaseAt *time.Time  `json:"lastPurchaseAt,omitempty"`
}

// --- Product performance ---

// ProductPerformance aggregates sales for one product over a window.
// Profit uses the product's current average cost, so the profit of old
// sales drifts as later purchases move the average.
type ProductPerformance struct {
	ProductID    id.ID          `json:"productId"`
	ProductName  string         `json:"productName"`
	QuantitySold types.Quantity `json:"quantitySold"`
	Revenue      types.Money    `json:"revenue"`
	Profit       types.Money    `json:"profit"`

	// TurnoverRatio = quantity sold / average(initial stock, current stock);
	// zero when both stocks are zero
	TurnoverRatio float64 `json:"turnoverRatio"`
}

// --- Dashboard ---

// Dashboard bundles the headline numbers for the landing page.
type Dashboard struct {
	Balance     *BalanceReport `json:"balance"`
	RecentDays  *PeriodSummary `json:"recentDays"`
	TopProducts []TopItem      `json:"topProducts"`
	TopClients  []TopItem      `json:"topClients"`
	StockValue  types.Money    `json:"stockValue"`
}

// PeriodFilter bounds a report window.
type PeriodFilter struct {
	FromDate time.Time
	ToDate   time.Time
}
