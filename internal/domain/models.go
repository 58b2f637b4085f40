// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryObservation is one row of the inventory export: the stock a product
// ended the day with.
type InventoryObservation struct {
	Product        string          `json:"product"`
	Date           time.Time       `json:"date"`
	UnitsOnHand    int             `json:"units_on_hand"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
}

// SalesRecord is one row of the sales export. NetUnitsSold may be fractional
// or negative (returns).
type SalesRecord struct {
	Product      string    `json:"product"`
	Date         time.Time `json:"date"`
	NetUnitsSold float64   `json:"net_units_sold"`
}

// LatestSnapshot is the most recent observation known for a product.
type LatestSnapshot struct {
	Product        string          `json:"product"`
	UnitsOnHand    int             `json:"units_on_hand"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	AsOf           time.Time       `json:"as_of_date"`
}

// DemandEstimate is the average daily demand of a product over the span of the
// whole sales table.
type DemandEstimate struct {
	Product     string  `json:"product"`
	TotalSold   float64 `json:"total_sold"`
	DailyDemand float64 `json:"daily_demand"`
}

// ClassifiedStock labels a product's current stock.
type ClassifiedStock struct {
	Product      string      `json:"product"`
	CurrentStock int         `json:"current_stock"`
	Status       StockStatus `json:"status"`
}

// ReorderRecommendation is emitted only for products that need replenishment.
type ReorderRecommendation struct {
	Product          string   `json:"product"`
	CurrentStock     int      `json:"current_stock"`
	DailyDemand      float64  `json:"daily_demand"`
	RecommendedStock float64  `json:"recommended_stock"`
	ReorderQty       int      `json:"reorder_qty"`
	Priority         Priority `json:"priority"`
}

// HasDemand reports whether the recommendation came from sales data rather
// than the conservative fallback.
func (r ReorderRecommendation) HasDemand() bool {
	return r.DailyDemand > 0
}

// Thresholds are the inclusive upper bounds of the CRITICAL and LOW classes.
type Thresholds struct {
	Critical int `json:"critical_threshold"`
	Low      int `json:"low_threshold"`
}

// DefaultThresholds returns the stock boundaries used by the shop dashboard.
func DefaultThresholds() Thresholds {
	return Thresholds{Critical: 15, Low: 30}
}
