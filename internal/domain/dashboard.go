package domain

import "time"

// DashboardMetrics is the headline card data of the dashboard.
type DashboardMetrics struct {
	TotalProducts      int     `json:"total_products"`
	TotalStockUnits    int     `json:"total_stock_units"`
	CriticalStockItems int     `json:"critical_stock_items"`
	ReorderAlerts      int     `json:"reorder_alerts"`
	ActiveSuppliers    int     `json:"active_suppliers"`
	AvgStockPerProduct float64 `json:"avg_stock_per_product"` // 1 decimal
}

// StockDetail is a row of the critical / low stock tables.
type StockDetail struct {
	Product      string      `json:"product"`
	CurrentStock int         `json:"current_stock"`
	Status       StockStatus `json:"status"`
}

// ReorderDetail is a row of the reorder table.
type ReorderDetail struct {
	Product          string   `json:"product"`
	CurrentStock     int      `json:"current_stock"`
	DailyDemand      float64  `json:"daily_demand"`      // 2 decimals
	RecommendedStock float64  `json:"recommended_stock"` // 1 decimal
	ReorderQty       int      `json:"reorder_qty"`
	Priority         Priority `json:"priority"`
}

// DashboardDocument is the JSON artifact consumed by the dashboard frontend.
type DashboardDocument struct {
	LastUpdated          time.Time        `json:"last_updated"`
	Metrics              DashboardMetrics `json:"metrics"`
	CriticalStockDetails []StockDetail    `json:"critical_stock_details"`
	LowStockDetails      []StockDetail    `json:"low_stock_details"`
	ReorderDetails       []ReorderDetail  `json:"reorder_details"`
	PartnerDetails       []PartnerRecord  `json:"partner_details"`
}
