package pipeline

import (
	"time"

	"github.com/anapaulaelz/final-practicum-project/internal/domain"
	"github.com/shopspring/decimal"
)

// Config holds everything the analysis stages are parameterized by.
type Config struct {
	Thresholds      domain.Thresholds
	Planner         PlannerConfig
	Financials      FinancialOptions
	ExcludeProducts []string
}

// DefaultConfig returns the settings the shop dashboard has always used.
func DefaultConfig() Config {
	return Config{
		Thresholds: domain.DefaultThresholds(),
		Planner:    DefaultPlannerConfig(),
		Financials: DefaultFinancialOptions(),
	}
}

// Input is the typed data a run analyzes.
type Input struct {
	Inventory []domain.InventoryObservation
	Sales     []domain.SalesRecord
	Partners  []domain.PartnerRecord
}

// Metrics are the headline numbers of a run.
type Metrics struct {
	TotalProducts       int             `json:"total_products"`
	TotalStockUnits     int             `json:"total_stock_units"`
	CriticalCount       int             `json:"critical_count"`
	LowCount            int             `json:"low_count"`
	NormalCount         int             `json:"normal_count"`
	ReorderCount        int             `json:"reorder_count"`
	ActiveSuppliers     int             `json:"active_suppliers"`
	AvgStockPerProduct  float64         `json:"avg_stock_per_product"`
	TotalInventoryValue decimal.Decimal `json:"total_inventory_value"`
}

// AttentionCount is the quick-report alert count: every CRITICAL or LOW product.
func (m Metrics) AttentionCount() int {
	return m.CriticalCount + m.LowCount
}

// Result is everything a run computes, in the order the report presents it.
type Result struct {
	Snapshots  []domain.LatestSnapshot
	Demand     DemandTable
	Classified []domain.ClassifiedStock
	Critical   []domain.ClassifiedStock
	Low        []domain.ClassifiedStock
	Normal     []domain.ClassifiedStock
	Reorders   []domain.ReorderRecommendation
	Partners   []domain.PartnerRecord
	Suppliers  PartnerSummary
	Financials Financials
	Metrics    Metrics
}

// RunStatus represents the current state of an analysis run
type RunStatus string

const (
	StatusProcessing RunStatus = "processing"
	StatusCompleted  RunStatus = "completed"
	StatusFailed     RunStatus = "failed"
)

// Run tracks a single execution of the analysis.
type Run struct {
	ID           string
	Status       RunStatus
	StartedAt    time.Time
	CompletedAt  *time.Time
	ErrorMessage string
}

// Complete marks the run finished at t.
func (r *Run) Complete(t time.Time) {
	r.Status = StatusCompleted
	r.CompletedAt = &t
}

// Fail marks the run failed at t with err.
func (r *Run) Fail(t time.Time, err error) {
	r.Status = StatusFailed
	r.CompletedAt = &t
	if err != nil {
		r.ErrorMessage = err.Error()
	}
}

// Duration returns how long the run took, or zero while it is still going.
func (r *Run) Duration() time.Duration {
	if r.CompletedAt == nil {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}
