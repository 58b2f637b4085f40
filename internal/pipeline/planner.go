package pipeline

import (
	"math"

	"github.com/anapaulaelz/final-practicum-project/internal/domain"
)

// PlannerConfig holds the replenishment constants.
type PlannerConfig struct {
	CoverageDays             int     // Days of demand the target stock should cover
	MinReorderQty            int     // Floor for any demand-driven reorder
	FallbackRecommendedStock float64 // Target stock when a critical product has no demand
	FallbackReorderQty       int     // Quantity ordered in that case
}

// DefaultPlannerConfig returns three weeks of coverage with a 50 unit floor.
func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		CoverageDays:             21,
		MinReorderQty:            50,
		FallbackRecommendedStock: 50,
		FallbackReorderQty:       100,
	}
}

// ReorderPlanner decides which products to reorder and how much.
type ReorderPlanner struct {
	config     PlannerConfig
	thresholds domain.Thresholds
}

// NewReorderPlanner creates a new reorder planner
func NewReorderPlanner(config PlannerConfig, thresholds domain.Thresholds) *ReorderPlanner {
	return &ReorderPlanner{
		config:     config,
		thresholds: thresholds,
	}
}

// Recommend computes the recommendation for one product. The boolean is false
// when the product does not need to be reordered. Any demand estimate, zero or
// negative included, takes the demand path.
func (rp *ReorderPlanner) Recommend(s domain.LatestSnapshot, est domain.DemandEstimate, hasDemand bool) (domain.ReorderRecommendation, bool) {
	current := s.UnitsOnHand

	if hasDemand {
		// 1. Target stock = daily demand × coverage days
		recommended := est.DailyDemand * float64(rp.config.CoverageDays)
		if float64(current) > recommended {
			return domain.ReorderRecommendation{}, false
		}

		// 2. Order enough to double the target, never less than the floor
		qty := recommended*2 - float64(current)
		qty = math.Max(float64(rp.config.MinReorderQty), qty)

		// 3. Priority follows the critical threshold
		priority := domain.PriorityMedium
		if current <= rp.thresholds.Critical {
			priority = domain.PriorityHigh
		}

		return domain.ReorderRecommendation{
			Product:          s.Product,
			CurrentStock:     current,
			DailyDemand:      est.DailyDemand,
			RecommendedStock: recommended,
			ReorderQty:       int(qty),
			Priority:         priority,
		}, true
	}

	// No sales history: only critical products get the conservative order
	if current <= rp.thresholds.Critical {
		return domain.ReorderRecommendation{
			Product:          s.Product,
			CurrentStock:     current,
			DailyDemand:      0,
			RecommendedStock: rp.config.FallbackRecommendedStock,
			ReorderQty:       rp.config.FallbackReorderQty,
			Priority:         domain.PriorityHigh,
		}, true
	}

	return domain.ReorderRecommendation{}, false
}

// Plan returns the recommendations for every snapshot that needs one, in
// snapshot order.
func (rp *ReorderPlanner) Plan(snapshots []domain.LatestSnapshot, demand DemandTable) []domain.ReorderRecommendation {
	recs := make([]domain.ReorderRecommendation, 0)
	for _, s := range snapshots {
		est, ok := demand.Get(s.Product)
		if rec, needed := rp.Recommend(s, est, ok); needed {
			recs = append(recs, rec)
		}
	}
	return recs
}
