package pipeline

import (
	"github.com/anapaulaelz/final-practicum-project/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Analyzer runs the four stages over one dataset: snapshot reduction, demand
// estimation, classification and reorder planning. It also derives the partner
// and financial summaries.
type Analyzer struct {
	config     Config
	classifier *Classifier
	planner    *ReorderPlanner
}

// NewAnalyzer creates an analyzer for the given config.
func NewAnalyzer(config Config) *Analyzer {
	return &Analyzer{
		config:     config,
		classifier: NewClassifier(config.Thresholds),
		planner:    NewReorderPlanner(config.Planner, config.Thresholds),
	}
}

// Analyze runs every stage over in-memory data. It never fails: malformed rows
// are rejected when the tables are loaded.
func (a *Analyzer) Analyze(in Input) *Result {
	inventory, sales := ExcludeProducts(in.Inventory, in.Sales, a.config.ExcludeProducts)
	if dropped := len(in.Inventory) - len(inventory); dropped > 0 {
		log.Debug().Int("rows", dropped).Strs("products", a.config.ExcludeProducts).Msg("excluded inventory rows")
	}

	res := &Result{
		Snapshots: LatestSnapshots(inventory),
		Demand:    EstimateDemand(sales),
		Partners:  in.Partners,
		Critical:  []domain.ClassifiedStock{},
		Low:       []domain.ClassifiedStock{},
		Normal:    []domain.ClassifiedStock{},
	}
	if res.Partners == nil {
		res.Partners = []domain.PartnerRecord{}
	}

	res.Classified = a.classifier.ClassifyAll(res.Snapshots)
	for _, c := range res.Classified {
		switch c.Status {
		case domain.StatusCritical:
			res.Critical = append(res.Critical, c)
		case domain.StatusLow:
			res.Low = append(res.Low, c)
		default:
			res.Normal = append(res.Normal, c)
		}
	}

	res.Reorders = a.planner.Plan(res.Snapshots, res.Demand)
	res.Suppliers = AnalyzePartners(res.Partners)
	res.Financials = ComputeFinancials(res.Snapshots, res.Demand, res.Classified, a.config.Financials)
	res.Metrics = summarize(res)

	log.Debug().
		Int("products", res.Metrics.TotalProducts).
		Int("critical", res.Metrics.CriticalCount).
		Int("low", res.Metrics.LowCount).
		Int("reorders", res.Metrics.ReorderCount).
		Int("span_days", res.Demand.SpanDays).
		Msg("analysis complete")

	return res
}

func summarize(res *Result) Metrics {
	m := Metrics{
		TotalProducts:       len(res.Snapshots),
		CriticalCount:       len(res.Critical),
		LowCount:            len(res.Low),
		NormalCount:         len(res.Normal),
		ReorderCount:        len(res.Reorders),
		ActiveSuppliers:     res.Suppliers.Total,
		TotalInventoryValue: decimal.Zero,
	}
	for _, s := range res.Snapshots {
		m.TotalStockUnits += s.UnitsOnHand
		m.TotalInventoryValue = m.TotalInventoryValue.Add(s.InventoryValue)
	}
	if m.TotalProducts > 0 {
		m.AvgStockPerProduct = float64(m.TotalStockUnits) / float64(m.TotalProducts)
	}
	return m
}
