package pipeline

import (
	"sort"
	"time"

	"github.com/anapaulaelz/final-practicum-project/internal/domain"
)

// DemandTable is the output of the demand estimator.
type DemandTable struct {
	// Estimates is keyed by product name.
	Estimates map[string]domain.DemandEstimate
	// SpanDays is the number of days covered by the whole sales table,
	// counting both ends. It is shared by every product.
	SpanDays int
}

// Get returns the estimate for a product.
func (t DemandTable) Get(product string) (domain.DemandEstimate, bool) {
	est, ok := t.Estimates[product]
	return est, ok
}

// Products returns the estimated products in name order.
func (t DemandTable) Products() []string {
	names := make([]string, 0, len(t.Estimates))
	for name := range t.Estimates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EstimateDemand sums net units sold per product and divides by the day span
// of the entire sales table. Returns are netted in, so a total may be
// negative. An empty table yields no estimates and a span of 0.
func EstimateDemand(sales []domain.SalesRecord) DemandTable {
	table := DemandTable{Estimates: make(map[string]domain.DemandEstimate)}
	if len(sales) == 0 {
		return table
	}

	minDate, maxDate := sales[0].Date, sales[0].Date
	totals := make(map[string]float64)
	for _, rec := range sales {
		totals[rec.Product] += rec.NetUnitsSold
		if rec.Date.Before(minDate) {
			minDate = rec.Date
		}
		if rec.Date.After(maxDate) {
			maxDate = rec.Date
		}
	}

	table.SpanDays = int(maxDate.Sub(minDate)/(24*time.Hour)) + 1

	for product, total := range totals {
		daily := 0.0
		if table.SpanDays > 0 {
			daily = total / float64(table.SpanDays)
		}
		table.Estimates[product] = domain.DemandEstimate{
			Product:     product,
			TotalSold:   total,
			DailyDemand: daily,
		}
	}

	return table
}
