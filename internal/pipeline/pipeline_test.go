package pipeline

import (
	"testing"
	"time"

	"github.com/anapaulaelz/final-practicum-project/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n-1)
}

func obs(product string, d, units int, value string) domain.InventoryObservation {
	return domain.InventoryObservation{
		Product:        product,
		Date:           day(d),
		UnitsOnHand:    units,
		InventoryValue: decimal.RequireFromString(value),
	}
}

func sale(product string, d int, units float64) domain.SalesRecord {
	return domain.SalesRecord{Product: product, Date: day(d), NetUnitsSold: units}
}

func snap(product string, units int) domain.LatestSnapshot {
	return domain.LatestSnapshot{Product: product, UnitsOnHand: units, InventoryValue: decimal.Zero, AsOf: day(1)}
}

func TestLatestSnapshots(t *testing.T) {
	t.Run("keeps the latest row per product", func(t *testing.T) {
		got := LatestSnapshots([]domain.InventoryObservation{
			obs("P", 2, 10, "100"),
			obs("P", 1, 100, "1000"),
			obs("Q", 1, 5, "50"),
		})
		require.Len(t, got, 2)

		assert.Equal(t, "Q", got[0].Product)
		assert.Equal(t, "P", got[1].Product)
		assert.Equal(t, 10, got[1].UnitsOnHand)
		assert.Equal(t, day(2), got[1].AsOf)
	})

	t.Run("later input row wins a date tie", func(t *testing.T) {
		got := LatestSnapshots([]domain.InventoryObservation{
			obs("P", 3, 1, "1"),
			obs("P", 3, 2, "2"),
		})
		require.Len(t, got, 1)
		assert.Equal(t, 2, got[0].UnitsOnHand)
	})

	t.Run("one row per product at its max date", func(t *testing.T) {
		input := []domain.InventoryObservation{
			obs("A", 5, 1, "1"), obs("B", 2, 1, "1"), obs("A", 1, 1, "1"),
			obs("C", 4, 1, "1"), obs("B", 7, 1, "1"), obs("C", 3, 1, "1"),
		}
		maxDate := map[string]time.Time{}
		for _, o := range input {
			if o.Date.After(maxDate[o.Product]) {
				maxDate[o.Product] = o.Date
			}
		}

		got := LatestSnapshots(input)
		require.Len(t, got, len(maxDate))
		seen := map[string]bool{}
		for _, s := range got {
			assert.False(t, seen[s.Product], "duplicate %s", s.Product)
			seen[s.Product] = true
			assert.Equal(t, maxDate[s.Product], s.AsOf)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, LatestSnapshots(nil))
	})
}

func TestEstimateDemand(t *testing.T) {
	t.Run("span covers the whole table", func(t *testing.T) {
		table := EstimateDemand([]domain.SalesRecord{
			sale("P", 1, 10),
			sale("P", 10, 10),
			sale("Q", 4, 5),
		})
		assert.Equal(t, 10, table.SpanDays)

		p, ok := table.Get("P")
		require.True(t, ok)
		assert.Equal(t, 20.0, p.TotalSold)
		assert.Equal(t, 2.0, p.DailyDemand)

		// Q sold on a single day but shares the table-wide span
		q, ok := table.Get("Q")
		require.True(t, ok)
		assert.Equal(t, 0.5, q.DailyDemand)

		assert.Equal(t, []string{"P", "Q"}, table.Products())
	})

	t.Run("returns net out", func(t *testing.T) {
		table := EstimateDemand([]domain.SalesRecord{
			sale("P", 1, 3),
			sale("P", 2, -5),
		})
		p, _ := table.Get("P")
		assert.Equal(t, -2.0, p.TotalSold)
		assert.Equal(t, -1.0, p.DailyDemand)
	})

	t.Run("partial days round down", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)
		table := EstimateDemand([]domain.SalesRecord{
			{Product: "P", Date: start, NetUnitsSold: 4},
			{Product: "P", Date: start.Add(2 * time.Hour), NetUnitsSold: 4},
		})
		assert.Equal(t, 1, table.SpanDays)
		p, _ := table.Get("P")
		assert.Equal(t, 8.0, p.DailyDemand)
	})

	t.Run("empty table", func(t *testing.T) {
		table := EstimateDemand(nil)
		assert.Equal(t, 0, table.SpanDays)
		assert.Empty(t, table.Estimates)
	})
}

func TestClassifier(t *testing.T) {
	c := NewClassifier(domain.DefaultThresholds())

	tests := []struct {
		stock int
		want  domain.StockStatus
	}{
		{-2, domain.StatusCritical},
		{0, domain.StatusCritical},
		{15, domain.StatusCritical},
		{16, domain.StatusLow},
		{30, domain.StatusLow},
		{31, domain.StatusNormal},
		{500, domain.StatusNormal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Status(tt.stock), "stock %d", tt.stock)
	}

	got := c.ClassifyAll([]domain.LatestSnapshot{snap("A", 40), snap("B", 15)})
	require.Len(t, got, 2)
	assert.Equal(t, domain.ClassifiedStock{Product: "A", CurrentStock: 40, Status: domain.StatusNormal}, got[0])
	assert.Equal(t, domain.StatusCritical, got[1].Status)
}

func TestReorderPlanner(t *testing.T) {
	planner := NewReorderPlanner(DefaultPlannerConfig(), domain.DefaultThresholds())
	demand := func(daily float64) domain.DemandEstimate {
		return domain.DemandEstimate{DailyDemand: daily}
	}

	t.Run("demand driven high priority", func(t *testing.T) {
		rec, ok := planner.Recommend(snap("P", 10), demand(2), true)
		require.True(t, ok)
		assert.Equal(t, 2.0, rec.DailyDemand)
		assert.Equal(t, 42.0, rec.RecommendedStock)
		assert.Equal(t, 74, rec.ReorderQty)
		assert.Equal(t, domain.PriorityHigh, rec.Priority)
	})

	t.Run("demand driven medium priority", func(t *testing.T) {
		rec, ok := planner.Recommend(snap("P", 20), demand(2), true)
		require.True(t, ok)
		assert.Equal(t, 64, rec.ReorderQty)
		assert.Equal(t, domain.PriorityMedium, rec.Priority)
	})

	t.Run("stock equal to target still reorders", func(t *testing.T) {
		rec, ok := planner.Recommend(snap("P", 42), demand(2), true)
		require.True(t, ok)
		assert.Equal(t, 50, rec.ReorderQty)
	})

	t.Run("floor of fifty", func(t *testing.T) {
		rec, ok := planner.Recommend(snap("P", 10), demand(0.5), true)
		require.True(t, ok)
		assert.Equal(t, 10.5, rec.RecommendedStock)
		assert.Equal(t, 50, rec.ReorderQty)
	})

	t.Run("quantity truncates", func(t *testing.T) {
		// 3.3 × 21 × 2 - 60 = 78.6
		rec, ok := planner.Recommend(snap("P", 60), demand(3.3), true)
		require.True(t, ok)
		assert.Equal(t, 78, rec.ReorderQty)
	})

	t.Run("enough stock", func(t *testing.T) {
		_, ok := planner.Recommend(snap("P", 43), demand(2), true)
		assert.False(t, ok)
	})

	t.Run("fallback for critical without demand", func(t *testing.T) {
		rec, ok := planner.Recommend(snap("Q", 12), domain.DemandEstimate{}, false)
		require.True(t, ok)
		assert.Equal(t, domain.ReorderRecommendation{
			Product:          "Q",
			CurrentStock:     12,
			DailyDemand:      0,
			RecommendedStock: 50,
			ReorderQty:       100,
			Priority:         domain.PriorityHigh,
		}, rec)
		assert.False(t, rec.HasDemand())
	})

	t.Run("no fallback above critical", func(t *testing.T) {
		_, ok := planner.Recommend(snap("R", 31), domain.DemandEstimate{}, false)
		assert.False(t, ok)
		_, ok = planner.Recommend(snap("R", 16), domain.DemandEstimate{}, false)
		assert.False(t, ok)
	})

	t.Run("non-positive demand stays on the demand path", func(t *testing.T) {
		_, ok := planner.Recommend(snap("N", 5), demand(-1), true)
		assert.False(t, ok)

		rec, ok := planner.Recommend(snap("N", 0), demand(0), true)
		require.True(t, ok)
		assert.Equal(t, 0.0, rec.RecommendedStock)
		assert.Equal(t, 50, rec.ReorderQty)
		assert.Equal(t, domain.PriorityHigh, rec.Priority)
		assert.False(t, rec.HasDemand())

		_, ok = planner.Recommend(snap("N", 20), demand(0), true)
		assert.False(t, ok)
	})

	t.Run("plan keeps snapshot order", func(t *testing.T) {
		table := DemandTable{Estimates: map[string]domain.DemandEstimate{
			"A": {Product: "A", DailyDemand: 2},
		}, SpanDays: 10}
		recs := planner.Plan([]domain.LatestSnapshot{snap("Z", 3), snap("B", 100), snap("A", 10)}, table)
		require.Len(t, recs, 2)
		assert.Equal(t, "Z", recs[0].Product)
		assert.Equal(t, "A", recs[1].Product)
		for _, r := range recs {
			assert.GreaterOrEqual(t, r.ReorderQty, 50)
		}
	})
}

func TestAnalyzePartners(t *testing.T) {
	cols := []string{"Name", "Type"}
	summary := AnalyzePartners([]domain.PartnerRecord{
		{Columns: cols, Values: []string{"a", "Supplier"}},
		{Columns: cols, Values: []string{"b", "Carrier"}},
		{Columns: cols, Values: []string{"c", "Supplier"}},
		{Columns: cols, Values: []string{"d", "Bank"}},
		{Columns: cols, Values: []string{"e", ""}},
	})

	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, []TypeCount{
		{Type: "Supplier", Count: 2},
		{Type: "Bank", Count: 1},
		{Type: "Carrier", Count: 1},
	}, summary.ByType)

	empty := AnalyzePartners(nil)
	assert.Equal(t, 0, empty.Total)
	assert.Empty(t, empty.ByType)
}

func TestExcludeProducts(t *testing.T) {
	inv, sales := ExcludeProducts(
		[]domain.InventoryObservation{obs("prueba1", 1, 1, "1"), obs("P", 1, 1, "1")},
		[]domain.SalesRecord{sale("prueba1", 1, 1), sale("P", 1, 1)},
		[]string{" prueba1 "},
	)
	require.Len(t, inv, 1)
	require.Len(t, sales, 1)
	assert.Equal(t, "P", inv[0].Product)
	assert.Equal(t, "P", sales[0].Product)
}

func TestComputeFinancials(t *testing.T) {
	snapshots := []domain.LatestSnapshot{
		{Product: "Set", UnitsOnHand: 28, InventoryValue: decimal.RequireFromString("18480")},
		{Product: "Mini", UnitsOnHand: 13, InventoryValue: decimal.RequireFromString("390")},
	}
	demand := DemandTable{Estimates: map[string]domain.DemandEstimate{
		"Set": {Product: "Set", DailyDemand: 1},
	}, SpanDays: 30}
	classified := NewClassifier(domain.DefaultThresholds()).ClassifyAll(snapshots)

	fin := ComputeFinancials(snapshots, demand, classified, DefaultFinancialOptions())

	assert.True(t, decimal.RequireFromString("18870").Equal(fin.TotalInventoryValue))
	assert.True(t, decimal.RequireFromString("37740").Equal(fin.PotentialRevenue))
	assert.True(t, decimal.RequireFromString("9435").Equal(fin.AvgProductValue))
	assert.Equal(t, 98, fin.PremiumSharePct)
	// (28 + 999) / 2 = 513.5, rounded to even
	assert.Equal(t, 514, fin.AvgTurnoverDays)
	// 70 × 660 + 50 × 30
	assert.True(t, decimal.RequireFromString("47700").Equal(fin.ReorderValue), fin.ReorderValue.String())
	assert.Equal(t, []string{"Set"}, fin.PremiumProducts)
	assert.Equal(t, []string{"Set", "Mini"}, fin.ReorderProducts)

	require.Len(t, fin.Products, 2)
	assert.True(t, decimal.NewFromInt(660).Equal(fin.Products[0].UnitCost))
	assert.Equal(t, 28.0, fin.Products[0].DaysOfSupply)
	assert.True(t, fin.Products[1].DaysOfSupply > 1e300)
}

func TestComputeFinancialsEmpty(t *testing.T) {
	fin := ComputeFinancials(nil, DemandTable{}, nil, DefaultFinancialOptions())
	assert.True(t, fin.TotalInventoryValue.IsZero())
	assert.Equal(t, 0, fin.PremiumSharePct)
	assert.Equal(t, 0, fin.AvgTurnoverDays)
}

func TestUnitCostWithoutUnits(t *testing.T) {
	s := domain.LatestSnapshot{UnitsOnHand: 0, InventoryValue: decimal.NewFromInt(10)}
	assert.True(t, UnitCost(s).IsZero())
}
