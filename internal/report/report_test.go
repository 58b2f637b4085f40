package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/anapaulaelz/final-practicum-project/internal/domain"
	"github.com/anapaulaelz/final-practicum-project/internal/pipeline"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult(t *testing.T) *pipeline.Result {
	t.Helper()
	d := func(n int) time.Time { return time.Date(2024, 3, n, 0, 0, 0, 0, time.UTC) }

	in := pipeline.Input{
		Inventory: []domain.InventoryObservation{
			{Product: "Set LeBorêt No. 1", Date: d(1), UnitsOnHand: 100, InventoryValue: decimal.NewFromInt(66000)},
			{Product: "Set LeBorêt No. 1", Date: d(2), UnitsOnHand: 10, InventoryValue: decimal.NewFromInt(6600)},
			{Product: "Mini & Co", Date: d(2), UnitsOnHand: 12, InventoryValue: decimal.NewFromInt(360)},
			{Product: "Tundra", Date: d(2), UnitsOnHand: 31, InventoryValue: decimal.NewFromInt(4650)},
		},
		Sales: []domain.SalesRecord{
			{Product: "Set LeBorêt No. 1", Date: d(1), NetUnitsSold: 7},
			{Product: "Set LeBorêt No. 1", Date: d(3), NetUnitsSold: 0},
		},
		Partners: []domain.PartnerRecord{
			{Columns: []string{"Name", "Type", "Phone"}, Values: []string{"Perfumes SA", "Supplier", "5551234"}},
		},
	}
	return pipeline.NewAnalyzer(pipeline.DefaultConfig()).Analyze(in)
}

func TestBuildDashboard(t *testing.T) {
	res := sampleResult(t)
	now := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

	doc := BuildDashboard(res, now)

	assert.Equal(t, now, doc.LastUpdated)
	assert.Equal(t, domain.DashboardMetrics{
		TotalProducts:      3,
		TotalStockUnits:    53,
		CriticalStockItems: 2,
		ReorderAlerts:      2,
		ActiveSuppliers:    1,
		AvgStockPerProduct: 17.7,
	}, doc.Metrics)
	assert.Len(t, doc.CriticalStockDetails, 2)
	assert.Empty(t, doc.LowStockDetails)

	require.Len(t, doc.ReorderDetails, 2)
	// 7 units over a 3 day span
	assert.Equal(t, 2.33, doc.ReorderDetails[0].DailyDemand)
	assert.Equal(t, 49.0, doc.ReorderDetails[0].RecommendedStock)
	assert.Equal(t, 88, doc.ReorderDetails[0].ReorderQty)
}

func TestEncodeDashboardRoundTrip(t *testing.T) {
	doc := BuildDashboard(sampleResult(t), time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC))

	data, err := MarshalDashboard(doc)
	require.NoError(t, err)

	assert.Contains(t, string(data), "\n  \"metrics\": {")
	assert.Contains(t, string(data), "Set LeBorêt No. 1")
	assert.Contains(t, string(data), "Mini & Co")
	assert.Contains(t, string(data), `"Phone": 5551234`)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"last_updated", "metrics", "critical_stock_details", "low_stock_details", "reorder_details", "partner_details"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, []interface{}{}, raw["low_stock_details"])

	var back domain.DashboardDocument
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, doc.Metrics, back.Metrics)
	assert.Equal(t, doc.ReorderDetails, back.ReorderDetails)
	assert.Equal(t, doc.PartnerDetails, back.PartnerDetails)
	assert.True(t, doc.LastUpdated.Equal(back.LastUpdated))
}

func TestWriteDashboardFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "dashboard.json")

	require.NoError(t, WriteDashboardFile(path, []byte("{}\n")))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestTextReport(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(&buf, domain.DefaultThresholds())
	r.WriteReport(sampleResult(t))
	out := buf.String()

	assert.Contains(t, out, "=== INVENTORY ANALYSIS ===")
	assert.Contains(t, out, "Set LeBorêt No. 1: 10 units (Date: 2024-03-02)")
	assert.Contains(t, out, "Sales data covers 3 days")
	assert.Contains(t, out, "CRITICAL Stock (≤15 units): 2 products")
	assert.Contains(t, out, "LOW Stock (16-30 units): 0 products")
	assert.Contains(t, out, "Order=88 units (HIGH priority)")
	assert.Contains(t, out, "Mini & Co: Current=12, Order=100 units (HIGH priority) - No sales data")
	assert.Contains(t, out, "Supplier: 1")
	assert.Contains(t, out, "Total Inventory Value: $11,610.00")
	assert.Contains(t, out, "Average Stock per Product: 17.7")
}

func TestQuickReport(t *testing.T) {
	var buf bytes.Buffer
	NewTextReporter(&buf, domain.DefaultThresholds()).WriteQuick(sampleResult(t))
	out := buf.String()

	assert.Contains(t, out, "Reorder Alerts: 2")
	assert.Contains(t, out, "Total Inventory Value: $11610")
}

func TestFormatThousands(t *testing.T) {
	assert.Equal(t, "1,234.50", formatThousands(1234.5, 2))
	assert.Equal(t, "1,000", formatThousands(1000, 0))
	assert.Equal(t, "-12,345,678", formatThousands(-12345678, 0))
	assert.Equal(t, "0.05", formatThousands(0.05, 2))
	assert.Equal(t, "0", formatThousands(-0.4, 0))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$90,071,992,547,409.92", formatMoney(decimal.RequireFromString("90071992547409.925"), 2))
	assert.Equal(t, "$1,234,567,890,123,456,789", formatMoney(decimal.RequireFromString("1234567890123456789"), 0))
	assert.Equal(t, "$-1,000.50", formatMoney(decimal.RequireFromString("-1000.5"), 2))
	assert.Equal(t, "$2", formatMoney(decimal.RequireFromString("2.5"), 0))
}

func TestRoundFloat(t *testing.T) {
	tests := []struct {
		in       float64
		decimals int
		want     float64
	}{
		{2.25, 1, 2.2},
		{2.35, 1, 2.4},
		{2.675, 2, 2.67},
		{0.125, 2, 0.12},
		{53.0 / 3.0, 1, 17.7},
		{-2.25, 1, -2.2},
		{2.5, 0, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, roundFloat(tt.in, tt.decimals), "roundFloat(%v, %d)", tt.in, tt.decimals)
	}
}

func TestBuildDashboardRoundsHalfToEven(t *testing.T) {
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	in := pipeline.Input{}
	for i, units := range []int{1, 2, 3, 3} {
		in.Inventory = append(in.Inventory, domain.InventoryObservation{
			Product:        string(rune('A' + i)),
			Date:           d,
			UnitsOnHand:    units,
			InventoryValue: decimal.NewFromInt(int64(units)),
		})
	}
	res := pipeline.NewAnalyzer(pipeline.DefaultConfig()).Analyze(in)
	require.Equal(t, 2.25, res.Metrics.AvgStockPerProduct)

	doc := BuildDashboard(res, d)
	assert.Equal(t, 2.2, doc.Metrics.AvgStockPerProduct)
}
