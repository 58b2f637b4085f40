package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/anapaulaelz/final-practicum-project/internal/domain"
	"github.com/anapaulaelz/final-practicum-project/internal/pipeline"
)

const dateLayout = "2006-01-02"

// TextReporter prints the human-readable run report.
type TextReporter struct {
	w          io.Writer
	thresholds domain.Thresholds
}

// NewTextReporter creates a reporter writing to w.
func NewTextReporter(w io.Writer, thresholds domain.Thresholds) *TextReporter {
	return &TextReporter{w: w, thresholds: thresholds}
}

func (r *TextReporter) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.w, format, args...)
}

func (r *TextReporter) section(title string) {
	r.printf("\n=== %s ===\n", title)
}

// WriteTitle prints the report banner.
func (r *TextReporter) WriteTitle(title string) {
	r.printf("%s\n%s\n", title, strings.Repeat("=", 40))
}

// WriteLoadSummary prints how many rows each table contributed.
func (r *TextReporter) WriteLoadSummary(inventory, sales, partners int) {
	r.printf("Inventory records: %d\n", inventory)
	r.printf("Sales records: %d\n", sales)
	r.printf("Partners: %d\n", partners)
}

// WriteReport prints every section of a run.
func (r *TextReporter) WriteReport(res *pipeline.Result) {
	r.writeSnapshots(res.Snapshots)
	r.writeDemand(res.Demand)
	r.writeClassification(res)
	r.writeReorders(res.Reorders)
	r.writePartners(res)
	r.WriteFinancials(res.Financials)
	r.writeSummary(res.Metrics)
}

func (r *TextReporter) writeSnapshots(snaps []domain.LatestSnapshot) {
	r.section("INVENTORY ANALYSIS")
	r.printf("Latest Inventory Data (%d products):\n", len(snaps))
	for _, s := range snaps {
		r.printf("%s: %d units (Date: %s)\n", s.Product, s.UnitsOnHand, s.AsOf.Format(dateLayout))
	}
}

func (r *TextReporter) writeDemand(demand pipeline.DemandTable) {
	r.section("DEMAND ANALYSIS")
	if len(demand.Estimates) == 0 {
		r.printf("No sales data available\n")
		return
	}
	r.printf("Sales data covers %d days\n", demand.SpanDays)
	for _, product := range demand.Products() {
		est := demand.Estimates[product]
		r.printf("%s: %.2f units/day (Total sold: %s)\n", product, est.DailyDemand, formatNumber(est.TotalSold))
	}
}

func (r *TextReporter) writeClassification(res *pipeline.Result) {
	r.section("CRITICAL STOCK ANALYSIS")
	r.writeClassificationBody(res)
}

func (r *TextReporter) writeClassificationBody(res *pipeline.Result) {
	crit, low := r.thresholds.Critical, r.thresholds.Low

	groups := []struct {
		title string
		items []domain.ClassifiedStock
	}{
		{fmt.Sprintf("CRITICAL Stock (≤%d units)", crit), res.Critical},
		{fmt.Sprintf("LOW Stock (%d-%d units)", crit+1, low), res.Low},
		{fmt.Sprintf("NORMAL Stock (>%d units)", low), res.Normal},
	}
	for _, g := range groups {
		r.printf("%s: %d products\n", g.title, len(g.items))
		for _, item := range g.items {
			r.printf("  - %s: %d units\n", item.Product, item.CurrentStock)
		}
	}
}

func (r *TextReporter) writeReorders(recs []domain.ReorderRecommendation) {
	r.section("REORDER RECOMMENDATIONS")
	if len(recs) == 0 {
		r.printf("No products need reordering\n")
		return
	}
	for _, rec := range recs {
		if rec.HasDemand() {
			r.printf("%s: Current=%d, Daily demand=%.2f, Recommended=%.1f, Order=%d units (%s priority)\n",
				rec.Product, rec.CurrentStock, rec.DailyDemand, rec.RecommendedStock, rec.ReorderQty, rec.Priority)
			continue
		}
		r.printf("%s: Current=%d, Order=%d units (%s priority) - No sales data\n",
			rec.Product, rec.CurrentStock, rec.ReorderQty, rec.Priority)
	}
}

func (r *TextReporter) writePartners(res *pipeline.Result) {
	r.section("PARTNER ANALYSIS")
	if len(res.Partners) == 0 {
		r.printf("No partner data available\n")
		return
	}

	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(res.Partners[0].Columns, "\t"))
	for _, p := range res.Partners {
		fmt.Fprintln(tw, strings.Join(p.Values, "\t"))
	}
	tw.Flush()

	if len(res.Suppliers.ByType) > 0 {
		r.printf("\nPartner Types:\n")
		for _, tc := range res.Suppliers.ByType {
			r.printf("  %s: %d\n", tc.Type, tc.Count)
		}
	}
}

// WriteFinancials prints the financial aggregates and a per-product breakdown.
func (r *TextReporter) WriteFinancials(fin pipeline.Financials) {
	r.section("FINANCIAL SUMMARY")
	r.printf("Total Inventory Value: %s\n", formatMoney(fin.TotalInventoryValue, 2))
	r.printf("Potential Revenue: %s\n", formatMoney(fin.PotentialRevenue, 2))
	r.printf("Average Product Value: %s\n", formatMoney(fin.AvgProductValue, 0))
	r.printf("Premium Share: %d%%\n", fin.PremiumSharePct)
	r.printf("Average Turnover Days: %d\n", fin.AvgTurnoverDays)
	r.printf("Recommended Reorder Value: %s\n", formatMoney(fin.ReorderValue, 0))
	if len(fin.PremiumProducts) > 0 {
		r.printf("Premium products: %s\n", strings.Join(fin.PremiumProducts, ", "))
	}
	if len(fin.ReorderProducts) > 0 {
		r.printf("Reorder needed: %s\n", strings.Join(fin.ReorderProducts, ", "))
	}

	if len(fin.Products) == 0 {
		return
	}
	r.printf("\n")
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Product\tUnits\tUnit cost\tDemand/day\tDays of supply")
	for _, p := range fin.Products {
		supply := "inf"
		if !math.IsInf(p.DaysOfSupply, 1) {
			supply = formatThousands(p.DaysOfSupply, 0)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%.2f\t%s\n", p.Product, p.Units, formatMoney(p.UnitCost, 2), p.DailyDemand, supply)
	}
	tw.Flush()
}

func (r *TextReporter) writeSummary(m pipeline.Metrics) {
	r.section("SUMMARY")
	r.printf("Total Products: %d\n", m.TotalProducts)
	r.printf("Total Stock Units: %d\n", m.TotalStockUnits)
	r.printf("Critical Stock Items: %d\n", m.CriticalCount)
	r.printf("Products Needing Reorder: %d\n", m.ReorderCount)
	r.printf("Active Suppliers: %d\n", m.ActiveSuppliers)
	r.printf("Average Stock per Product: %.1f\n", m.AvgStockPerProduct)
}

// WriteQuick prints the short dashboard check: latest stock, the three
// classes and the headline counts.
func (r *TextReporter) WriteQuick(res *pipeline.Result) {
	r.section("LATEST INVENTORY")
	for _, s := range res.Snapshots {
		r.printf("%s: %d units\n", s.Product, s.UnitsOnHand)
	}

	r.section("ANALYSIS RESULTS")
	r.writeClassificationBody(res)

	m := res.Metrics
	r.section("DASHBOARD METRICS")
	r.printf("Total Products: %d\n", m.TotalProducts)
	r.printf("Critical Stock Items: %d\n", m.CriticalCount)
	r.printf("Reorder Alerts: %d\n", m.AttentionCount())
	r.printf("Total Stock Units: %d\n", m.TotalStockUnits)
	r.printf("Total Inventory Value: $%s\n", m.TotalInventoryValue.Truncate(0).String())
}

// WriteSaved prints where the dashboard went.
func (r *TextReporter) WriteSaved(location string) {
	r.printf("\nDashboard data saved to: %s\n", location)
}

// WriteStockDetails prints the rows of one stock class from a stored dashboard.
func (r *TextReporter) WriteStockDetails(doc *domain.DashboardDocument, status domain.StockStatus) {
	var rows []domain.StockDetail
	switch status {
	case domain.StatusCritical:
		rows = doc.CriticalStockDetails
	case domain.StatusLow:
		rows = doc.LowStockDetails
	}

	r.printf("%s stock products: %d (updated %s)\n", status.Label(), len(rows), doc.LastUpdated.Format(time.RFC3339))
	for _, row := range rows {
		r.printf("  - %s: %d units\n", row.Product, row.CurrentStock)
	}
}
