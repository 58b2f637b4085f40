package pipeline

import (
	"math"

	"github.com/anapaulaelz/final-practicum-project/internal/domain"
	"github.com/shopspring/decimal"
)

// NoDemandTurnoverDays stands in for the days of supply of a product that is
// not selling.
const NoDemandTurnoverDays = 999.0

// FinancialOptions holds the constants behind the financial aggregates.
type FinancialOptions struct {
	Markup           float64 // Selling price as a multiple of cost
	PremiumUnitCost  float64 // Unit cost above which a product is premium
	ReorderCoverDays float64 // Days of demand priced into the reorder value
	ReorderSafetyQty float64 // Units added on top of that demand
	MinReorderQty    float64 // Floor per product
}

func DefaultFinancialOptions() FinancialOptions {
	return FinancialOptions{
		Markup:           2,
		PremiumUnitCost:  200,
		ReorderCoverDays: 60,
		ReorderSafetyQty: 10,
		MinReorderQty:    50,
	}
}

// ProductValue is the per-product breakdown behind the aggregates.
type ProductValue struct {
	Product      string          `json:"product"`
	Units        int             `json:"units"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Value        decimal.Decimal `json:"value"`
	DailyDemand  float64         `json:"daily_demand"`
	DaysOfSupply float64         `json:"days_of_supply"` // +Inf when there is no demand
	Premium      bool            `json:"premium"`
}

// Financials are the money-facing aggregates of a run.
type Financials struct {
	TotalInventoryValue decimal.Decimal `json:"total_inventory_value"`
	PotentialRevenue    decimal.Decimal `json:"potential_revenue"`
	AvgProductValue     decimal.Decimal `json:"avg_product_value"`
	PremiumSharePct     int             `json:"premium_share_pct"`
	AvgTurnoverDays     int             `json:"avg_turnover_days"`
	ReorderValue        decimal.Decimal `json:"reorder_value"`
	PremiumProducts     []string        `json:"premium_products"`
	ReorderProducts     []string        `json:"reorder_products"`
	Products            []ProductValue  `json:"-"`
}

// UnitCost derives the cost of one unit from a snapshot. It is zero when the
// product has no units on hand.
func UnitCost(s domain.LatestSnapshot) decimal.Decimal {
	if s.UnitsOnHand <= 0 {
		return decimal.Zero
	}
	return s.InventoryValue.Div(decimal.NewFromInt(int64(s.UnitsOnHand)))
}

// ComputeFinancials aggregates inventory value, premium share, turnover and the
// value of restocking every CRITICAL and LOW product. Percentages and days are
// rounded half to even.
func ComputeFinancials(snapshots []domain.LatestSnapshot, demand DemandTable, classified []domain.ClassifiedStock, opts FinancialOptions) Financials {
	fin := Financials{
		TotalInventoryValue: decimal.Zero,
		PotentialRevenue:    decimal.Zero,
		AvgProductValue:     decimal.Zero,
		ReorderValue:        decimal.Zero,
		PremiumProducts:     []string{},
		ReorderProducts:     []string{},
		Products:            make([]ProductValue, 0, len(snapshots)),
	}
	if len(snapshots) == 0 {
		return fin
	}

	premiumThreshold := decimal.NewFromFloat(opts.PremiumUnitCost)
	premiumValue := decimal.Zero
	turnoverSum := 0.0
	byProduct := make(map[string]ProductValue, len(snapshots))

	for _, s := range snapshots {
		pv := ProductValue{
			Product:      s.Product,
			Units:        s.UnitsOnHand,
			UnitCost:     UnitCost(s),
			Value:        s.InventoryValue,
			DaysOfSupply: math.Inf(1),
		}
		if est, ok := demand.Get(s.Product); ok {
			pv.DailyDemand = est.DailyDemand
		}

		turnover := NoDemandTurnoverDays
		if pv.DailyDemand > 0 {
			pv.DaysOfSupply = float64(s.UnitsOnHand) / pv.DailyDemand
			turnover = pv.DaysOfSupply
		}
		turnoverSum += turnover

		if pv.UnitCost.GreaterThan(premiumThreshold) {
			pv.Premium = true
			premiumValue = premiumValue.Add(s.InventoryValue)
			fin.PremiumProducts = append(fin.PremiumProducts, s.Product)
		}

		fin.TotalInventoryValue = fin.TotalInventoryValue.Add(s.InventoryValue)
		fin.Products = append(fin.Products, pv)
		byProduct[s.Product] = pv
	}

	n := decimal.NewFromInt(int64(len(snapshots)))
	fin.PotentialRevenue = fin.TotalInventoryValue.Mul(decimal.NewFromFloat(opts.Markup))
	fin.AvgProductValue = fin.TotalInventoryValue.Div(n)
	fin.AvgTurnoverDays = int(math.RoundToEven(turnoverSum / float64(len(snapshots))))

	if fin.TotalInventoryValue.IsPositive() {
		share := premiumValue.Div(fin.TotalInventoryValue).Mul(decimal.NewFromInt(100))
		fin.PremiumSharePct = int(math.RoundToEven(share.InexactFloat64()))
	}

	for _, c := range classified {
		if !c.Status.NeedsAttention() {
			continue
		}
		pv, ok := byProduct[c.Product]
		if !ok {
			continue
		}
		qty := math.Max(opts.MinReorderQty, pv.DailyDemand*opts.ReorderCoverDays+opts.ReorderSafetyQty)
		fin.ReorderValue = fin.ReorderValue.Add(decimal.NewFromFloat(qty).Mul(pv.UnitCost))
		fin.ReorderProducts = append(fin.ReorderProducts, c.Product)
	}

	return fin
}
