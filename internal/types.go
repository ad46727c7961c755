package internal

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesRecord is one product-month of sales after unification. Date is always
// the first day of its month; source files only carry period-level granularity.
type SalesRecord struct {
	Date     time.Time
	Product  string
	Quantity float64
}

// MonthPoint is one entry of the monthly-resampled series fed to forecasting.
// Months with no sales are present with Quantity 0.
type MonthPoint struct {
	Month    time.Time
	Quantity float64
}

type ForecastResult struct {
	Quantity int
	Strategy string
}

type Recommendation string

const (
	RecommendStockSufficient  Recommendation = "stock_sufficient"
	RecommendMaterialShortage Recommendation = "material_shortage"
	RecommendMaterialLow      Recommendation = "material_low"
	RecommendAuthorized       Recommendation = "production_authorized"
)

// PlanningRequest is what the presentation boundary hands in. AdjustPercent
// is bounded by the boundary, not by the planner.
type PlanningRequest struct {
	Product           string
	AdjustPercent     int
	CurrentStock      int
	CurrentMaterialKg decimal.Decimal
}

type PlanningDecision struct {
	Product            string
	AlgorithmQuantity  int
	FinalQuantity      int
	Strategy           string
	HistoricalMean     int
	UnitWeightKg       decimal.Decimal
	RequiredProduction int
	RequiredMaterialKg decimal.Decimal
	MaterialBalanceKg  decimal.Decimal
	Recommendation     Recommendation
}

// RunStats summarizes one ingestion batch over a raw-file directory.
type RunStats struct {
	FilesSeen    int
	FilesParsed  int
	FilesSkipped int
	RowsKept     int
	StartedAt    time.Time
	FinishedAt   time.Time
}
