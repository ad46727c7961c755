package plan

import (
	"github.com/shopspring/decimal"

	"siprev/internal"
)

// Advice is the material-side outcome of one planning request.
type Advice struct {
	RequiredProduction int
	RequiredMaterialKg decimal.Decimal
	MaterialBalanceKg  decimal.Decimal
	Recommendation     internal.Recommendation
}

// Advise derives the production requirement and the stock verdict. The
// categories are evaluated in order, first match wins.
func Advise(finalQty, currentStock int, materialStockKg, unitWeightKg, lowThresholdKg decimal.Decimal) Advice {
	required := finalQty - currentStock
	if required < 0 {
		required = 0
	}

	requiredKg := unitWeightKg.Mul(decimal.NewFromInt(int64(required)))
	balanceKg := materialStockKg.Sub(requiredKg)

	advice := Advice{
		RequiredProduction: required,
		RequiredMaterialKg: requiredKg,
		MaterialBalanceKg:  balanceKg,
	}

	switch {
	case required == 0:
		advice.Recommendation = internal.RecommendStockSufficient
	case balanceKg.IsNegative():
		advice.Recommendation = internal.RecommendMaterialShortage
	case balanceKg.LessThan(lowThresholdKg):
		advice.Recommendation = internal.RecommendMaterialLow
	default:
		advice.Recommendation = internal.RecommendAuthorized
	}
	return advice
}
