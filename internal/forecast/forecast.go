// Package forecast produces the next-month demand estimate for one product
// from its monthly series, falling through an ordered chain of strategies.
package forecast

import (
	"math"

	"siprev/internal"
)

// Strategy is one tier of the fallback chain: a precondition over the series
// length and an estimation attempt that may fail.
type Strategy interface {
	Name() string
	Ready(n int) bool
	Estimate(values []float64) (float64, error)
}

const seasonalPeriod = 12

type seasonal struct{}

func (seasonal) Name() string     { return "seasonal smoothing" }
func (seasonal) Ready(n int) bool { return n >= seasonalPeriod }
func (seasonal) Estimate(values []float64) (float64, error) {
	return holtWinters(values, seasonalPeriod)
}

type recentAverage struct{ window int }

func (recentAverage) Name() string       { return "recent-average fallback" }
func (s recentAverage) Ready(n int) bool { return n >= s.window }
func (s recentAverage) Estimate(values []float64) (float64, error) {
	return mean(values[len(values)-s.window:]), nil
}

type simpleAverage struct{}

func (simpleAverage) Name() string     { return "simple average" }
func (simpleAverage) Ready(n int) bool { return n > 0 }
func (simpleAverage) Estimate(values []float64) (float64, error) {
	return mean(values), nil
}

type Forecaster struct {
	chain []Strategy
}

func New() *Forecaster {
	return &Forecaster{chain: []Strategy{
		seasonal{},
		recentAverage{window: 6},
		simpleAverage{},
	}}
}

// Forecast tries each strategy in order and stops at the first whose
// precondition holds and whose attempt succeeds. A tier's fitting error is
// the trigger for the next tier, never a reported failure. The result is
// truncated to an integer and clamped at zero.
func (f *Forecaster) Forecast(points []internal.MonthPoint) internal.ForecastResult {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Quantity
	}

	for _, strategy := range f.chain {
		if !strategy.Ready(len(values)) {
			continue
		}
		estimated, err := strategy.Estimate(values)
		if err != nil {
			continue
		}
		qty := int(math.Trunc(estimated))
		if qty < 0 {
			qty = 0
		}
		return internal.ForecastResult{Quantity: qty, Strategy: strategy.Name()}
	}
	return internal.ForecastResult{Quantity: 0, Strategy: simpleAverage{}.Name()}
}

// HistoricalMean is the all-history monthly mean, floored.
func HistoricalMean(points []internal.MonthPoint) int {
	if len(points) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range points {
		sum += p.Quantity
	}
	return int(sum / float64(len(points)))
}
