package forecast

import (
	"fmt"
	"math"
)

// holtWinters fits additive-trend, additive-seasonal exponential smoothing
// and returns the one-step-ahead forecast. Smoothing factors are chosen by a
// coarse grid search minimizing in-sample one-step squared error, which is
// enough at this horizon and data volume.
func holtWinters(values []float64, period int) (float64, error) {
	if period < 2 {
		return 0, fmt.Errorf("seasonal period must be at least 2, got %d", period)
	}
	if len(values) < 2*period {
		return 0, fmt.Errorf("seasonal fit needs %d observations, got %d", 2*period, len(values))
	}

	grid := []float64{0.1, 0.3, 0.5, 0.7, 0.9}
	best := math.Inf(1)
	bestForecast := 0.0
	found := false

	for _, alpha := range grid {
		for _, beta := range grid {
			for _, gamma := range grid {
				forecast, sse, err := fitOnce(values, period, alpha, beta, gamma)
				if err != nil {
					continue
				}
				if sse < best {
					best = sse
					bestForecast = forecast
					found = true
				}
			}
		}
	}
	if !found {
		return 0, fmt.Errorf("seasonal fit diverged")
	}
	return bestForecast, nil
}

func fitOnce(values []float64, period int, alpha, beta, gamma float64) (float64, float64, error) {
	level := mean(values[:period])
	trend := (mean(values[period:2*period]) - mean(values[:period])) / float64(period)

	season := make([]float64, period)
	for i := 0; i < period; i++ {
		season[i] = values[i] - level
	}

	sse := 0.0
	for t := 0; t < len(values); t++ {
		predicted := level + trend + season[t%period]
		err := values[t] - predicted
		sse += err * err

		prevLevel := level
		level = alpha*(values[t]-season[t%period]) + (1-alpha)*(level+trend)
		trend = beta*(level-prevLevel) + (1-beta)*trend
		season[t%period] = gamma*(values[t]-level) + (1-gamma)*season[t%period]
	}

	forecast := level + trend + season[len(values)%period]
	if math.IsNaN(forecast) || math.IsInf(forecast, 0) {
		return 0, 0, fmt.Errorf("unstable fit")
	}
	return forecast, sse, nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
