package forecast

import (
	"testing"
	"time"

	"siprev/internal"
)

func points(values ...float64) []internal.MonthPoint {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]internal.MonthPoint, len(values))
	for i, v := range values {
		out[i] = internal.MonthPoint{Month: start.AddDate(0, i, 0), Quantity: v}
	}
	return out
}

func TestForecastSimpleAverageTier(t *testing.T) {
	result := New().Forecast(points(10, 11, 13))
	if result.Strategy != "simple average" {
		t.Fatalf("strategy = %q", result.Strategy)
	}
	// mean(10, 11, 13) = 11.33, truncated.
	if result.Quantity != 11 {
		t.Fatalf("quantity = %d, want 11", result.Quantity)
	}
}

func TestForecastRecentAverageTier(t *testing.T) {
	result := New().Forecast(points(100, 100, 10, 20, 30, 10, 20, 30))
	if result.Strategy != "recent-average fallback" {
		t.Fatalf("strategy = %q", result.Strategy)
	}
	// Mean of the last 6 only; the two leading spikes are out of window.
	if result.Quantity != 20 {
		t.Fatalf("quantity = %d, want 20", result.Quantity)
	}
}

func TestForecastSeasonalPreconditionWithoutTwoCycles(t *testing.T) {
	// Twelve observations pass the seasonal precondition, but fitting needs
	// two full cycles and must fall through to the recent average.
	result := New().Forecast(points(5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16))
	if result.Strategy != "recent-average fallback" {
		t.Fatalf("strategy = %q", result.Strategy)
	}
	if result.Quantity != 13 {
		t.Fatalf("quantity = %d, want 13", result.Quantity)
	}
}

func TestForecastSeasonalTier(t *testing.T) {
	pattern := []float64{120, 80, 60, 50, 45, 40, 42, 55, 70, 90, 130, 210}
	values := append(append([]float64{}, pattern...), pattern...)
	result := New().Forecast(points(values...))
	if result.Strategy != "seasonal smoothing" {
		t.Fatalf("strategy = %q", result.Strategy)
	}
	if result.Quantity < 0 {
		t.Fatalf("quantity = %d, want non-negative", result.Quantity)
	}
	// Two identical cycles: the next January should land near the January
	// level, far from the December peak.
	if result.Quantity < 60 || result.Quantity > 200 {
		t.Fatalf("quantity = %d, outside plausible seasonal range", result.Quantity)
	}
}

func TestForecastClampsNegative(t *testing.T) {
	// A steep decline drives the additive trend below zero.
	values := make([]float64, 24)
	for i := range values {
		values[i] = float64(240 - 10*i)
	}
	result := New().Forecast(points(values...))
	if result.Quantity < 0 {
		t.Fatalf("quantity = %d, want clamped at 0", result.Quantity)
	}
}

func TestForecastIsDeterministic(t *testing.T) {
	pattern := []float64{12, 9, 7, 6, 8, 11, 14, 18, 22, 19, 15, 13}
	values := append(append([]float64{}, pattern...), pattern...)
	first := New().Forecast(points(values...))
	for i := 0; i < 5; i++ {
		if got := New().Forecast(points(values...)); got != first {
			t.Fatalf("forecast not deterministic: %v vs %v", got, first)
		}
	}
}

func TestHistoricalMean(t *testing.T) {
	if got := HistoricalMean(points(10, 11, 13)); got != 11 {
		t.Fatalf("got %d, want 11", got)
	}
	if got := HistoricalMean(nil); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}

func TestHoltWintersRejectsShortSeries(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	if _, err := holtWinters(values, 12); err == nil {
		t.Fatal("want error for fewer than two full cycles")
	}
}
