package plan

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"siprev/internal"
	"siprev/internal/config"
)

func TestApplyScenario(t *testing.T) {
	cases := []struct {
		qty, pct, want int
	}{
		{100, 0, 100},
		{100, 20, 120},
		{100, -50, 50},
		{0, 50, 0},
		{33, 10, 36},  // 36.3 floors to 36
		{7, -15, 5},   // 5.95 floors to 5
	}
	for _, tc := range cases {
		if got := ApplyScenario(tc.qty, tc.pct); got != tc.want {
			t.Fatalf("ApplyScenario(%d, %d) = %d, want %d", tc.qty, tc.pct, got, tc.want)
		}
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAdviseMaterialShortage(t *testing.T) {
	advice := Advise(150, 100, dec("10"), dec("0.3"), dec("50"))
	if advice.RequiredProduction != 50 {
		t.Fatalf("required = %d, want 50", advice.RequiredProduction)
	}
	if !advice.RequiredMaterialKg.Equal(dec("15")) {
		t.Fatalf("required material = %s, want 15", advice.RequiredMaterialKg)
	}
	if !advice.MaterialBalanceKg.Equal(dec("-5")) {
		t.Fatalf("balance = %s, want -5", advice.MaterialBalanceKg)
	}
	if advice.Recommendation != internal.RecommendMaterialShortage {
		t.Fatalf("recommendation = %s", advice.Recommendation)
	}
}

func TestAdviseStockSufficientIgnoresMaterial(t *testing.T) {
	// Stock covers demand, so even an empty material stock is irrelevant.
	advice := Advise(80, 100, dec("0"), dec("0.3"), dec("50"))
	if advice.RequiredProduction != 0 {
		t.Fatalf("required = %d, want 0", advice.RequiredProduction)
	}
	if advice.Recommendation != internal.RecommendStockSufficient {
		t.Fatalf("recommendation = %s", advice.Recommendation)
	}
}

func TestAdviseMaterialLow(t *testing.T) {
	// 100 units * 0.3 kg = 30 kg against 60 kg leaves 30 kg, under the 50 kg
	// threshold but not negative.
	advice := Advise(100, 0, dec("60"), dec("0.3"), dec("50"))
	if advice.Recommendation != internal.RecommendMaterialLow {
		t.Fatalf("recommendation = %s", advice.Recommendation)
	}
	if !advice.MaterialBalanceKg.Equal(dec("30")) {
		t.Fatalf("balance = %s, want 30", advice.MaterialBalanceKg)
	}
}

func TestAdviseAuthorized(t *testing.T) {
	advice := Advise(100, 0, dec("500"), dec("0.3"), dec("50"))
	if advice.Recommendation != internal.RecommendAuthorized {
		t.Fatalf("recommendation = %s", advice.Recommendation)
	}
}

type fakeSource struct {
	records []internal.SalesRecord
	err     error
}

func (f fakeSource) LoadSales() ([]internal.SalesRecord, error) { return f.records, f.err }

func salesFor(product string, months int, qty float64) []internal.SalesRecord {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]internal.SalesRecord, months)
	for i := range out {
		out[i] = internal.SalesRecord{Date: start.AddDate(0, i, 0), Product: product, Quantity: qty}
	}
	return out
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestPlannerEndToEnd(t *testing.T) {
	// Eight flat months of 120 units: recent-average tier, forecast 120.
	planner := NewPlanner(testConfig(t), fakeSource{records: salesFor("VELA PALITO", 8, 120)})

	decision, err := planner.Plan(internal.PlanningRequest{
		Product:           "VELA PALITO",
		AdjustPercent:     20,
		CurrentStock:      100,
		CurrentMaterialKg: dec("500"),
	})
	if err != nil {
		t.Fatal(err)
	}

	if decision.Strategy != "recent-average fallback" {
		t.Fatalf("strategy = %q", decision.Strategy)
	}
	if decision.AlgorithmQuantity != 120 || decision.FinalQuantity != 144 {
		t.Fatalf("quantities = %d/%d, want 120/144", decision.AlgorithmQuantity, decision.FinalQuantity)
	}
	if decision.RequiredProduction != 44 {
		t.Fatalf("required = %d, want 44", decision.RequiredProduction)
	}
	// PALITO weighs 0.48 kg: 44 * 0.48 = 21.12 kg needed, 478.88 kg left.
	if !decision.RequiredMaterialKg.Equal(dec("21.12")) {
		t.Fatalf("required material = %s", decision.RequiredMaterialKg)
	}
	if decision.Recommendation != internal.RecommendAuthorized {
		t.Fatalf("recommendation = %s", decision.Recommendation)
	}
	if decision.HistoricalMean != 120 {
		t.Fatalf("historical mean = %d", decision.HistoricalMean)
	}
}

func TestPlannerNoSeries(t *testing.T) {
	planner := NewPlanner(testConfig(t), fakeSource{records: nil})
	_, err := planner.Plan(internal.PlanningRequest{Product: "VELA PALITO"})
	if !errors.Is(err, ErrNoSeries) {
		t.Fatalf("err = %v, want ErrNoSeries", err)
	}
}

func TestPlannerSourceFailure(t *testing.T) {
	planner := NewPlanner(testConfig(t), fakeSource{err: errors.New("disk gone")})
	_, err := planner.Plan(internal.PlanningRequest{Product: "VELA PALITO"})
	if !errors.Is(err, ErrNoSeries) {
		t.Fatalf("err = %v, want ErrNoSeries", err)
	}
}

func TestPlannerNoProductData(t *testing.T) {
	planner := NewPlanner(testConfig(t), fakeSource{records: salesFor("LIBRA", 6, 10)})
	_, err := planner.Plan(internal.PlanningRequest{Product: "VELA PALITO"})
	if !errors.Is(err, ErrNoProductData) {
		t.Fatalf("err = %v, want ErrNoProductData", err)
	}
}

func TestPlannerRejectsOutOfBoundsAdjustment(t *testing.T) {
	planner := NewPlanner(testConfig(t), fakeSource{records: salesFor("LIBRA", 6, 10)})
	_, err := planner.Plan(internal.PlanningRequest{Product: "LIBRA", AdjustPercent: 80})
	if err == nil {
		t.Fatal("want error for adjustment outside bounds")
	}
}

func TestPlannerProducts(t *testing.T) {
	records := append(salesFor("LIBRA", 2, 10), salesFor("15X5", 2, 5)...)
	planner := NewPlanner(testConfig(t), fakeSource{records: records})
	products, err := planner.Products()
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 2 || products[0] != "15X5" || products[1] != "LIBRA" {
		t.Fatalf("products = %v", products)
	}
}
