// Package plan orchestrates one planning request end to end: series lookup,
// forecast, scenario adjustment and the production/material verdict.
package plan

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"siprev/internal"
	"siprev/internal/config"
	"siprev/internal/forecast"
	"siprev/internal/series"
	"siprev/internal/weight"
)

var (
	// ErrNoSeries means ingestion has not produced a canonical series yet.
	ErrNoSeries = errors.New("canonical series not available, run ingestion first")
	// ErrNoProductData means the series holds no rows for the product.
	ErrNoProductData = errors.New("no sales data for selected product")
)

// SeriesSource yields the unified sales table. Both the sqlite store and the
// canonical CSV reader satisfy it.
type SeriesSource interface {
	LoadSales() ([]internal.SalesRecord, error)
}

type Planner struct {
	cfg        config.Config
	source     SeriesSource
	forecaster *forecast.Forecaster
	estimator  *weight.Estimator
}

func NewPlanner(cfg config.Config, source SeriesSource) *Planner {
	return &Planner{
		cfg:        cfg,
		source:     source,
		forecaster: forecast.New(),
		estimator:  weight.NewEstimator(cfg.DefaultWeightKg, cfg.VotiveWeightKg),
	}
}

// Products lists the selectable products, sorted.
func (p *Planner) Products() ([]string, error) {
	records, err := p.load()
	if err != nil {
		return nil, err
	}
	return series.Products(records), nil
}

// Plan runs the full pipeline for one request. The request's adjustment is
// expected to be within the configured bounds already; a value outside them
// is a boundary bug, reported as such.
func (p *Planner) Plan(req internal.PlanningRequest) (internal.PlanningDecision, error) {
	if req.AdjustPercent < p.cfg.AdjustMinPercent || req.AdjustPercent > p.cfg.AdjustMaxPercent {
		return internal.PlanningDecision{}, fmt.Errorf("adjustment %d%% outside bounds [%d, %d]",
			req.AdjustPercent, p.cfg.AdjustMinPercent, p.cfg.AdjustMaxPercent)
	}

	records, err := p.load()
	if err != nil {
		return internal.PlanningDecision{}, err
	}

	points := series.Monthly(records, req.Product)
	if len(points) == 0 {
		return internal.PlanningDecision{}, fmt.Errorf("%w: %s", ErrNoProductData, req.Product)
	}

	result := p.forecaster.Forecast(points)
	finalQty := ApplyScenario(result.Quantity, req.AdjustPercent)
	unitWeight := p.estimator.Estimate(req.Product)

	advice := Advise(finalQty, req.CurrentStock, req.CurrentMaterialKg, unitWeight,
		decimal.NewFromFloat(p.cfg.LowMaterialKg))

	return internal.PlanningDecision{
		Product:            req.Product,
		AlgorithmQuantity:  result.Quantity,
		FinalQuantity:      finalQty,
		Strategy:           result.Strategy,
		HistoricalMean:     forecast.HistoricalMean(points),
		UnitWeightKg:       unitWeight,
		RequiredProduction: advice.RequiredProduction,
		RequiredMaterialKg: advice.RequiredMaterialKg,
		MaterialBalanceKg:  advice.MaterialBalanceKg,
		Recommendation:     advice.Recommendation,
	}, nil
}

func (p *Planner) load() ([]internal.SalesRecord, error) {
	records, err := p.source.LoadSales()
	if err != nil {
		return nil, fmt.Errorf("%w (%v)", ErrNoSeries, err)
	}
	if len(records) == 0 {
		return nil, ErrNoSeries
	}
	return records, nil
}
