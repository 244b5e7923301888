package forecaster

import (
	"math"
	"time"

	"Metricast/internal/domain/models"
	domsvc "Metricast/internal/domain/service"
)

const (
	// confidenceCap bounds the per-point confidence used for the
	// uncertainty band; the result's raw confidence is not clamped.
	confidenceCap = 0.95

	// uncertaintyFactor scales the uncertainty band relative to the
	// predicted value.
	uncertaintyFactor = 0.15

	// valueFloorRatio prevents forecasts from collapsing below a
	// fraction of the last observed value.
	valueFloorRatio = 0.2

	// trendBand is the relative change over the last three observations
	// below which the direction counts as stable.
	trendBand = 0.05
)

// EngineOption configures Engine.
type EngineOption func(*Engine)

// Engine blends a polynomial trend fit with a seasonal index to produce
// future points. It is a pure function of (series, horizon, clock,
// noise) and safe for concurrent use.
type Engine struct {
	fitter     *TrendFitter
	decomposer *SeasonalDecomposer
	clock      Clock
	noise      NoiseSource
	maxDegree  int
	growthAdj  bool
}

// NewEngine creates a forecast engine with an injected clock and noise
// source so that forecasts are reproducible under test.
func NewEngine(clock Clock, noise NoiseSource, opts ...EngineOption) *Engine {
	e := &Engine{
		fitter:     NewTrendFitter(),
		decomposer: NewSeasonalDecomposer(12),
		clock:      clock,
		noise:      noise,
		maxDegree:  3,
		growthAdj:  true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithMaxDegree bounds the polynomial trend degree.
func WithMaxDegree(degree int) EngineOption {
	return func(e *Engine) {
		if degree > 0 {
			e.maxDegree = degree
		}
	}
}

// WithSeasonalPeriod sets the seasonal cycle length.
func WithSeasonalPeriod(period int) EngineOption {
	return func(e *Engine) {
		e.decomposer = NewSeasonalDecomposer(period)
	}
}

// WithGrowthAdjustment toggles the oscillating growth multiplier.
// Disable it for pure statistical output.
func WithGrowthAdjustment(enabled bool) EngineOption {
	return func(e *Engine) {
		e.growthAdj = enabled
	}
}

// Forecast produces exactly horizon future points. Fewer than three
// observations yield a structurally valid zero result, never an error.
func (e *Engine) Forecast(observed []models.ObservedPoint, horizon int) models.ForecastResult {
	n := len(observed)
	if n < 3 || horizon < 1 {
		return models.ForecastResult{
			Points: []models.ForecastPoint{},
			Trend:  models.TrendStable,
		}
	}

	series := make([]float64, n)
	for i, p := range observed {
		series[i] = p.Value
	}

	degree := e.maxDegree
	if n-1 < degree {
		degree = n - 1
	}
	fit := e.fitter.Fit(series, degree)
	decomp := e.decomposer.Decompose(series)

	last := series[n-1]
	confidence := math.Min(fit.GoodnessOfFit, confidenceCap)
	month := int(e.clock.Now().Month()) - 1

	points := make([]models.ForecastPoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		t := n + i - 1

		value := evalPoly(fit.Coefficients, float64(t))
		if decomp.Significant {
			value += decomp.Index[t%e.decomposer.period]
		}

		uncertainty := (1 - confidence) * value * uncertaintyFactor
		if e.growthAdj {
			value *= 1.2 + 0.1*math.Sin(float64(t))
		}
		value += (e.noise.Float64() - 0.5) * uncertainty

		if floor := valueFloorRatio * last; value < floor {
			value = floor
		}

		points = append(points, models.ForecastPoint{
			Period:    time.Month((month+i)%12 + 1).String(),
			Value:     value,
			Predicted: true,
		})
	}

	return models.ForecastResult{
		Points:     points,
		Confidence: fit.GoodnessOfFit,
		Trend:      TrendLabel(series),
		Seasonal:   decomp.Significant,
		Accuracy:   math.Min(fit.GoodnessOfFit*100, 95),
	}
}

// Linear exposes the closed-form degree-1 fit for the simple path.
func (e *Engine) Linear(series []float64) models.LinearResult {
	return e.fitter.LinearFit(series)
}

// TrendLabel compares the first and last of the most recent three
// values: more than 5% above → up, more than 5% below → down, else
// stable.
func TrendLabel(series []float64) models.Trend {
	n := len(series)
	if n < 3 {
		return models.TrendStable
	}
	first := series[n-3]
	last := series[n-1]
	switch {
	case last > first*(1+trendBand):
		return models.TrendUp
	case last < first*(1-trendBand):
		return models.TrendDown
	default:
		return models.TrendStable
	}
}

var _ domsvc.Forecaster = (*Engine)(nil)
