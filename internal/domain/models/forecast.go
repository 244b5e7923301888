package models

import "time"

// Trend is the qualitative direction label attached to a forecast.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// ObservedPoint is a single recorded value of a monthly metric.
type ObservedPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// ForecastPoint is a predicted future value. Produced only by the
// forecast engine and never mutated after creation.
type ForecastPoint struct {
	Period    string  `json:"period"`
	Value     float64 `json:"value"`
	Predicted bool    `json:"predicted"`
}

// FitResult holds polynomial fit coefficients, ordered so that
// Coefficients[k] multiplies time^k. GoodnessOfFit is R²: 1 for a
// perfect fit, negative for fits worse than the mean baseline.
type FitResult struct {
	Coefficients  []float64 `json:"coefficients"`
	GoodnessOfFit float64   `json:"goodness_of_fit"`
}

// LinearResult is the closed-form degree-1 fit.
type LinearResult struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	R2        float64 `json:"r2"`
}

// Decomposition is the output of seasonal decomposition. Index holds one
// averaged detrended offset per position in the seasonal cycle; Seasonal
// is the index tiled to the full series length.
type Decomposition struct {
	Seasonal    []float64 `json:"seasonal"`
	Trend       []float64 `json:"trend"`
	Index       []float64 `json:"index"`
	Significant bool      `json:"significant"`
}

// ForecastResult is the complete forecast output. Confidence is the raw
// goodness of fit (unclamped, may be negative); Accuracy is capped at 95.
type ForecastResult struct {
	Points     []ForecastPoint `json:"points"`
	Confidence float64         `json:"confidence"`
	Trend      Trend           `json:"trend"`
	Seasonal   bool            `json:"seasonal"`
	Accuracy   float64         `json:"accuracy"`
}

// Observation is a stored metric reading keyed by calendar month.
type Observation struct {
	Metric string    `json:"metric"`
	Month  time.Time `json:"month"`
	Value  float64   `json:"value"`
}

// Point converts the observation to the engine's input shape.
func (o Observation) Point() ObservedPoint {
	return ObservedPoint{Period: o.Month.Month().String(), Value: o.Value}
}

// ForecastEvent is the record published after a store-backed forecast run.
type ForecastEvent struct {
	Metric      string         `json:"metric"`
	Horizon     int            `json:"horizon"`
	GeneratedAt time.Time      `json:"generated_at"`
	Result      ForecastResult `json:"result"`
}

// TrendReport is the simple linear-fit view of a metric.
type TrendReport struct {
	Metric    string  `json:"metric"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	R2        float64 `json:"r2"`
	Trend     Trend   `json:"trend"`
}
