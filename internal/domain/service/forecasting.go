package service

import (
	"context"

	"Metricast/internal/domain/models"
)

// Forecaster produces future points for an observed series. Pure apart
// from its injected clock and noise source; safe for concurrent use.
type Forecaster interface {
	Forecast(observed []models.ObservedPoint, horizon int) models.ForecastResult
	Linear(series []float64) models.LinearResult
}

// HistoryProvider supplies the observed series for a metric. The
// upstream data source is external to the forecasting core; providers
// here stand in for it.
type HistoryProvider interface {
	History(ctx context.Context, metric string, months int) ([]models.Observation, error)
}
