package repository

import (
	"context"

	"Metricast/internal/domain/models"
)

// MetricStore persists and retrieves monthly metric observations.
type MetricStore interface {
	InsertObservations(ctx context.Context, obs []models.Observation) error
	// LatestObservations returns up to n observations for a metric in
	// ascending month order.
	LatestObservations(ctx context.Context, metric string, n int) ([]models.Observation, error)
	Health(ctx context.Context) error
}

// Publisher emits forecast events to downstream consumers.
type Publisher interface {
	PublishForecast(ctx context.Context, event models.ForecastEvent) error
	Close() error
}

// Broadcaster pushes forecast events to connected live subscribers.
type Broadcaster interface {
	Broadcast(event models.ForecastEvent)
}

// Metrics records operational measurements.
type Metrics interface {
	RecordForecast(metric, trend string)
	RecordError(kind string)
	RecordConfidence(metric string, confidence float64)
	RecordLatency(op string, seconds float64)
}
