package usecase

import (
	"context"
	"fmt"
	"time"

	"Metricast/internal/domain/models"
	domrepo "Metricast/internal/domain/repository"
	domsvc "Metricast/internal/domain/service"
	"Metricast/internal/services/forecaster"
	pkgcache "Metricast/pkg/cache"
	applogger "Metricast/pkg/logger"
)

// ForecastRunner orchestrates store → engine → cache/publish for a
// metric, and exposes the pure series-in/points-out path for callers
// that bring their own data.
type ForecastRunner struct {
	store    domrepo.MetricStore
	history  domsvc.HistoryProvider
	engine   domsvc.Forecaster
	cache    pkgcache.Service
	pub      domrepo.Publisher
	bcast    domrepo.Broadcaster
	metrics  domrepo.Metrics
	logger   *applogger.Logger
	cacheTTL time.Duration
}

func NewForecastRunner(
	store domrepo.MetricStore,
	history domsvc.HistoryProvider,
	engine domsvc.Forecaster,
	metrics domrepo.Metrics,
	logger *applogger.Logger,
) *ForecastRunner {
	return &ForecastRunner{
		store:    store,
		history:  history,
		engine:   engine,
		metrics:  metrics,
		logger:   logger,
		cacheTTL: 5 * time.Minute,
	}
}

// WithCache enables response caching.
func (r *ForecastRunner) WithCache(c pkgcache.Service, ttl time.Duration) *ForecastRunner {
	r.cache = c
	if ttl > 0 {
		r.cacheTTL = ttl
	}
	return r
}

// WithPublisher enables forecast event publishing.
func (r *ForecastRunner) WithPublisher(p domrepo.Publisher) *ForecastRunner {
	r.pub = p
	return r
}

// WithBroadcaster enables live push of forecast events.
func (r *ForecastRunner) WithBroadcaster(b domrepo.Broadcaster) *ForecastRunner {
	r.bcast = b
	return r
}

// ForecastMetric loads the latest n observations for a metric, runs the
// engine, and fans the result out to cache, Kafka, live subscribers,
// and Prometheus.
func (r *ForecastRunner) ForecastMetric(ctx context.Context, metric string, n, horizon int) (models.ForecastEvent, error) {
	start := time.Now()

	cacheKey := fmt.Sprintf("forecast:%s:%d:%d", metric, n, horizon)
	if r.cache != nil {
		var cached models.ForecastEvent
		if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	observed, err := r.observedSeries(ctx, metric, n)
	if err != nil {
		r.metrics.RecordError("store")
		return models.ForecastEvent{}, err
	}

	result := r.engine.Forecast(observed, horizon)
	event := models.ForecastEvent{
		Metric:      metric,
		Horizon:     horizon,
		GeneratedAt: time.Now().UTC(),
		Result:      result,
	}

	r.metrics.RecordForecast(metric, string(result.Trend))
	r.metrics.RecordConfidence(metric, result.Confidence)
	r.metrics.RecordLatency("forecast", time.Since(start).Seconds())

	if r.cache != nil {
		if err := r.cache.Set(ctx, cacheKey, event, r.cacheTTL); err != nil {
			r.logger.Warn("forecast cache set failed", applogger.Error(err))
		}
	}
	if r.pub != nil {
		if err := r.pub.PublishForecast(ctx, event); err != nil {
			r.metrics.RecordError("publish")
			r.logger.Warn("forecast publish failed",
				applogger.String("metric", metric),
				applogger.Error(err),
			)
		}
	}
	if r.bcast != nil {
		r.bcast.Broadcast(event)
	}

	return event, nil
}

// ForecastSeries runs the engine over caller-supplied points. Pure; no
// store, cache, or publishing involved.
func (r *ForecastRunner) ForecastSeries(points []models.ObservedPoint, horizon int) models.ForecastResult {
	return r.engine.Forecast(points, horizon)
}

// TrendMetric reports the closed-form linear fit and direction label
// for a metric.
func (r *ForecastRunner) TrendMetric(ctx context.Context, metric string, n int) (models.TrendReport, error) {
	observed, err := r.observedSeries(ctx, metric, n)
	if err != nil {
		r.metrics.RecordError("store")
		return models.TrendReport{}, err
	}

	series := make([]float64, len(observed))
	for i, p := range observed {
		series[i] = p.Value
	}

	lr := r.engine.Linear(series)
	return models.TrendReport{
		Metric:    metric,
		Slope:     lr.Slope,
		Intercept: lr.Intercept,
		R2:        lr.R2,
		Trend:     forecaster.TrendLabel(series),
	}, nil
}

// HistoryMetric returns the observed series for a metric, oldest first.
func (r *ForecastRunner) HistoryMetric(ctx context.Context, metric string, n int) ([]models.ObservedPoint, error) {
	return r.observedSeries(ctx, metric, n)
}

// observedSeries reads from the store and falls back to the history
// provider when the store has nothing for the metric, seeding the store
// with whatever the provider returns.
func (r *ForecastRunner) observedSeries(ctx context.Context, metric string, n int) ([]models.ObservedPoint, error) {
	var obs []models.Observation
	var err error

	if r.store != nil {
		obs, err = r.store.LatestObservations(ctx, metric, n)
		if err != nil {
			return nil, err
		}
	}

	if len(obs) == 0 && r.history != nil {
		obs, err = r.history.History(ctx, metric, n)
		if err != nil {
			return nil, fmt.Errorf("history provider: %w", err)
		}
		if r.store != nil && len(obs) > 0 {
			if err := r.store.InsertObservations(ctx, obs); err != nil {
				r.logger.Warn("observation backfill failed",
					applogger.String("metric", metric),
					applogger.Error(err),
				)
			}
		}
	}

	points := make([]models.ObservedPoint, len(obs))
	for i, o := range obs {
		points[i] = o.Point()
	}
	return points, nil
}
