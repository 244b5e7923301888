package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	applogger "Metricast/pkg/logger"
)

// ForecastScheduler re-runs forecasts for a fixed set of metrics on a
// cron schedule, keeping the cache, Kafka topic, and live subscribers
// warm without waiting for API traffic.
type ForecastScheduler struct {
	runner   *ForecastRunner
	logger   *applogger.Logger
	cron     *cron.Cron
	spec     string
	metrics  []string
	horizon  int
	lookback int
}

func NewForecastScheduler(
	runner *ForecastRunner,
	logger *applogger.Logger,
	spec string,
	metrics []string,
	horizon, lookback int,
) *ForecastScheduler {
	if horizon <= 0 {
		horizon = 6
	}
	if lookback <= 0 {
		lookback = 24
	}
	return &ForecastScheduler{
		runner:   runner,
		logger:   logger,
		cron:     cron.New(),
		spec:     spec,
		metrics:  metrics,
		horizon:  horizon,
		lookback: lookback,
	}
}

// Start registers the cron entry and launches the scheduler loop.
func (s *ForecastScheduler) Start() error {
	if len(s.metrics) == 0 {
		s.logger.Warn("forecast scheduler has no metrics configured")
	}
	if _, err := s.cron.AddFunc(s.spec, s.runAll); err != nil {
		return fmt.Errorf("add cron entry %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.logger.Info("forecast scheduler started",
		applogger.String("cron", s.spec),
		applogger.Strings("metrics", s.metrics),
	)
	return nil
}

// Stop halts the cron loop and waits for in-flight runs.
func (s *ForecastScheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop().Done()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *ForecastScheduler) runAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, metric := range s.metrics {
		event, err := s.runner.ForecastMetric(ctx, metric, s.lookback, s.horizon)
		if err != nil {
			s.logger.Error("scheduled forecast failed",
				applogger.String("metric", metric),
				applogger.Error(err),
			)
			continue
		}
		s.logger.Info("scheduled forecast completed",
			applogger.String("metric", metric),
			applogger.String("trend", string(event.Result.Trend)),
			applogger.Float64("confidence", event.Result.Confidence),
		)
	}
}
