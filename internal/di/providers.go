package di

import (
	"context"
	"fmt"
	"time"

	"Metricast/internal/domain/repository"
	domsvc "Metricast/internal/domain/service"
	"Metricast/internal/handler/api"
	internalrepo "Metricast/internal/repository"
	"Metricast/internal/service/history"
	"Metricast/internal/services/forecaster"
	"Metricast/internal/usecase"
	pkgcache "Metricast/pkg/cache"
	pkgch "Metricast/pkg/clickhouse"
	"Metricast/pkg/config"
	pkgkafka "Metricast/pkg/kafka"
	applogger "Metricast/pkg/logger"
	"Metricast/pkg/metrics"
	"Metricast/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideClickHouseClient creates a ClickHouse client and ensures the
// observations schema exists.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := cfg.ClickHouse.Database
	if db == "" {
		db = "metricast"
	}
	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS " + db,
		"CREATE TABLE IF NOT EXISTS " + db + ".observations (metric String, month DateTime, value Float64) ENGINE=ReplacingMergeTree ORDER BY (metric, month)",
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideMetricStore creates the ClickHouse observation store.
func ProvideMetricStore(chClient *pkgch.Client, cfg *config.Config, l *applogger.Logger) repository.MetricStore {
	db := cfg.ClickHouse.Database
	if db == "" {
		db = "metricast"
	}
	store := internalrepo.NewCHMetricStore(chClient, db+".observations")
	store.SetLogger(l)
	return store
}

// ProvideCache creates the Redis cache. Returns nil when Redis is
// disabled; the use case treats a nil cache as cache-off.
func ProvideCache(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}
	return pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(cfg.Redis.Host),
		pkgcache.WithRedisPort(cfg.Redis.Port),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
	)
}

// ProvideForecastPublisher creates the Kafka forecast publisher, or nil
// when Kafka is disabled.
func ProvideForecastPublisher(cfg *config.Config) (repository.Publisher, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaForecastPublisher(producer, cfg.Kafka.Topic), nil
}

// ProvideKafkaConsumer creates the observation ingest consumer, or nil
// when Kafka ingest is not configured.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled || cfg.Kafka.IngestTopic == "" {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideIngestHandler registers the handler for the observation topic.
func ProvideIngestHandler(store repository.MetricStore, cfg *config.Config, l *applogger.Logger) *usecase.ObservationIngestHandler {
	return usecase.NewObservationIngestHandler(cfg.Kafka.IngestTopic, store, l)
}

// ProvideHistoryProvider selects the configured history source.
func ProvideHistoryProvider(cfg *config.Config) domsvc.HistoryProvider {
	if cfg.History.Provider == "remote" {
		return history.NewRemoteProvider(cfg.History.RemoteURL, cfg.History.Timeout)
	}
	return history.NewSyntheticProvider(
		cfg.History.Baseline,
		cfg.History.Trend,
		cfg.History.Volatility,
		cfg.History.Seed,
	)
}

// ProvideEngine creates the forecast engine.
func ProvideEngine(cfg *config.Config) domsvc.Forecaster {
	return forecaster.NewEngine(
		forecaster.SystemClock{},
		forecaster.NewRandNoise(cfg.Forecast.NoiseSeed),
		forecaster.WithMaxDegree(cfg.Forecast.MaxDegree),
		forecaster.WithSeasonalPeriod(cfg.Forecast.SeasonalPeriod),
		forecaster.WithGrowthAdjustment(cfg.Forecast.GrowthAdjustment),
	)
}

// ProvideForecastHub creates the WebSocket broadcast hub.
func ProvideForecastHub(l *applogger.Logger) *api.ForecastHub {
	return api.NewForecastHub(l)
}

// ProvideForecastRunner creates the forecasting use case.
func ProvideForecastRunner(
	store repository.MetricStore,
	hist domsvc.HistoryProvider,
	engine domsvc.Forecaster,
	cache pkgcache.Service,
	pub repository.Publisher,
	hub *api.ForecastHub,
	rec repository.Metrics,
	cfg *config.Config,
	l *applogger.Logger,
) *usecase.ForecastRunner {
	runner := usecase.NewForecastRunner(store, hist, engine, rec, l)
	if cache != nil {
		runner.WithCache(cache, cfg.Forecast.CacheTTL.Forecast)
	}
	if pub != nil {
		runner.WithPublisher(pub)
	}
	runner.WithBroadcaster(hub)
	return runner
}

// ProvideScheduler creates the cron forecast scheduler, or nil when
// disabled.
func ProvideScheduler(runner *usecase.ForecastRunner, cfg *config.Config, l *applogger.Logger) *usecase.ForecastScheduler {
	if !cfg.Scheduler.Enabled {
		return nil
	}
	return usecase.NewForecastScheduler(
		runner,
		l,
		cfg.Scheduler.Cron,
		cfg.Scheduler.Metrics,
		cfg.Scheduler.Horizon,
		cfg.Scheduler.Lookback,
	)
}

// ProvideForecastHandler creates the HTTP handler.
func ProvideForecastHandler(l *applogger.Logger, runner *usecase.ForecastRunner) *api.ForecastEchoHandler {
	return api.NewForecastEchoHandler(l, runner)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler *api.ForecastEchoHandler,
	hub *api.ForecastHub,
	consumer *pkgkafka.Consumer,
	ingest *usecase.ObservationIngestHandler,
	scheduler *usecase.ForecastScheduler,
	chClient *pkgch.Client,
	cache pkgcache.Service,
	pub repository.Publisher,
) *server.App {
	return server.New(cfg, l, handler, hub, consumer, ingest, scheduler, chClient, cache, pub)
}
