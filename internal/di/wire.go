//go:build wireinject
// +build wireinject

package di

import (
	"Metricast/pkg/config"
	"Metricast/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideCache,
		ProvideKafkaConsumer,

		// Repositories
		ProvideMetricStore,
		ProvideForecastPublisher,

		// Forecasting core
		ProvideEngine,
		ProvideHistoryProvider,

		// Use cases
		ProvideForecastRunner,
		ProvideIngestHandler,
		ProvideScheduler,

		// Transport
		ProvideForecastHandler,
		ProvideForecastHub,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
