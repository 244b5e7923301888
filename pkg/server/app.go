package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	domrepo "Metricast/internal/domain/repository"
	"Metricast/internal/handler/api"
	"Metricast/internal/usecase"
	pkgcache "Metricast/pkg/cache"
	pkgch "Metricast/pkg/clickhouse"
	"Metricast/pkg/config"
	xhttp "Metricast/pkg/http"
	pkgkafka "Metricast/pkg/kafka"
	applogger "Metricast/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg       *config.Config
	logger    *applogger.Logger
	handler   *api.ForecastEchoHandler
	hub       *api.ForecastHub
	consumer  *pkgkafka.Consumer
	ingest    *usecase.ObservationIngestHandler
	scheduler *usecase.ForecastScheduler
	chClient  *pkgch.Client
	cache     pkgcache.Service
	publisher domrepo.Publisher

	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	handler *api.ForecastEchoHandler,
	hub *api.ForecastHub,
	consumer *pkgkafka.Consumer,
	ingest *usecase.ObservationIngestHandler,
	scheduler *usecase.ForecastScheduler,
	chClient *pkgch.Client,
	cache pkgcache.Service,
	publisher domrepo.Publisher,
) *App {
	return &App{
		cfg:       cfg,
		logger:    logger,
		handler:   handler,
		hub:       hub,
		consumer:  consumer,
		ingest:    ingest,
		scheduler: scheduler,
		chClient:  chClient,
		cache:     cache,
		publisher: publisher,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(a.cfg.Metrics.Path),
	)
	a.hub.RegisterRoutes(a.httpServer.Echo())

	// Start ingest consumer if configured
	if a.consumer != nil && a.ingest != nil {
		a.consumer.RegisterHandler(a.ingest)
		go func() {
			if err := a.consumer.Start(); err != nil {
				a.logger.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		a.logger.Info("kafka consumer started", applogger.String("topic", a.ingest.Topic()))
	}

	// Start scheduler if configured
	if a.scheduler != nil {
		if err := a.scheduler.Start(); err != nil {
			return err
		}
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if a.scheduler != nil {
		if err := a.scheduler.Stop(shutdownCtx); err != nil {
			a.logger.Warn("scheduler stop error", applogger.Error(err))
		}
	}

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	a.hub.Close()

	if a.consumer != nil {
		if err := a.consumer.Stop(shutdownCtx); err != nil {
			a.logger.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("kafka producer close error", applogger.Error(err))
		}
	}

	if a.cache != nil {
		if closer, ok := a.cache.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				a.logger.Warn("cache close error", applogger.Error(err))
			}
		}
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
