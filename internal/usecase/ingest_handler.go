package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"Metricast/internal/domain/models"
	domrepo "Metricast/internal/domain/repository"
	applogger "Metricast/pkg/logger"
)

// ObservationIngestHandler consumes observation events from Kafka and
// writes them to the metric store. Implements kafka.MessageHandler.
type ObservationIngestHandler struct {
	topic  string
	store  domrepo.MetricStore
	logger *applogger.Logger
}

func NewObservationIngestHandler(topic string, store domrepo.MetricStore, logger *applogger.Logger) *ObservationIngestHandler {
	return &ObservationIngestHandler{topic: topic, store: store, logger: logger}
}

func (h *ObservationIngestHandler) Topic() string { return h.topic }

// Handle accepts either a single observation object or a batch array.
func (h *ObservationIngestHandler) Handle(ctx context.Context, value []byte) error {
	var batch []models.Observation
	if err := json.Unmarshal(value, &batch); err != nil {
		var single models.Observation
		if err := json.Unmarshal(value, &single); err != nil {
			return fmt.Errorf("decode observation event: %w", err)
		}
		batch = []models.Observation{single}
	}

	valid := batch[:0]
	for _, o := range batch {
		if o.Metric == "" || o.Month.IsZero() {
			h.logger.Warn("skipping malformed observation",
				applogger.String("metric", o.Metric),
			)
			continue
		}
		valid = append(valid, o)
	}
	if len(valid) == 0 {
		return nil
	}

	if err := h.store.InsertObservations(ctx, valid); err != nil {
		return fmt.Errorf("ingest observations: %w", err)
	}

	h.logger.Info("observations ingested",
		applogger.String("topic", h.topic),
		applogger.Int("count", len(valid)),
	)
	return nil
}
