package usecase

import (
	"context"
	"testing"
	"time"

	applogger "Metricast/pkg/logger"
)

func testIngestHandler(t *testing.T, store *fakeStore) *ObservationIngestHandler {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewObservationIngestHandler("metricast.observations", store, l)
}

func TestIngestSingleObservation(t *testing.T) {
	store := newFakeStore()
	h := testIngestHandler(t, store)

	payload := []byte(`{"metric":"revenue","month":"2025-03-01T00:00:00Z","value":1234.5}`)
	if err := h.Handle(context.Background(), payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	obs := store.byMetric["revenue"]
	if len(obs) != 1 {
		t.Fatalf("expected one observation, got %d", len(obs))
	}
	if obs[0].Value != 1234.5 {
		t.Fatalf("unexpected value %v", obs[0].Value)
	}
	want := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !obs[0].Month.Equal(want) {
		t.Fatalf("unexpected month %v", obs[0].Month)
	}
}

func TestIngestBatch(t *testing.T) {
	store := newFakeStore()
	h := testIngestHandler(t, store)

	payload := []byte(`[
		{"metric":"orders","month":"2025-01-01T00:00:00Z","value":10},
		{"metric":"orders","month":"2025-02-01T00:00:00Z","value":20}
	]`)
	if err := h.Handle(context.Background(), payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.byMetric["orders"]) != 2 {
		t.Fatalf("expected two observations, got %d", len(store.byMetric["orders"]))
	}
}

func TestIngestSkipsMalformedEntries(t *testing.T) {
	store := newFakeStore()
	h := testIngestHandler(t, store)

	payload := []byte(`[
		{"metric":"","month":"2025-01-01T00:00:00Z","value":10},
		{"metric":"orders","month":"2025-02-01T00:00:00Z","value":20}
	]`)
	if err := h.Handle(context.Background(), payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.byMetric["orders"]) != 1 {
		t.Fatalf("expected malformed entry skipped, got %d", len(store.byMetric["orders"]))
	}
}

func TestIngestRejectsGarbage(t *testing.T) {
	store := newFakeStore()
	h := testIngestHandler(t, store)

	if err := h.Handle(context.Background(), []byte(`not json`)); err == nil {
		t.Fatalf("expected decode error")
	}
	if h.Topic() != "metricast.observations" {
		t.Fatalf("unexpected topic %s", h.Topic())
	}
}
