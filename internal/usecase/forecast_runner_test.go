package usecase

import (
	"context"
	"sort"
	"testing"
	"time"

	"Metricast/internal/domain/models"
	"Metricast/internal/services/forecaster"
	applogger "Metricast/pkg/logger"
)

type fakeStore struct {
	byMetric map[string][]models.Observation
}

func newFakeStore() *fakeStore {
	return &fakeStore{byMetric: make(map[string][]models.Observation)}
}

func (s *fakeStore) InsertObservations(_ context.Context, obs []models.Observation) error {
	for _, o := range obs {
		s.byMetric[o.Metric] = append(s.byMetric[o.Metric], o)
	}
	return nil
}

func (s *fakeStore) LatestObservations(_ context.Context, metric string, n int) ([]models.Observation, error) {
	obs := append([]models.Observation(nil), s.byMetric[metric]...)
	sort.Slice(obs, func(i, j int) bool { return obs[i].Month.Before(obs[j].Month) })
	if len(obs) > n {
		obs = obs[len(obs)-n:]
	}
	return obs, nil
}

func (s *fakeStore) Health(context.Context) error { return nil }

type fakeProvider struct {
	calls int
}

func (p *fakeProvider) History(_ context.Context, metric string, months int) ([]models.Observation, error) {
	p.calls++
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	obs := make([]models.Observation, 0, months)
	for i := 0; i < months; i++ {
		obs = append(obs, models.Observation{
			Metric: metric,
			Month:  start.AddDate(0, i, 0),
			Value:  100 + float64(i)*10,
		})
	}
	return obs, nil
}

type fakeMetrics struct {
	forecasts int
	errors    int
}

func (m *fakeMetrics) RecordForecast(string, string)    { m.forecasts++ }
func (m *fakeMetrics) RecordError(string)               { m.errors++ }
func (m *fakeMetrics) RecordConfidence(string, float64) {}
func (m *fakeMetrics) RecordLatency(string, float64)    {}

func testRunner(t *testing.T, store *fakeStore, provider *fakeProvider, rec *fakeMetrics) *ForecastRunner {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	engine := forecaster.NewEngine(
		forecaster.FixedClock{T: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)},
		forecaster.FixedNoise{V: 0.5},
	)
	return NewForecastRunner(store, provider, engine, rec, l)
}

func TestForecastMetricBackfillsFromProvider(t *testing.T) {
	store := newFakeStore()
	provider := &fakeProvider{}
	rec := &fakeMetrics{}
	runner := testRunner(t, store, provider, rec)

	ctx := context.Background()
	event, err := runner.ForecastMetric(ctx, "revenue", 12, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.calls != 1 {
		t.Fatalf("expected one provider call, got %d", provider.calls)
	}
	if len(store.byMetric["revenue"]) != 12 {
		t.Fatalf("expected backfilled store, got %d observations", len(store.byMetric["revenue"]))
	}
	if len(event.Result.Points) != 6 {
		t.Fatalf("expected 6 forecast points, got %d", len(event.Result.Points))
	}
	if event.Metric != "revenue" || event.Horizon != 6 {
		t.Fatalf("unexpected event envelope %+v", event)
	}
	if rec.forecasts != 1 {
		t.Fatalf("expected one recorded forecast, got %d", rec.forecasts)
	}

	// second call is served from the store
	if _, err := runner.ForecastMetric(ctx, "revenue", 12, 6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("store-backed call must not hit the provider, got %d calls", provider.calls)
	}
}

func TestForecastSeriesIsPure(t *testing.T) {
	store := newFakeStore()
	runner := testRunner(t, store, &fakeProvider{}, &fakeMetrics{})

	points := []models.ObservedPoint{
		{Period: "January", Value: 100},
		{Period: "February", Value: 110},
		{Period: "March", Value: 120},
	}
	res := runner.ForecastSeries(points, 4)

	if len(res.Points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(res.Points))
	}
	if len(store.byMetric) != 0 {
		t.Fatalf("series forecast must not touch the store")
	}
}

func TestTrendMetric(t *testing.T) {
	store := newFakeStore()
	runner := testRunner(t, store, &fakeProvider{}, &fakeMetrics{})

	report, err := runner.TrendMetric(context.Background(), "revenue", 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Metric != "revenue" {
		t.Fatalf("unexpected metric %s", report.Metric)
	}
	// provider series rises 10 per month
	if report.Slope < 9.9 || report.Slope > 10.1 {
		t.Fatalf("unexpected slope %v", report.Slope)
	}
	if report.Trend != models.TrendUp {
		t.Fatalf("expected upward trend, got %v", report.Trend)
	}
}

func TestHistoryMetric(t *testing.T) {
	store := newFakeStore()
	runner := testRunner(t, store, &fakeProvider{}, &fakeMetrics{})

	points, err := runner.HistoryMetric(context.Background(), "orders", 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 6 {
		t.Fatalf("expected 6 points, got %d", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].Value <= points[i-1].Value {
			t.Fatalf("expected ascending provider series at index %d", i)
		}
	}
}
