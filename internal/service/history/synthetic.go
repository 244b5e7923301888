package history

import (
	"context"
	"hash/fnv"
	"math/rand"
	"time"

	"Metricast/internal/domain/models"
	domsvc "Metricast/internal/domain/service"
)

// SyntheticProvider generates plausible monthly history for a metric.
// It stands in for the real upstream data source; the forecasting core
// only ever sees the observation series it returns.
type SyntheticProvider struct {
	baseline   float64
	trend      string // up, down, flat
	volatility float64
	seed       int64
	clock      func() time.Time
}

// NewSyntheticProvider creates a generator with a configurable baseline,
// trend direction, and volatility. The same seed and metric name always
// produce the same series.
func NewSyntheticProvider(baseline float64, trend string, volatility float64, seed int64) *SyntheticProvider {
	if baseline <= 0 {
		baseline = 1000
	}
	if volatility < 0 {
		volatility = 0
	}
	return &SyntheticProvider{
		baseline:   baseline,
		trend:      trend,
		volatility: volatility,
		seed:       seed,
		clock:      time.Now,
	}
}

// WithClock overrides the wall clock used to anchor month timestamps.
func (p *SyntheticProvider) WithClock(now func() time.Time) *SyntheticProvider {
	p.clock = now
	return p
}

// History returns the given number of months ending at the current
// month, oldest first.
func (p *SyntheticProvider) History(ctx context.Context, metric string, months int) ([]models.Observation, error) {
	if months < 1 {
		return []models.Observation{}, nil
	}

	rng := rand.New(rand.NewSource(p.seed + int64(hashMetric(metric))))

	drift := 0.0
	switch p.trend {
	case "up":
		drift = 0.03
	case "down":
		drift = -0.03
	}

	now := p.clock()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	obs := make([]models.Observation, 0, months)
	value := p.baseline
	for i := 0; i < months; i++ {
		value *= 1 + drift + (rng.Float64()-0.5)*p.volatility
		if floor := p.baseline * 0.05; value < floor {
			value = floor
		}
		obs = append(obs, models.Observation{
			Metric: metric,
			Month:  start.AddDate(0, i, 0),
			Value:  value,
		})
	}
	return obs, nil
}

func hashMetric(metric string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(metric))
	return h.Sum32()
}

var _ domsvc.HistoryProvider = (*SyntheticProvider)(nil)
