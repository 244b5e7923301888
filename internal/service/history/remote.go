package history

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"Metricast/internal/domain/models"
	domsvc "Metricast/internal/domain/service"
	xhttp "Metricast/pkg/http"
)

// RemoteProvider fetches observed history from an external metrics API.
type RemoteProvider struct {
	baseURL string
	client  *xhttp.Client
}

// NewRemoteProvider creates a provider backed by an HTTP endpoint that
// serves `GET {base}/history?metric=...&months=...`.
func NewRemoteProvider(baseURL string, timeout time.Duration) *RemoteProvider {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RemoteProvider{
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type remoteObservation struct {
	Metric string  `json:"metric"`
	Month  string  `json:"month"`
	Value  float64 `json:"value"`
}

func (p *RemoteProvider) History(ctx context.Context, metric string, months int) ([]models.Observation, error) {
	if p.baseURL == "" {
		return nil, fmt.Errorf("remote history provider not configured")
	}

	var raw []remoteObservation
	err := p.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    p.baseURL + "/history",
		QueryParams: map[string][]string{
			"metric": {metric},
			"months": {strconv.Itoa(months)},
		},
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}

	obs := make([]models.Observation, 0, len(raw))
	for _, r := range raw {
		month, err := time.Parse(time.RFC3339, r.Month)
		if err != nil {
			return nil, fmt.Errorf("parse month %q: %w", r.Month, err)
		}
		obs = append(obs, models.Observation{Metric: metric, Month: month, Value: r.Value})
	}
	return obs, nil
}

var _ domsvc.HistoryProvider = (*RemoteProvider)(nil)
