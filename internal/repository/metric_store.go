package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"Metricast/internal/domain/models"
	domrepo "Metricast/internal/domain/repository"
	pkgch "Metricast/pkg/clickhouse"
	applogger "Metricast/pkg/logger"
)

// CHMetricStore implements MetricStore backed by ClickHouse.
type CHMetricStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

func NewCHMetricStore(ch *pkgch.Client, table string) *CHMetricStore {
	if table == "" {
		table = "metricast.observations"
	}
	return &CHMetricStore{db: ch.DB(), table: table}
}

// SetLogger injects a structured logger.
func (s *CHMetricStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHMetricStore) InsertObservations(ctx context.Context, obs []models.Observation) error {
	if len(obs) == 0 {
		return nil
	}

	values := make([]string, 0, len(obs))
	args := make([]interface{}, 0, len(obs)*3)
	for _, o := range obs {
		if o.Metric == "" || o.Month.IsZero() {
			continue
		}
		values = append(values, "(?, ?, ?)")
		args = append(args, o.Metric, o.Month, o.Value)
	}
	if len(values) == 0 {
		return nil
	}

	q := fmt.Sprintf("INSERT INTO %s (metric, month, value) VALUES %s", s.table, strings.Join(values, ","))
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse insert_observations error",
				applogger.String("table", s.table),
				applogger.Int("rows", len(values)),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("insert observations: %w", err)
	}
	return nil
}

func (s *CHMetricStore) LatestObservations(ctx context.Context, metric string, n int) ([]models.Observation, error) {
	start := time.Now()
	const qtpl = `
        SELECT metric, month, value
        FROM %s
        WHERE metric = ?
        ORDER BY month DESC
        LIMIT ?
    `
	q := fmt.Sprintf(qtpl, s.table)
	rows, err := s.db.QueryContext(ctx, q, metric, n)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse latest_observations query error",
				applogger.String("table", s.table),
				applogger.String("metric", metric),
				applogger.Int("limit", n),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get latest observations: %w", err)
	}
	defer rows.Close()

	tmp := make([]models.Observation, 0, n)
	for rows.Next() {
		var o models.Observation
		if err := rows.Scan(&o.Metric, &o.Month, &o.Value); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse latest_observations scan error",
					applogger.String("table", s.table),
					applogger.String("metric", metric),
					applogger.Error(err),
				)
			}
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		tmp = append(tmp, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	// reverse to ascending month order
	for i, j := 0, len(tmp)-1; i < j; i, j = i+1, j-1 {
		tmp[i], tmp[j] = tmp[j], tmp[i]
	}

	if s.l != nil {
		s.l.Info("clickhouse latest_observations ok",
			applogger.String("table", s.table),
			applogger.String("metric", metric),
			applogger.Int("limit", n),
			applogger.Int("rows", len(tmp)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return tmp, nil
}

func (s *CHMetricStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

var _ domrepo.MetricStore = (*CHMetricStore)(nil)
