package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFillsForecastDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: test
server:
  port: 8080
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Forecast.DefaultHorizon != 6 {
		t.Fatalf("expected default horizon 6, got %d", cfg.Forecast.DefaultHorizon)
	}
	if cfg.Forecast.MaxDegree != 3 {
		t.Fatalf("expected default max degree 3, got %d", cfg.Forecast.MaxDegree)
	}
	if cfg.Forecast.SeasonalPeriod != 12 {
		t.Fatalf("expected default seasonal period 12, got %d", cfg.Forecast.SeasonalPeriod)
	}
	if cfg.History.Provider != "synthetic" {
		t.Fatalf("expected synthetic provider by default, got %s", cfg.History.Provider)
	}
}

func TestLoadRejectsMissingEnvironment(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for missing environment")
	}
}

func TestLoadRejectsUnknownHistoryProvider(t *testing.T) {
	path := writeConfig(t, `
environment: test
history:
  provider: csv
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown history provider")
	}
}

func TestLoadRequiresRemoteURL(t *testing.T) {
	path := writeConfig(t, `
environment: test
history:
  provider: remote
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for remote provider without url")
	}
}

func TestLoadRequiresCronWhenSchedulerEnabled(t *testing.T) {
	path := writeConfig(t, `
environment: test
scheduler:
  enabled: true
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for enabled scheduler without cron")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
environment: test
history:
  provider: synthetic
`)

	t.Setenv("HISTORY_PROVIDER", "remote")
	t.Setenv("HISTORY_REMOTE_URL", "http://upstream:9000")

	cfg, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.History.Provider != "remote" {
		t.Fatalf("expected env override, got %s", cfg.History.Provider)
	}
	if cfg.History.RemoteURL != "http://upstream:9000" {
		t.Fatalf("expected env override, got %s", cfg.History.RemoteURL)
	}
}
