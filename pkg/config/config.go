package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		IngestTopic  string   `yaml:"ingest_topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
		Consumer struct {
			GroupID  string `yaml:"group_id"`
			MinBytes int    `yaml:"min_bytes"`
			MaxBytes int    `yaml:"max_bytes"`
		} `yaml:"consumer"`
	} `yaml:"kafka"`
	History struct {
		Provider   string        `yaml:"provider"` // synthetic or remote
		RemoteURL  string        `yaml:"remote_url"`
		Timeout    time.Duration `yaml:"timeout"`
		Baseline   float64       `yaml:"baseline"`
		Trend      string        `yaml:"trend"` // up, down, flat
		Volatility float64       `yaml:"volatility"`
		Months     int           `yaml:"months"`
		Seed       int64         `yaml:"seed"`
	} `yaml:"history"`
	Forecast struct {
		DefaultHorizon   int   `yaml:"default_horizon"`
		MaxDegree        int   `yaml:"max_degree"`
		SeasonalPeriod   int   `yaml:"seasonal_period"`
		GrowthAdjustment bool  `yaml:"growth_adjustment"`
		NoiseSeed        int64 `yaml:"noise_seed"`
		CacheTTL         struct {
			Forecast time.Duration `yaml:"forecast"`
			History  time.Duration `yaml:"history"`
		} `yaml:"cache_ttl"`
	} `yaml:"forecast"`
	Scheduler struct {
		Enabled  bool     `yaml:"enabled"`
		Cron     string   `yaml:"cron"`
		Metrics  []string `yaml:"metrics"`
		Horizon  int      `yaml:"horizon"`
		Lookback int      `yaml:"lookback"`
	} `yaml:"scheduler"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("HISTORY_PROVIDER"); v != "" {
		c.History.Provider = v
	}
	if v := os.Getenv("HISTORY_REMOTE_URL"); v != "" {
		c.History.RemoteURL = v
	}
	if v := os.Getenv("SCHEDULER_METRICS"); v != "" {
		c.Scheduler.Metrics = strings.Split(v, ",")
	}

	return c, nil
}

// Validate checks if the configuration is valid and fills defaults
// for optional forecast tuning knobs.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.History.Provider == "" {
		c.History.Provider = "synthetic"
	}
	if c.History.Provider != "synthetic" && c.History.Provider != "remote" {
		return fmt.Errorf("history.provider must be 'synthetic' or 'remote', got '%s'", c.History.Provider)
	}
	if c.History.Provider == "remote" && c.History.RemoteURL == "" {
		return fmt.Errorf("history.remote_url is required for remote provider")
	}
	if c.Forecast.DefaultHorizon <= 0 {
		c.Forecast.DefaultHorizon = 6
	}
	if c.Forecast.MaxDegree <= 0 {
		c.Forecast.MaxDegree = 3
	}
	if c.Forecast.SeasonalPeriod <= 0 {
		c.Forecast.SeasonalPeriod = 12
	}
	if c.Scheduler.Enabled && c.Scheduler.Cron == "" {
		return fmt.Errorf("scheduler.cron is required when scheduler is enabled")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	return nil
}
