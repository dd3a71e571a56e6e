// Package config loads service configuration from an optional YAML file
// with CROSSWATCH_ environment overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/crosswatch-systems/crosswatch/internal/correlation"
)

// Config holds all configuration for the crosswatch service
type Config struct {
	Server    ServerConfig       `mapstructure:"server"`
	Log       LogConfig          `mapstructure:"log"`
	Database  DatabaseConfig     `mapstructure:"database"`
	Redis     RedisConfig        `mapstructure:"redis"`
	NATS      NATSConfig         `mapstructure:"nats"`
	Webhooks  WebhookConfig      `mapstructure:"webhooks"`
	Scheduler SchedulerConfig    `mapstructure:"scheduler"`
	Engine    correlation.Config `mapstructure:"engine"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	APIKey         string        `mapstructure:"api_key"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	RateLimit      int           `mapstructure:"rate_limit"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig holds PostgreSQL configuration. When disabled the service
// uses the in-memory repository.
type DatabaseConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

// PostgresConfig holds PostgreSQL connection settings
type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"sslmode"`
}

// ConnString builds a pgx-compatible connection string.
func (p PostgresConfig) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Database, p.SSLMode)
}

// RedisConfig holds Redis settings for the rate limiter. When disabled the
// limiter falls back to an in-process sliding window.
type RedisConfig struct {
	URL     string `mapstructure:"url"`
	Enabled bool   `mapstructure:"enabled"`
}

// NATSConfig holds message bus settings
type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Enabled bool   `mapstructure:"enabled"`
}

// WebhookConfig holds webhook dispatch settings
type WebhookConfig struct {
	RegistryPath string        `mapstructure:"registry_path"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// SchedulerConfig holds periodic analysis settings
type SchedulerConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8086)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.api_key", "")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.rate_limit", 100)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.user", "crosswatch")
	v.SetDefault("database.postgres.password", "")
	v.SetDefault("database.postgres.database", "crosswatch")
	v.SetDefault("database.postgres.sslmode", "disable")

	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("redis.enabled", false)

	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.enabled", false)

	v.SetDefault("webhooks.registry_path", "")
	v.SetDefault("webhooks.timeout", "10s")

	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.interval", "5m")

	defaults := correlation.DefaultConfig()
	v.SetDefault("engine.temporal_window_hours", defaults.TemporalWindowHours)
	v.SetDefault("engine.min_shared_keywords", defaults.MinSharedKeywords)
	v.SetDefault("engine.spatial_max_distance_km", defaults.SpatialMaxDistanceKm)
	v.SetDefault("engine.thematic_min_events", defaults.ThematicMinEvents)
	v.SetDefault("engine.cascade_min_gap_hours", defaults.CascadeMinGapHours)
	v.SetDefault("engine.cascade_max_gap_hours", defaults.CascadeMaxGapHours)
	v.SetDefault("engine.pattern_min_events", defaults.PatternMinEvents)
	v.SetDefault("engine.pattern_tolerance", defaults.PatternTolerance)
	v.SetDefault("engine.pattern_max_interval_hours", defaults.PatternMaxIntervalHours)
	v.SetDefault("engine.cluster_radius_km", defaults.ClusterRadiusKm)
	v.SetDefault("engine.cluster_min_size", defaults.ClusterMinSize)
	v.SetDefault("engine.max_signals", defaults.MaxSignals)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override file config
	v.SetEnvPrefix("CROSSWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
