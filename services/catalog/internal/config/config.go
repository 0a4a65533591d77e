package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/utafrali/JewelryGo/pkg/config"
	"github.com/utafrali/JewelryGo/pkg/database"
	"github.com/utafrali/JewelryGo/pkg/tracing"
)

// Catalog source kinds.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config holds all configuration for the catalog service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort    int    `env:"CATALOG_HTTP_PORT" envDefault:"8001"`
	CacheMaxAge int    `env:"CATALOG_CACHE_MAX_AGE" envDefault:"60"`
	AdminToken  string `env:"CATALOG_ADMIN_TOKEN"`

	// Catalog data
	Source        string        `env:"CATALOG_SOURCE" envDefault:"file"`
	CatalogPath   string        `env:"CATALOG_PATH" envDefault:"data/catalog.json"`
	PurityPath    string        `env:"PURITY_PATH"`
	Watch         bool          `env:"CATALOG_WATCH" envDefault:"true"`
	WatchDebounce time.Duration `env:"CATALOG_WATCH_DEBOUNCE" envDefault:"500ms"`

	// PostgreSQL, used when Source is "postgres"
	Postgres           database.PostgresConfig
	RunMigrations      bool          `env:"DB_RUN_MIGRATIONS" envDefault:"true"`
	SlowQueryThreshold time.Duration `env:"LOG_SLOW_QUERY" envDefault:"500ms"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	KafkaGroupID string   `env:"CATALOG_KAFKA_GROUP_ID" envDefault:"catalog-service"`

	// Redis backs the idempotency store of the change consumer.
	Redis          database.RedisConfig
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	// Rate limiting, zero RPS disables it
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"50"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"100"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// OpenTelemetry
	Tracing tracing.Config
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load catalog config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.Tracing.ServiceName = "catalog"
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	switch c.Source {
	case SourceFile:
		if c.CatalogPath == "" {
			return fmt.Errorf("CATALOG_PATH is required when CATALOG_SOURCE=file")
		}
	case SourcePostgres:
		if c.Postgres.Host == "" {
			return fmt.Errorf("POSTGRES_HOST is required when CATALOG_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("CATALOG_SOURCE must be one of: file, postgres, got %q", c.Source)
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED=true")
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative, got %f", c.RateLimitRPS)
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1, got %d", c.RateLimitBurst)
	}
	if c.CacheMaxAge < 0 {
		return fmt.Errorf("CATALOG_CACHE_MAX_AGE must not be negative, got %d", c.CacheMaxAge)
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.Tracing.SampleRate)
	}
	return nil
}

// WatchEnabled reports whether file changes should trigger reloads.
func (c *Config) WatchEnabled() bool {
	return c.Watch && c.Source == SourceFile
}
