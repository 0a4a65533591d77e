package config

import (
	"fmt"
	"net/url"
	"time"

	pkgconfig "github.com/utafrali/JewelryGo/pkg/config"
	"github.com/utafrali/JewelryGo/pkg/database"
	"github.com/utafrali/JewelryGo/pkg/tracing"
)

// Payment provider kinds.
const (
	ProviderMock   = "mock"
	ProviderStripe = "stripe"
)

// Config holds all configuration for the cart service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"CART_HTTP_PORT" envDefault:"8003"`

	// Redis
	Redis database.RedisConfig

	// CartTTL is how long an untouched cart or wishlist is kept.
	CartTTL time.Duration `env:"CART_TTL" envDefault:"168h"`

	// Catalog service
	CatalogURL     string        `env:"CATALOG_URL" envDefault:"http://localhost:8001"`
	CatalogTimeout time.Duration `env:"CATALOG_TIMEOUT" envDefault:"5s"`

	// Payment provider
	PaymentProvider    string `env:"PAYMENT_PROVIDER" envDefault:"mock"`
	StripeSecretKey    string `env:"STRIPE_SECRET_KEY"`
	StripeAPIBase      string `env:"STRIPE_API_BASE" envDefault:"https://api.stripe.com"`
	CheckoutSuccessURL string `env:"CHECKOUT_SUCCESS_URL" envDefault:"http://localhost:3000/checkout/success?session_id={CHECKOUT_SESSION_ID}"`
	CheckoutCancelURL  string `env:"CHECKOUT_CANCEL_URL" envDefault:"http://localhost:3000/cart"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Checkout rate limiting per session, zero RPS disables it
	CheckoutRateLimitRPS   float64 `env:"CHECKOUT_RATE_LIMIT_RPS" envDefault:"0.2"`
	CheckoutRateLimitBurst int     `env:"CHECKOUT_RATE_LIMIT_BURST" envDefault:"3"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// OpenTelemetry
	Tracing tracing.Config
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load cart config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.Tracing.ServiceName = "cart"
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.CartTTL < time.Minute {
		return fmt.Errorf("CART_TTL must be at least 1m, got %s", c.CartTTL)
	}
	if u, err := url.Parse(c.CatalogURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("CATALOG_URL must be an absolute URL, got %q", c.CatalogURL)
	}
	switch c.PaymentProvider {
	case ProviderMock:
	case ProviderStripe:
		if c.StripeSecretKey == "" {
			return fmt.Errorf("STRIPE_SECRET_KEY is required when PAYMENT_PROVIDER=stripe")
		}
	default:
		return fmt.Errorf("PAYMENT_PROVIDER must be one of: mock, stripe, got %q", c.PaymentProvider)
	}
	if c.CheckoutSuccessURL == "" || c.CheckoutCancelURL == "" {
		return fmt.Errorf("CHECKOUT_SUCCESS_URL and CHECKOUT_CANCEL_URL are required")
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED=true")
	}
	if c.CheckoutRateLimitRPS < 0 {
		return fmt.Errorf("CHECKOUT_RATE_LIMIT_RPS must not be negative, got %f", c.CheckoutRateLimitRPS)
	}
	if c.CheckoutRateLimitRPS > 0 && c.CheckoutRateLimitBurst < 1 {
		return fmt.Errorf("CHECKOUT_RATE_LIMIT_BURST must be at least 1, got %d", c.CheckoutRateLimitBurst)
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.Tracing.SampleRate)
	}
	return nil
}
