package config

import (
	"fmt"
	"time"

	"github.com/MoaeadAlhosami/STREETWEER/internal/kvstore"
	pkgconfig "github.com/MoaeadAlhosami/STREETWEER/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort       int           `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`
	RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"30s"`
	CORSOrigins    []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Cart persistence: memory, redis, postgres or null
	KVBackend string        `env:"KV_BACKEND" envDefault:"memory"`
	CartTTL   time.Duration `env:"CART_TTL" envDefault:"168h"`

	// In-memory session stores idle for longer than this are dropped and
	// rehydrated from the KV backend on the next request.
	SessionIdleTTL time.Duration `env:"CART_SESSION_IDLE_TTL" envDefault:"30m"`

	// Redis
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// PostgreSQL, only used by the postgres KV backend
	PostgresDSN      string `env:"POSTGRES_DSN" envDefault:""`
	PostgresMaxConns int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`

	// Product API. An empty URL serves the bundled fallback catalog.
	ProductAPIURL     string        `env:"PRODUCT_API_URL" envDefault:""`
	ProductAPIToken   string        `env:"PRODUCT_API_TOKEN" envDefault:""`
	ProductAPITimeout time.Duration `env:"PRODUCT_API_TIMEOUT" envDefault:"5s"`

	// Catalog read-through cache in Redis. Zero disables it.
	CatalogCacheTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"0s"`
	CatalogMaxAge   int           `env:"CATALOG_MAX_AGE" envDefault:"60"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Backend returns the parsed KV backend. validate has already rejected
// unknown names.
func (c *Config) Backend() kvstore.Backend {
	b, _ := kvstore.ParseBackend(c.KVBackend)
	return b
}

// CatalogCacheEnabled reports whether product reads go through Redis.
func (c *Config) CatalogCacheEnabled() bool {
	return c.CatalogCacheTTL > 0
}

// NeedsRedis reports whether any component needs a Redis connection.
func (c *Config) NeedsRedis() bool {
	return c.Backend() == kvstore.BackendRedis || c.CatalogCacheEnabled()
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if _, err := kvstore.ParseBackend(c.KVBackend); err != nil {
		return fmt.Errorf("KV_BACKEND: %w", err)
	}
	if c.Backend() == kvstore.BackendPostgres && c.PostgresDSN == "" {
		return fmt.Errorf("POSTGRES_DSN is required when KV_BACKEND=postgres")
	}
	if c.CartTTL < 0 {
		return fmt.Errorf("CART_TTL must not be negative")
	}
	if c.SessionIdleTTL <= c.RequestTimeout {
		return fmt.Errorf("CART_SESSION_IDLE_TTL (%s) must exceed HTTP_REQUEST_TIMEOUT (%s)", c.SessionIdleTTL, c.RequestTimeout)
	}
	if c.CatalogCacheTTL < 0 {
		return fmt.Errorf("CATALOG_CACHE_TTL must not be negative")
	}
	if c.CatalogMaxAge < 0 {
		return fmt.Errorf("CATALOG_MAX_AGE must not be negative")
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED=true")
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	return nil
}
