package config

import (
	"errors"
	"fmt"
	"time"

	pkgconfig "github.com/utafrali/PrinterCatalog/pkg/config"
	"github.com/utafrali/PrinterCatalog/pkg/database"
	"github.com/utafrali/PrinterCatalog/pkg/kafka"
	"github.com/utafrali/PrinterCatalog/pkg/tracing"
)

// ServiceName identifies the service in logs, metrics, traces and events.
const ServiceName = "printer-catalog"

// Version is set at build time with -ldflags.
var Version = "dev"

// Config holds all configuration for the printer catalog service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"catalog"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"catalog_secret"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"printer_catalog"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Database pool
	DBMaxConns            int32 `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns            int32 `env:"DB_MIN_CONNS" envDefault:"2"`
	DBMaxConnLifetimeMins int   `env:"DB_MAX_CONN_LIFETIME_MINUTES" envDefault:"60"`
	DBMaxConnIdleTimeMins int   `env:"DB_MAX_CONN_IDLE_TIME_MINUTES" envDefault:"30"`

	// Redis list cache
	RedisHost       string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort       int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RedisDB         int    `env:"REDIS_DB" envDefault:"0"`
	CacheEnabled    bool   `env:"CACHE_ENABLED" envDefault:"true"`
	CacheTTLSeconds int    `env:"CACHE_TTL_SECONDS" envDefault:"60"`

	// Kafka
	EventsEnabled bool     `env:"EVENTS_ENABLED" envDefault:"true"`
	KafkaBrokers  []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELInsecure   bool    `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Pprof debug endpoints (IP allowlist in CIDR notation)
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.0/8,::1/128" envSeparator:","`

	// Slow query logging; 0 disables it.
	SlowQueryThresholdMs int `env:"LOG_SLOW_QUERY_MS" envDefault:"500"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Per-client rate limiting; 0 disables it.
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"50"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"100"`
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load catalog config: %w", err)
	}
	return cfg, nil
}

// Validate checks value ranges and required settings. pkgconfig.Load calls
// it after parsing.
func (c *Config) Validate() error {
	var errs []error
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP port: %d", c.HTTPPort))
	}
	if c.PostgresHost == "" {
		errs = append(errs, errors.New("POSTGRES_HOST is required"))
	}
	if c.PostgresPort < 1 || c.PostgresPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid Postgres port: %d", c.PostgresPort))
	}
	if c.PostgresUser == "" {
		errs = append(errs, errors.New("POSTGRES_USER is required"))
	}
	if c.DBMinConns > c.DBMaxConns {
		errs = append(errs, fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns))
	}
	if c.CacheEnabled {
		if c.RedisHost == "" {
			errs = append(errs, errors.New("REDIS_HOST is required when the cache is enabled"))
		}
		if c.CacheTTLSeconds <= 0 {
			errs = append(errs, fmt.Errorf("CACHE_TTL_SECONDS must be positive, got %d", c.CacheTTLSeconds))
		}
	}
	if c.EventsEnabled && len(c.KafkaBrokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS is required when events are enabled"))
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		errs = append(errs, fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate))
	}
	if c.SlowQueryThresholdMs < 0 {
		errs = append(errs, fmt.Errorf("LOG_SLOW_QUERY_MS must not be negative, got %d", c.SlowQueryThresholdMs))
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled, got %d", c.RateLimitBurst))
	}
	return errors.Join(errs...)
}

// Postgres returns the pool configuration.
func (c *Config) Postgres() *database.PostgresConfig {
	return &database.PostgresConfig{
		Host:            c.PostgresHost,
		Port:            c.PostgresPort,
		User:            c.PostgresUser,
		Password:        c.PostgresPass,
		DBName:          c.PostgresDB,
		SSLMode:         c.PostgresSSL,
		MaxConns:        c.DBMaxConns,
		MinConns:        c.DBMinConns,
		MaxConnLifetime: time.Duration(c.DBMaxConnLifetimeMins) * time.Minute,
		MaxConnIdleTime: time.Duration(c.DBMaxConnIdleTimeMins) * time.Minute,
	}
}

// Redis returns the Redis client configuration.
func (c *Config) Redis() database.RedisConfig {
	rc := database.DefaultRedisConfig()
	rc.Host = c.RedisHost
	rc.Port = c.RedisPort
	rc.Password = c.RedisPassword
	rc.DB = c.RedisDB
	return rc
}

// CacheTTL returns the list cache TTL.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// SlowQueryThreshold returns the slow query logging threshold.
func (c *Config) SlowQueryThreshold() time.Duration {
	return time.Duration(c.SlowQueryThresholdMs) * time.Millisecond
}

// Kafka returns the producer configuration.
func (c *Config) Kafka() kafka.ProducerConfig {
	return kafka.DefaultProducerConfig(c.KafkaBrokers)
}

// Tracing returns the OpenTelemetry configuration.
func (c *Config) Tracing() tracing.Config {
	return tracing.Config{
		ServiceName:    ServiceName,
		ServiceVersion: Version,
		Environment:    c.Environment,
		OTLPEndpoint:   c.OTELEndpoint,
		Insecure:       c.OTELInsecure,
		SampleRate:     c.OTELSampleRate,
		Enabled:        c.OTELEnabled,
	}
}
