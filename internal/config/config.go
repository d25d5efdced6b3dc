// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/light-bringer/storefront-service/internal/app/pricing"
)

// ErrInvalidConfig is returned when an environment value cannot be parsed.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds application configuration.
type Config struct {
	Env      string
	HTTPPort string

	// SpannerDB is optional. Without it the catalog is served from the
	// embedded seed and order placement is disabled.
	SpannerDB string

	// RedisURL is optional. Without it carts live in process memory.
	RedisURL    string
	RedisPrefix string
	CartTTL     time.Duration
	// CartMaxHosted bounds the carts kept in memory with a live subscription.
	CartMaxHosted int

	PricingConfigPath string

	KafkaBrokers    string
	KafkaTopic      string
	RelayInterval   time.Duration
	RelayBatchSize  int64
	RelayAdminPort  string
	CompletedRetain time.Duration
	FailedRetain    time.Duration
	OrderRateLimit  int
	OrderRateWindow time.Duration
	ShutdownTimeout time.Duration

	// CORSOrigins lists the storefront front-ends allowed to call the API.
	CORSOrigins []string
}

// Load reads an optional .env file and then the environment, applying
// defaults to anything unset. Variables already in the environment win
// over the .env file.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	r := reader{getenv: getenv}

	cfg := Config{
		Env:               r.str("APP_ENV", "development"),
		HTTPPort:          r.str("HTTP_PORT", "8080"),
		SpannerDB:         r.str("SPANNER_DATABASE", ""),
		RedisURL:          r.str("REDIS_URL", ""),
		RedisPrefix:       r.str("REDIS_PREFIX", "storefront:cart:"),
		CartTTL:           r.duration("CART_TTL", 30*24*time.Hour),
		CartMaxHosted:     r.integer("CART_MAX_HOSTED", 1024),
		PricingConfigPath: r.str("PRICING_CONFIG", ""),
		KafkaBrokers:      r.str("KAFKA_BROKERS", ""),
		KafkaTopic:        r.str("KAFKA_TOPIC", "storefront.orders"),
		RelayInterval:     r.duration("OUTBOX_RELAY_INTERVAL", 2*time.Second),
		RelayBatchSize:    int64(r.integer("OUTBOX_RELAY_BATCH", 100)),
		RelayAdminPort:    r.str("OUTBOX_RELAY_ADMIN_PORT", "9091"),
		CompletedRetain:   r.duration("OUTBOX_COMPLETED_RETENTION", 30*24*time.Hour),
		FailedRetain:      r.duration("OUTBOX_FAILED_RETENTION", 90*24*time.Hour),
		OrderRateLimit:    r.integer("ORDER_RATE_LIMIT", 10),
		OrderRateWindow:   r.duration("ORDER_RATE_WINDOW", time.Minute),
		ShutdownTimeout:   r.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
		CORSOrigins:       r.list("CORS_ORIGINS", "http://localhost:3000"),
	}
	if len(r.errs) > 0 {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(r.errs...))
	}
	return cfg, nil
}

// Pricing loads the pricing rules from PricingConfigPath, or the defaults
// when no file is configured.
func (c Config) Pricing() (pricing.Config, error) {
	if c.PricingConfigPath == "" {
		return pricing.DefaultConfig(), nil
	}
	data, err := os.ReadFile(c.PricingConfigPath)
	if err != nil {
		return pricing.Config{}, fmt.Errorf("failed to read pricing config: %w", err)
	}
	return pricing.ParseConfig(data)
}

// IsProduction reports whether the service runs with production settings.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

type reader struct {
	getenv func(string) string
	errs   []error
}

func (r *reader) str(key, def string) string {
	if v := strings.TrimSpace(r.getenv(key)); v != "" {
		return v
	}
	return def
}

func (r *reader) list(key, def string) []string {
	var out []string
	for _, v := range strings.Split(r.str(key, def), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(r.getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		r.errs = append(r.errs, fmt.Errorf("%s: %q is not a positive duration", key, v))
		return def
	}
	return d
}

func (r *reader) integer(key string, def int) int {
	v := strings.TrimSpace(r.getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		r.errs = append(r.errs, fmt.Errorf("%s: %q is not a positive integer", key, v))
		return def
	}
	return n
}
