package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	OTLPEndpoint string

	// StoreURL is the base endpoint of the hosted Postgres REST gateway
	// (Supabase). StoreServiceKey is the privileged service-role key
	// authorizing writes to the orders table.
	StoreURL        string
	StoreServiceKey string
	StoreTimeout    time.Duration

	// WebhookSecret is the shared secret used to verify inbound FeexPay
	// signatures. Empty disables verification entirely.
	WebhookSecret string

	CORSAllowOrigins []string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:          getenv("APP_SERVICE", "feexgate"),
		AppVersion:       getenv("APP_VERSION", "1.0.0"),
		Environment:      getenv("ENVIRONMENT", "development"),
		HTTPAddr:         getenv("HTTP_ADDR", ":8080"),
		OTLPEndpoint:     getenv("OTLP_ENDPOINT", "localhost:4317"),
		StoreURL:         strings.TrimRight(strings.TrimSpace(getenv("SUPABASE_URL", "")), "/"),
		StoreServiceKey:  strings.TrimSpace(getenv("SUPABASE_SERVICE_ROLE_KEY", "")),
		StoreTimeout:     getenvDuration("STORE_TIMEOUT", 10*time.Second),
		WebhookSecret:    strings.TrimSpace(getenv("FEEXPAY_WEBHOOK_SECRET", "")),
		CORSAllowOrigins: splitList(getenv("CORS_ALLOW_ORIGINS", "*")),
	}

	return cfg
}

var (
	ErrMissingStoreURL = errors.New("missing required environment variable: SUPABASE_URL")
	ErrMissingStoreKey = errors.New("missing required environment variable: SUPABASE_SERVICE_ROLE_KEY")
)

// Validate rejects configurations the process cannot serve traffic with.
// The store URL and service key have no usable defaults, so startup fails
// fast instead of accepting webhooks it can never persist.
func (c Config) Validate() error {
	if c.StoreURL == "" {
		return ErrMissingStoreURL
	}
	if _, err := url.ParseRequestURI(c.StoreURL); err != nil {
		return fmt.Errorf("invalid SUPABASE_URL %q: %w", c.StoreURL, err)
	}
	if c.StoreServiceKey == "" {
		return ErrMissingStoreKey
	}
	return nil
}

// SignatureRequired reports whether inbound webhooks must carry a valid
// signature. When false the receiver accepts any request unauthenticated.
func (c Config) SignatureRequired() bool {
	return c.WebhookSecret != ""
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
