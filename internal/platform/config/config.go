package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName     string
	HTTPPort        string
	PostgresDSN     string
	KafkaBrokers    []string
	JWTSecret       string
	CORSOrigins     []string
	DefaultCurrency string

	OutboxPollInterval time.Duration

	EnableLedgerOutboxRelay bool
	EnablePollOutboxRelay   bool
}

func Load() (Config, error) {
	// A local .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "caravan"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	brokers := splitList(os.Getenv("KAFKA_BROKERS"))
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}

	origins := splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	currency := strings.TrimSpace(os.Getenv("DEFAULT_CURRENCY"))
	if currency == "" {
		currency = "USD"
	}

	interval := 2 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OUTBOX_POLL_INTERVAL")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			interval = parsed
		}
	}

	return Config{
		ServiceName:     service,
		HTTPPort:        port,
		PostgresDSN:     os.Getenv("POSTGRES_DSN"),
		KafkaBrokers:    brokers,
		JWTSecret:       os.Getenv("JWT_SECRET"),
		CORSOrigins:     origins,
		DefaultCurrency: currency,

		OutboxPollInterval: interval,

		EnableLedgerOutboxRelay: envBool("ENABLE_LEDGER_OUTBOX_RELAY", true),
		EnablePollOutboxRelay:   envBool("ENABLE_POLL_OUTBOX_RELAY", true),
	}, nil
}

func splitList(raw string) []string {
	var items []string
	for _, value := range strings.Split(raw, ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
