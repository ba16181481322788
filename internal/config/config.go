// Package config centralises configuration parsing for the workout binaries.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures runtime configuration values.
type Config struct {
	HTTPAddress     string
	MetricsAddress  string
	KafkaBrokers    []string
	ConsumerGroupID string
	SensorTopic     string
	SummaryTopic    string
	JWTSecret       string
	JWTIssuer       string
	LogLevel        string
	LogFormat       string
	FailFast        bool          // Stop a batch at the first rejected reading.
	ShutdownTimeout time.Duration // Grace period for HTTP servers on SIGTERM.
	RetryInitial    time.Duration // First wait before re-handling a failed message.
	RetryMax        time.Duration // Cap on the wait between handler retries.
}

// Load reads environment variables into Config, applying defaults for local dev.
func Load() Config {
	cfg := Config{
		HTTPAddress:     getEnv("HTTP_ADDRESS", ":8080"),
		MetricsAddress:  getEnv("METRICS_ADDRESS", ":9102"),
		ConsumerGroupID: getEnv("CONSUMER_GROUP_ID", "workout-summarizer"),
		SensorTopic:     getEnv("SENSOR_TOPIC", "training_packages"),
		SummaryTopic:    getEnv("SUMMARY_TOPIC", "training_summaries"),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTIssuer:       getEnv("JWT_ISSUER", "i5e.identity"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		FailFast:        getBoolEnv("FAIL_FAST", false),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 15*time.Second),
		RetryInitial:    getDurationEnv("HANDLER_RETRY_INITIAL", 200*time.Millisecond),
		RetryMax:        getDurationEnv("HANDLER_RETRY_MAX", 30*time.Second),
	}

	brokers := getEnv("KAFKA_BROKERS", "kafka:9092")
	cfg.KafkaBrokers = splitAndTrim(brokers)
	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
