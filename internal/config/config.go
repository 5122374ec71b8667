package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// Per-source timeouts outside this band either give up on slow upstreams
	// too early or let one source eat most of a run's budget.
	minSourceTimeout = 5 * time.Second
	maxSourceTimeout = 20 * time.Second
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	AggregationInterval  time.Duration
	RunTimeout           time.Duration
	SourceTimeout        time.Duration
	MaxConcurrentFetches int

	// Source credentials and endpoints. Empty credentials disable the
	// corresponding source.
	IODABaseURL           string
	CloudflareAPIToken    string
	ElectricityMapsAPIKey string
	WattTimeUsername      string
	WattTimePassword      string
	ViewsBaseURL          string

	// Kafka snapshot publishing configuration.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaEnabled bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	interval, err := parseDuration("AGGREGATION_INTERVAL", "5m")
	if err != nil {
		return nil, err
	}
	runTimeout, err := parseDuration("RUN_TIMEOUT", "60s")
	if err != nil {
		return nil, err
	}
	sourceTimeout, err := parseDuration("SOURCE_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	if sourceTimeout < minSourceTimeout || sourceTimeout > maxSourceTimeout {
		return nil, fmt.Errorf("SOURCE_TIMEOUT must be between %s and %s", minSourceTimeout, maxSourceTimeout)
	}

	maxFetches, err := parsePositiveInt("MAX_CONCURRENT_FETCHES", 4)
	if err != nil {
		return nil, err
	}

	kafkaEnabled := false
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		AggregationInterval:  interval,
		RunTimeout:           runTimeout,
		SourceTimeout:        sourceTimeout,
		MaxConcurrentFetches: maxFetches,

		IODABaseURL:           os.Getenv("IODA_BASE_URL"),
		CloudflareAPIToken:    os.Getenv("CLOUDFLARE_API_TOKEN"),
		ElectricityMapsAPIKey: os.Getenv("ELECTRICITY_MAPS_API_KEY"),
		WattTimeUsername:      os.Getenv("WATTTIME_USERNAME"),
		WattTimePassword:      os.Getenv("WATTTIME_PASSWORD"),
		ViewsBaseURL:          os.Getenv("VIEWS_BASE_URL"),

		KafkaBrokers: parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   envOrDefault("KAFKA_TOPIC", "risk-snapshots"),
		KafkaEnabled: kafkaEnabled,
	}

	if runTimeout <= sourceTimeout {
		return nil, errors.New("RUN_TIMEOUT must exceed SOURCE_TIMEOUT")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is empty")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

func parseBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
