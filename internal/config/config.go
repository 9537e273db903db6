package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultDataURL is the canonical mirror of the NOAA StormData archive.
const DefaultDataURL = "https://d396qusza40orc.cloudfront.net/repdata%2Fdata%2FStormData.csv.bz2"

// Config holds all service settings, populated from environment variables.
type Config struct {
	DataURL  string
	DataPath string

	TopK       int
	ChartDir   string
	ReportPath string

	HTTPAddr string

	// Kafka publishing is optional; empty brokers disables it.
	KafkaBrokers   []string
	KafkaSinkTopic string

	DownloadTimeout time.Duration
	ShutdownTimeout time.Duration

	LogLevel  string
	LogFormat string
	Progress  bool
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	topK, err := envInt("TOP_K", 10)
	if err != nil {
		return nil, err
	}
	downloadTimeout, err := envDuration("DOWNLOAD_TIMEOUT", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := envDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataURL:  envOrDefault("DATA_URL", DefaultDataURL),
		DataPath: envOrDefault("DATA_PATH", "data/StormData.csv.bz2"),

		TopK:       topK,
		ChartDir:   envOrDefault("CHART_DIR", "charts"),
		ReportPath: envOrDefault("REPORT_PATH", "report.json"),

		HTTPAddr: os.Getenv("HTTP_ADDR"),

		KafkaBrokers:   parseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaSinkTopic: envOrDefault("KAFKA_SINK_TOPIC", "storm-impact-reports"),

		DownloadTimeout: downloadTimeout,
		ShutdownTimeout: shutdownTimeout,

		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "json"),
		Progress:  os.Getenv("PROGRESS") == "true",
	}

	if cfg.DataPath == "" {
		return nil, errors.New("DATA_PATH is required")
	}
	// The ranker itself tolerates K <= 0, but a service configured that way
	// would only ever produce empty reports. Fail fast instead.
	if cfg.TopK < 1 {
		return nil, errors.New("TOP_K must be at least 1")
	}
	if cfg.KafkaEnabled() && cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// KafkaEnabled reports whether report publishing to Kafka is configured.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseBrokers(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
