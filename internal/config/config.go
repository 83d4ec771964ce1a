// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName     string
	Env             string
	Port            string
	LogLevel        string
	APIURL          string
	BackendTimeout  time.Duration
	DisplayTimezone string
	AMQPURL         string
	AMQPQueue       string
	OTelEnabled     bool
	OTelEndpoint    string
	OTelSampleRatio float64
}

// LoadDotEnv reads .env if present. A missing file is not an error; the
// process falls back to the OS environment.
func LoadDotEnv(files ...string) error {
	return godotenv.Load(files...)
}

// Load builds a Config from the environment.
func Load() (*Config, error) {
	port, err := Port("PORT", "8080")
	if err != nil {
		return nil, err
	}
	timeout, err := Duration("BACKEND_TIMEOUT", 0)
	if err != nil {
		return nil, err
	}
	ratio, err := strconv.ParseFloat(String("OTEL_SAMPLING_RATIO", "1"), 64)
	if err != nil || ratio < 0 || ratio > 1 {
		return nil, fmt.Errorf("OTEL_SAMPLING_RATIO must be between 0 and 1")
	}

	return &Config{
		ServiceName:     String("SERVICE_NAME", "gapgrabber-web"),
		Env:             String("APP_ENV", "production"),
		Port:            port,
		LogLevel:        String("LOG_LEVEL", "info"),
		APIURL:          strings.TrimRight(String("API_URL", "http://localhost:8000"), "/"),
		BackendTimeout:  timeout,
		DisplayTimezone: String("DISPLAY_TIMEZONE", "Europe/London"),
		AMQPURL:         String("AMQP_URL", ""),
		AMQPQueue:       String("AMQP_QUEUE", "workflow_events"),
		OTelEnabled:     Bool("OTEL_ENABLED", false),
		OTelEndpoint:    String("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTelSampleRatio: ratio,
	}, nil
}

// Location resolves DisplayTimezone, falling back to UTC. The zone database
// is embedded, so only an unknown zone name falls back.
func (c *Config) Location() *time.Location {
	loc, err := c.LoadLocation()
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) LoadLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("DISPLAY_TIMEZONE %q: %w", c.DisplayTimezone, err)
	}
	return loc, nil
}

func String(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func Bool(key string, fallback bool) bool {
	switch strings.ToLower(String(key, "")) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}

// Duration accepts Go durations ("30s") or a bare number of seconds.
func Duration(key string, fallback time.Duration) (time.Duration, error) {
	v := String(key, "")
	if v == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%s must be a non-negative duration (got %q)", key, v)
	}
	return d, nil
}

func Port(key, fallback string) (string, error) {
	v := String(key, fallback)
	p, err := strconv.Atoi(v)
	if err != nil || p < 1 || p > 65535 {
		return "", fmt.Errorf("%s must be a valid TCP port (got %q)", key, v)
	}
	return v, nil
}
