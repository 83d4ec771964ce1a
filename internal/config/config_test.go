package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/gapgrabber-web/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "API_URL", "BACKEND_TIMEOUT", "DISPLAY_TIMEZONE", "AMQP_URL", "AMQP_QUEUE", "OTEL_ENABLED", "OTEL_SAMPLING_RATIO", "APP_ENV", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:8000", cfg.APIURL)
	assert.Equal(t, time.Duration(0), cfg.BackendTimeout)
	assert.Equal(t, "workflow_events", cfg.AMQPQueue)
	assert.Empty(t, cfg.AMQPURL)
	assert.False(t, cfg.OTelEnabled)
	assert.Equal(t, 1.0, cfg.OTelSampleRatio)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("API_URL", "http://backend:8000/")
	t.Setenv("BACKEND_TIMEOUT", "15")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("DISPLAY_TIMEZONE", "Not/AZone")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://backend:8000", cfg.APIURL)
	assert.Equal(t, 15*time.Second, cfg.BackendTimeout)
	assert.True(t, cfg.OTelEnabled)
	assert.Equal(t, time.UTC, cfg.Location())
	_, err = cfg.LoadLocation()
	assert.Error(t, err)
}

func TestLocationUsesEmbeddedZoneData(t *testing.T) {
	cfg := &config.Config{DisplayTimezone: "Europe/London"}
	loc, err := cfg.LoadLocation()
	require.NoError(t, err)
	assert.Equal(t, "Europe/London", cfg.Location().String())

	summer := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "10:00", summer.In(loc).Format("15:04"))
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("PORT", "70000")
	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("PORT", "8080")
	t.Setenv("BACKEND_TIMEOUT", "soon")
	_, err = config.Load()
	assert.Error(t, err)
}

func TestDurationAcceptsGoSyntax(t *testing.T) {
	t.Setenv("BACKEND_TIMEOUT", "1m30s")
	d, err := config.Duration("BACKEND_TIMEOUT", 0)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GAPGRABBER_TEST_VALUE=from-dotenv\n"), 0o600))
	t.Setenv("GAPGRABBER_TEST_VALUE", "")
	os.Unsetenv("GAPGRABBER_TEST_VALUE")

	require.NoError(t, config.LoadDotEnv(path))
	assert.Equal(t, "from-dotenv", config.String("GAPGRABBER_TEST_VALUE", ""))

	assert.Error(t, config.LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
