package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SHEET_BACKEND", "")
	t.Setenv("CAPTURE_ENDPOINT_URL", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SheetBackendMemory, cfg.Sheet.Backend)
	assert.Equal(t, "Sheet1", cfg.Sheet.Name)
	assert.Equal(t, "*", cfg.CORS.AllowOrigins)
	assert.Equal(t, 1500*time.Millisecond, cfg.Capture.FallbackDelay())
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("SHEET_BACKEND", "excel")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadParsesBrokerList(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092, ,k2:9092")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
}

func TestDurationsDisabledWhenNonPositive(t *testing.T) {
	assert.Zero(t, AppConfig{RequestTimeoutSeconds: 0}.RequestTimeout())
	assert.Zero(t, CaptureConfig{FallbackDelayMillis: -1}.FallbackDelay())
	assert.Zero(t, CaptureConfig{RequestTimeoutSeconds: 0}.RequestTimeout())
}
