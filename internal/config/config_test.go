package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"HTTP_ADDR", "SIMULATED_LATENCY", "STORE_DRIVER",
	"DB_HOST", "DB_PORT", "DB_NAME",
	"REDIS_ENABLED", "REDIS_ADDR", "REDIS_DB",
	"MQTT_ENABLED", "MQTT_BROKER", "MQTT_QOS",
	"LOG_LEVEL", "LOG_FORMAT",
	"PAYMENT_GATEWAY_URL", "PAYMENT_AUTO_CONFIRM",
	"REMINDER_ENABLED", "REMINDER_SCHEDULE", "SESSION_TTL",
}

// clearEnv blanks every key for the test; getEnv treats empty as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := fromEnv()

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Zero(t, cfg.HTTP.SimulatedLatency)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, "digiplot", cfg.Database.Database)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.False(t, cfg.RedisEnabled)
	assert.False(t, cfg.MQTTEnabled)
	assert.Equal(t, byte(1), cfg.MQTT.QoS)
	assert.True(t, cfg.Payment.AutoConfirm)
	assert.False(t, cfg.Reminder.Enabled)
	assert.Equal(t, "0 9 25 * *", cfg.Reminder.Schedule)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SIMULATED_LATENCY", "800")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("MQTT_QOS", "7")
	t.Setenv("PAYMENT_AUTO_CONFIRM", "false")
	t.Setenv("SESSION_TTL", "90m")

	cfg := fromEnv()
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 800*time.Millisecond, cfg.HTTP.SimulatedLatency)
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Contains(t, cfg.Database.GetDSN(), "host=db.internal port=6543")
	assert.True(t, cfg.RedisEnabled)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, byte(1), cfg.MQTT.QoS, "out of range QoS is ignored")
	assert.False(t, cfg.Payment.AutoConfirm)
	assert.Equal(t, 90*time.Minute, cfg.Session.TTL)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"0", 0},
		{"250", 250 * time.Millisecond},
		{"1.5s", 1500 * time.Millisecond},
		{"-1s", time.Second},
		{"soon", time.Second},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseDuration(tt.in, time.Second), tt.in)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HTTP_ADDR=:7070\nLOG_LEVEL=debug\n"), 0o600))

	// godotenv does not override variables that are already set, so the
	// blanked keys from clearEnv must be removed first.
	require.NoError(t, os.Unsetenv("HTTP_ADDR"))
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.HTTP.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
