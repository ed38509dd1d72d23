package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	commoncfg "digiplot/common/config"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config is the digiplot service configuration, read from the environment.
type Config struct {
	HTTP struct {
		Addr             string
		SimulatedLatency time.Duration
	}
	// StoreDriver is memory (demo, seeded on start) or postgres.
	StoreDriver string
	Database    commoncfg.DatabaseConfig

	RedisEnabled bool
	Redis        commoncfg.RedisConfig
	// NotificationStream is the Redis stream notifications are appended to.
	NotificationStream string

	MQTTEnabled bool
	MQTT        commoncfg.MQTTConfig

	Log struct {
		Level  string
		Format string
	}

	Payment  PaymentConfig
	Reminder ReminderConfig
	Session  struct {
		TTL time.Duration
	}
}

type PaymentConfig struct {
	GatewayURL  string // empty = no external gateway
	CallbackURL string
	AutoConfirm bool
}

type ReminderConfig struct {
	Enabled  bool
	Schedule string // 5-field cron
}

// Load reads .env (if present) and then the process environment. Variables
// already set in the environment win over .env.
func Load() *Config {
	_ = godotenv.Load()
	return fromEnv()
}

// LoadFile is Load with an explicit .env path. A missing file is an error.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil {
		return nil, err
	}
	return fromEnv(), nil
}

func fromEnv() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")
	cfg.HTTP.SimulatedLatency = parseDuration(getEnv("SIMULATED_LATENCY", "0"), 0)

	cfg.StoreDriver = strings.ToLower(getEnv("STORE_DRIVER", StoreMemory))
	cfg.Database = commoncfg.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "postgres",
		Database: "digiplot",
		SSLMode:  "disable",
		MaxConns: 10,
		MaxIdle:  5,
	}
	cfg.Database.LoadFromEnv("DB")

	cfg.RedisEnabled = parseBool(getEnv("REDIS_ENABLED", "false"))
	cfg.Redis = commoncfg.RedisConfig{Addr: "localhost:6379"}
	cfg.Redis.LoadFromEnv("REDIS")
	cfg.NotificationStream = getEnv("REDIS_NOTIFICATION_STREAM", "digiplot:notifications")

	cfg.MQTTEnabled = parseBool(getEnv("MQTT_ENABLED", "false"))
	cfg.MQTT = commoncfg.MQTTConfig{
		Broker:   "tcp://localhost:1883",
		ClientID: "digiplot",
		QoS:      1,
		Topic:    "digiplot/notifications",
	}
	cfg.MQTT.LoadFromEnv("MQTT")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Payment.GatewayURL = getEnv("PAYMENT_GATEWAY_URL", "")
	cfg.Payment.CallbackURL = getEnv("PAYMENT_CALLBACK_URL", "")
	cfg.Payment.AutoConfirm = parseBool(getEnv("PAYMENT_AUTO_CONFIRM", "true"))

	cfg.Reminder.Enabled = parseBool(getEnv("REMINDER_ENABLED", "false"))
	cfg.Reminder.Schedule = getEnv("REMINDER_SCHEDULE", "0 9 25 * *")

	cfg.Session.TTL = parseDuration(getEnv("SESSION_TTL", "24h"), 24*time.Hour)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}

// parseDuration accepts Go durations ("800ms") or plain milliseconds ("800").
func parseDuration(s string, def time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if ms, err := strconv.Atoi(s); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return def
	}
	return d
}
