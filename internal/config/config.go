package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Sheet backends.
const (
	SheetBackendMemory   = "memory"
	SheetBackendPostgres = "postgres"
	SheetBackendSQLite   = "sqlite"
	SheetBackendRedis    = "redis"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Web      WebConfig
	Sheet    SheetConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	SQLite   SQLiteConfig
	Logger   LoggerConfig
	CORS     CORSConfig
	Capture  CaptureConfig
	Kafka    KafkaConfig
}

// AppConfig controls the append endpoint server.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// WebConfig controls the landing page server.
type WebConfig struct {
	Host string
	Port string
}

// SheetConfig selects the tabular store leads are appended to.
type SheetConfig struct {
	Backend string
	ID      string
	Name    string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// SQLiteConfig holds the SQLite database location.
type SQLiteConfig struct {
	Path string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// CORSConfig lists origins allowed to call the append endpoint.
type CORSConfig struct {
	AllowOrigins string
}

// CaptureConfig drives the client capture form.
type CaptureConfig struct {
	EndpointURL           string
	FallbackDelayMillis   int
	RequestTimeoutSeconds int
	ReportFailures        bool
}

// KafkaConfig enables publishing lead events. Empty Brokers disables it.
type KafkaConfig struct {
	Brokers   []string
	Topic     string
	QueueSize int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	backend := strings.ToLower(getEnv("SHEET_BACKEND", SheetBackendMemory))
	switch backend {
	case SheetBackendMemory, SheetBackendPostgres, SheetBackendSQLite, SheetBackendRedis:
	default:
		return nil, fmt.Errorf("invalid SHEET_BACKEND %q", backend)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "launch-watch-leads"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Web: WebConfig{
			Host: getEnv("WEB_HOST", "0.0.0.0"),
			Port: getEnv("WEB_PORT", "8081"),
		},
		Sheet: SheetConfig{
			Backend: backend,
			ID:      getEnv("SHEET_ID", "launch-watch"),
			Name:    getEnv("SHEET_NAME", "Sheet1"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:  os.Getenv("REDIS_PASSWORD"),
			DB:        redisDB,
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "leads"),
		},
		SQLite: SQLiteConfig{
			Path: getEnv("SQLITE_PATH", "data/leads.db"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
		Capture: CaptureConfig{
			EndpointURL:           os.Getenv("CAPTURE_ENDPOINT_URL"),
			FallbackDelayMillis:   getEnvAsInt("CAPTURE_FALLBACK_DELAY_MS", 1500),
			RequestTimeoutSeconds: getEnvAsInt("CAPTURE_REQUEST_TIMEOUT_SECONDS", 10),
			ReportFailures:        getEnvAsBool("CAPTURE_REPORT_FAILURES", false),
		},
		Kafka: KafkaConfig{
			Brokers:   getEnvAsList("KAFKA_BROKERS"),
			Topic:     getEnv("KAFKA_TOPIC", "launch-watch.leads"),
			QueueSize: getEnvAsInt("KAFKA_QUEUE_SIZE", 256),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Addr returns the landing page bind address.
func (w WebConfig) Addr() string {
	return fmt.Sprintf("%s:%s", w.Host, w.Port)
}

// FallbackDelay is how long an unconfigured capture form pretends to submit.
func (c CaptureConfig) FallbackDelay() time.Duration {
	if c.FallbackDelayMillis <= 0 {
		return 0
	}
	return time.Duration(c.FallbackDelayMillis) * time.Millisecond
}

// RequestTimeout bounds a single capture POST. Zero means no explicit bound.
func (c CaptureConfig) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Enabled reports whether lead events are published.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsList(key string) []string {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
