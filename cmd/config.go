package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	Environment string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// BusinessID is the single business that receives every order. Empty
	// means the demo business.
	BusinessID  string
	BusinessLat float64
	BusinessLng float64
	CustomerLat float64
	CustomerLng float64

	CourierMoveSchedule string

	NotificationQueueSize int
	NotificationWorkers   int
	InboxCapacity         int

	RabbitMQURL      string
	RabbitMQExchange string

	LogLevel     string
	LogFormat    string
	OTLPEndpoint string
	OTelStdout   bool
}

// UsesDatabase reports whether orders are persisted to Postgres. Without a
// DB_HOST everything lives in memory.
func (c Config) UsesDatabase() bool {
	return c.DBHost != ""
}

func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

// LoadConfig reads the process environment after applying an optional .env
// file. Variables already set in the environment win over the file.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	e := &envReader{}
	cfg := Config{
		HTTPPort:    e.str("HTTP_PORT", "8080"),
		Environment: e.str("APP_ENV", "development"),

		DBHost:     e.str("DB_HOST", ""),
		DBPort:     e.str("DB_PORT", "5432"),
		DBUser:     e.str("DB_USER", "postgres"),
		DBPassword: e.str("DB_PASSWORD", ""),
		DBName:     e.str("DB_NAME", "foodorders"),
		DBSslMode:  e.str("DB_SSLMODE", "disable"),

		BusinessID:  e.str("BUSINESS_ID", ""),
		BusinessLat: e.float("BUSINESS_LAT", 19.4326),
		BusinessLng: e.float("BUSINESS_LNG", -99.1332),
		CustomerLat: e.float("CUSTOMER_LAT", 19.4361),
		CustomerLng: e.float("CUSTOMER_LNG", -99.1362),

		CourierMoveSchedule: e.str("COURIER_MOVE_SCHEDULE", "*/2 * * * * *"),

		NotificationQueueSize: e.int("NOTIFICATION_QUEUE_SIZE", 256),
		NotificationWorkers:   e.int("NOTIFICATION_WORKERS", 2),
		InboxCapacity:         e.int("INBOX_CAPACITY", 1000),

		RabbitMQURL:      e.str("RABBITMQ_URL", ""),
		RabbitMQExchange: e.str("RABBITMQ_EXCHANGE", "foodorders.notifications"),

		LogLevel:     e.str("LOG_LEVEL", "info"),
		LogFormat:    e.str("LOG_FORMAT", "json"),
		OTLPEndpoint: e.str("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTelStdout:   e.bool("OTEL_STDOUT", false),
	}
	if len(e.errs) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(e.errs, "; "))
	}
	return cfg, nil
}

type envReader struct {
	errs []string
}

func (e *envReader) str(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func (e *envReader) int(key string, fallback int) int {
	raw := e.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Sprintf("%s: %v", key, err))
		return fallback
	}
	return v
}

func (e *envReader) float(key string, fallback float64) float64 {
	raw := e.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		e.errs = append(e.errs, fmt.Sprintf("%s: %v", key, err))
		return fallback
	}
	return v
}

func (e *envReader) bool(key string, fallback bool) bool {
	raw := e.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Sprintf("%s: %v", key, err))
		return fallback
	}
	return v
}
