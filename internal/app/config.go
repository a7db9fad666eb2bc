package app

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/yungbote/servicehub-backend/internal/data/db"
	"github.com/yungbote/servicehub-backend/internal/observability"
	"github.com/yungbote/servicehub-backend/internal/platform/logger"
	"github.com/yungbote/servicehub-backend/internal/realtime/bus"
)

type Config struct {
	LogMode     string `envconfig:"LOG_MODE" default:"development"`
	Port        string `envconfig:"PORT" default:"8000"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"servicehub"`
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	Version     string `envconfig:"VERSION" default:"dev"`

	DBDriver         string `envconfig:"DB_DRIVER" default:"postgres"`
	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     string `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"postgres"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD"`
	PostgresName     string `envconfig:"POSTGRES_NAME" default:"servicehub"`
	PostgresSSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
	SQLitePath       string `envconfig:"SQLITE_PATH" default:"servicehub.db"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisChannel  string `envconfig:"REDIS_CHANNEL" default:"marketplace.events"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS"`

	OtelEnabled     bool    `envconfig:"OTEL_ENABLED" default:"false"`
	OtelEndpoint    string  `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelInsecure    bool    `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"false"`
	OtelHeaders     string  `envconfig:"OTEL_EXPORTER_OTLP_HEADERS"`
	OtelSampleRatio float64 `envconfig:"OTEL_SAMPLE_RATIO" default:"0.1"`

	MetricsEnabled        bool          `envconfig:"METRICS_ENABLED" default:"false"`
	MetricsScrapeInterval time.Duration `envconfig:"METRICS_SCRAPE_INTERVAL" default:"10s"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

// LoadConfig reads an optional .env file, then decodes the environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode env: %w", err)
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	switch cfg.DBDriver {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}

func (c Config) Addr() string {
	port := strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
	if port == "" {
		port = "8000"
	}
	return ":" + port
}

func (c Config) DB() db.Config {
	return db.Config{
		Driver:     c.DBDriver,
		Host:       c.PostgresHost,
		Port:       c.PostgresPort,
		User:       c.PostgresUser,
		Password:   c.PostgresPassword,
		Name:       c.PostgresName,
		SSLMode:    c.PostgresSSLMode,
		SQLitePath: c.SQLitePath,
	}
}

func (c Config) Redis() bus.RedisConfig {
	return bus.RedisConfig{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
		Channel:  c.RedisChannel,
	}
}

func (c Config) Otel() observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:     c.OtelEnabled,
		ServiceName: c.ServiceName,
		Environment: c.Environment,
		Version:     c.Version,
		Endpoint:    c.OtelEndpoint,
		Insecure:    c.OtelInsecure,
		Headers:     observability.ParseHeaders(c.OtelHeaders),
		SampleRatio: c.OtelSampleRatio,
	}
}

// LogSummary reports the effective config without secrets.
func (c Config) LogSummary(log *logger.Logger) {
	log.Info("config loaded",
		"port", c.Addr(),
		"db_driver", c.DBDriver,
		"redis", c.RedisAddr != "",
		"otel", c.OtelEnabled,
		"metrics", c.MetricsEnabled,
		"environment", c.Environment,
	)
}
