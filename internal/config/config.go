package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Port string `mapstructure:"PORT"`

	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DBDriver          string        `mapstructure:"DB_DRIVER"`
	DBAutoMigrate     bool          `mapstructure:"DB_AUTO_MIGRATE"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME"`

	BodyLimitBytes int64  `mapstructure:"BODY_LIMIT_BYTES"`
	GinMode        string `mapstructure:"GIN_MODE"`

	LogLevel      string `mapstructure:"LOG_LEVEL"`
	LogFormat     string `mapstructure:"LOG_FORMAT"`
	LogFile       string `mapstructure:"LOG_FILE"`
	LogMaxSize    int    `mapstructure:"LOG_MAX_SIZE"`
	LogMaxBackups int    `mapstructure:"LOG_MAX_BACKUPS"`
	LogMaxAge     int    `mapstructure:"LOG_MAX_AGE"`
	LogCompress   bool   `mapstructure:"LOG_COMPRESS"`

	MetricsEnabled bool `mapstructure:"METRICS_ENABLED"`

	OTLPEndpoint    string  `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTelServiceName string  `mapstructure:"OTEL_SERVICE_NAME"`
	OTelSampleRatio float64 `mapstructure:"OTEL_SAMPLE_RATIO"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var AppConfig *Config

var defaults = map[string]any{
	"PORT":                        "3000",
	"DATABASE_URL":                "",
	"DB_DRIVER":                   DriverPostgres,
	"DB_AUTO_MIGRATE":             false,
	"DB_MAX_OPEN_CONNS":           25,
	"DB_MAX_IDLE_CONNS":           5,
	"DB_CONN_MAX_LIFETIME":        30 * time.Minute,
	"BODY_LIMIT_BYTES":            int64(1 << 20),
	"GIN_MODE":                    "release",
	"LOG_LEVEL":                   "info",
	"LOG_FORMAT":                  "text",
	"LOG_FILE":                    "",
	"LOG_MAX_SIZE":                100,
	"LOG_MAX_BACKUPS":             3,
	"LOG_MAX_AGE":                 28,
	"LOG_COMPRESS":                false,
	"METRICS_ENABLED":             true,
	"OTEL_EXPORTER_OTLP_ENDPOINT": "",
	"OTEL_SERVICE_NAME":           "nexus-backend",
	"OTEL_SAMPLE_RATIO":           1.0,
}

// LoadConfig loads the configuration from a .env file and environment variables.
// Environment variables win over the file. The result is also stored in AppConfig.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName(".env")
	v.SetConfigType("env")

	// Unmarshal only sees keys viper knows about, so every key needs a default
	// for AutomaticEnv to pick it up without a .env file.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		slog.Debug(".env file not found, loading from environment variables")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))

	AppConfig = &cfg
	return &cfg, nil
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.BodyLimitBytes <= 0 {
		return fmt.Errorf("BODY_LIMIT_BYTES must be positive, got %d", c.BodyLimitBytes)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
