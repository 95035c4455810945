package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	"user-api/internal/utils/platformerrors"
)

// Version is the build version, overridable at link time.
var Version = "1.0.0"

// Engine identifiers accepted in DB_ENGINE.
const (
	EngineSQLite = "sqlite"
	EngineMySQL  = "mysql"
)

// Config holds the environment driven configuration for the service.
//
// Configuration loading order (highest to lowest priority):
// 1. .env file values (main loads them with godotenv.Overload before
//    parsing, so a .env entry wins over a pre-set environment variable)
// 2. Environment variables
// 3. Default values from struct tags
//
// The struct is populated exactly once at startup and passed by reference
// into every component that needs it. It is never mutated afterwards.
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"user-api"`
	Environment     string        `env:"APP_ENV" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	LogLevelConsole string `env:"LOG_LEVEL_CONSOLE" envDefault:"debug"`
	LogLevelFile    string `env:"LOG_LEVEL_FILE" envDefault:"info"`
	LogFile         string `env:"LOG_FILE"`

	DBEngine          string        `env:"DB_ENGINE" envDefault:"sqlite"`
	DBName            string        `env:"DB_NAME" envDefault:"user_api"`
	DBUser            string        `env:"DB_USER"`
	DBPassword        string        `env:"DB_PASSWORD"`
	DBHost            string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort            int           `env:"DB_PORT" envDefault:"3306"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"15"`
	DBConnLifetime    time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	DBConnectAttempts int           `env:"DB_CONNECT_ATTEMPTS" envDefault:"5"`
	DBConnectBackoff  time.Duration `env:"DB_CONNECT_BACKOFF" envDefault:"2s"`

	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	SecretKey      string        `env:"SECRET_KEY"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost,http://localhost:3000,http://localhost:8080"`

	EnableTracing bool   `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint  string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load parses environment variables into Config and validates the result.
// Failures are fatal configuration errors; the caller exits without serving.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, configError("failed to parse environment", err)
	}

	switch cfg.DBEngine {
	case EngineSQLite:
	case EngineMySQL:
		if strings.TrimSpace(cfg.DBUser) == "" {
			return nil, configError(fmt.Sprintf("DB_USER is required when DB_ENGINE is %q", EngineMySQL), nil)
		}
	default:
		return nil, configError(fmt.Sprintf("unsupported DB_ENGINE %q (expected %q or %q)",
			cfg.DBEngine, EngineSQLite, EngineMySQL), nil)
	}

	if strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, configError("SECRET_KEY is required", nil)
	}
	if cfg.DBConnectAttempts < 1 {
		return nil, configError("DB_CONNECT_ATTEMPTS must be at least 1", nil)
	}

	return cfg, nil
}

func configError(message string, err error) error {
	return platformerrors.NewError(context.Background(), platformerrors.LayerCommon,
		platformerrors.ErrorTypeConfig, message, err, "")
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// DSN builds the connection string for the configured engine. SQLite treats
// DB_NAME as a file path; MySQL composes the usual tcp DSN.
func (c *Config) DSN() string {
	if c.DBEngine == EngineSQLite {
		name := c.DBName
		if !strings.HasSuffix(name, ".db") {
			name += ".db"
		}
		return name
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
