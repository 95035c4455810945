package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appconfig "user-api/internal/config"
	"user-api/internal/utils/platformerrors"
)

// SchemaRegistry collects models for auto-migration. Schema packages append
// to it from init.
var SchemaRegistry []interface{}

// RegisterSchemaForAutoMigrate adds models to the migration registry.
func RegisterSchemaForAutoMigrate(models ...interface{}) {
	SchemaRegistry = append(SchemaRegistry, models...)
}

// Config holds database configuration
type Config struct {
	Engine          string
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnectAttempts int
	ConnectBackoff  time.Duration
	LogLevel        gormlogger.LogLevel
}

// FromAppConfig maps the application configuration onto database settings.
func FromAppConfig(cfg *appconfig.Config) Config {
	return Config{
		Engine:          cfg.DBEngine,
		DSN:             cfg.DSN(),
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		ConnectAttempts: cfg.DBConnectAttempts,
		ConnectBackoff:  cfg.DBConnectBackoff,
		LogLevel:        gormlogger.Warn,
	}
}

// Connect opens the configured engine behind a single gorm handle. Networked
// engines may not be reachable yet at process start, so the dial is retried
// a bounded number of times with backoff before failing fatally. Callers
// never branch on the engine after this point.
func Connect(ctx context.Context, cfg Config, log zerolog.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	var db *gorm.DB
	var lastErr error
	backoff := cfg.ConnectBackoff
	if backoff <= 0 {
		backoff = time.Second
	}
	attempts := cfg.ConnectAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		db, lastErr = gorm.Open(dialector, &gorm.Config{
			Logger:         gormlogger.Default.LogMode(cfg.LogLevel),
			TranslateError: true,
		})
		if lastErr == nil {
			break
		}
		log.Warn().
			Err(lastErr).
			Int("attempt", attempt).
			Int("max_attempts", attempts).
			Msg("database connection failed")
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
				platformerrors.ErrorTypeConnection, "database connect cancelled", ctx.Err(),
				"2760d14a-0d2a-49f0-a586-1c7ea5be1c36")
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	if lastErr != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeConnection, "unable to connect to database", lastErr,
			"a9b41033-9d51-4918-97a1-a1f7ee23749c")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	log.Info().Str("engine", cfg.Engine).Msg("database connected")
	return db, nil
}

func dialectorFor(cfg Config) (gorm.Dialector, error) {
	switch cfg.Engine {
	case appconfig.EngineSQLite:
		return sqlite.Open(cfg.DSN), nil
	case appconfig.EngineMySQL:
		return mysql.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database engine %q", cfg.Engine)
	}
}
