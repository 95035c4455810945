package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"user-api/internal/config"
	"user-api/internal/domain/bootstrap"
	"user-api/internal/domain/user"
	"user-api/internal/infrastructure/auth"
	"user-api/internal/infrastructure/database"
	_ "user-api/internal/infrastructure/database/dbschema"
	"user-api/internal/infrastructure/database/repository/userrepo"
	"user-api/internal/infrastructure/logger"
	"user-api/internal/infrastructure/observability"
	"user-api/internal/interfaces/httpserver"
)

// Application bundles the assembled server with its logger.
type Application struct {
	httpServer *httpserver.HTTPServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HTTPServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	// boot logger covers failures before the configured logger exists
	boot := logger.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("configuration error")
	}

	log, err := logger.New(cfg)
	if err != nil {
		boot.Fatal().Err(err).Msg("logger initialization failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(ctx, database.FromAppConfig(cfg), log)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.Migrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	userRepository := userrepo.NewUserGormRepository(db)

	// Admin bootstrap runs to completion before the listener starts; the
	// process never serves traffic without a provisioned admin.
	if _, err := bootstrap.EnsureAdmin(ctx, userRepository, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("admin bootstrap failed")
	}

	tokenManager := auth.NewTokenManager(cfg, log)
	userService := user.NewService(userRepository, log)

	httpServer, err := httpserver.New(cfg, log, userService, tokenManager)
	if err != nil {
		log.Fatal().Err(err).Msg("assemble http server")
	}

	app := NewApplication(httpServer, log)
	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
