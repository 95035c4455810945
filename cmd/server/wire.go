//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"user-api/internal/config"
	"user-api/internal/domain/user"
	"user-api/internal/infrastructure/auth"
	"user-api/internal/infrastructure/database"
	_ "user-api/internal/infrastructure/database/dbschema"
	"user-api/internal/infrastructure/database/repository/userrepo"
	"user-api/internal/infrastructure/logger"
	"user-api/internal/interfaces/httpserver"
)

var userSet = wire.NewSet(
	userrepo.NewUserGormRepository,
	user.NewService,
)

// BuildApplication assembles the service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newGormDB,
		auth.NewTokenManager,
		userSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newGormDB(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(ctx, database.FromAppConfig(cfg), log)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}
