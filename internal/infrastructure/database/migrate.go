package database

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Migrate applies schema changes for every registered model.
func Migrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	for _, model := range SchemaRegistry {
		if err := db.WithContext(ctx).AutoMigrate(model); err != nil {
			log.Error().
				Str("error_code", "6c6b36fd-bf15-4086-9e45-75f2f6aa1202").
				Err(err).
				Msgf("failed to auto migrate schema: %T", model)
			return err
		}
	}
	log.Debug().Int("schemas", len(SchemaRegistry)).Msg("database migration complete")
	return nil
}
