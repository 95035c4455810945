// Package bootstrap provisions required baseline state before the server
// accepts traffic.
package bootstrap

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"user-api/internal/config"
	"user-api/internal/domain/user"
	"user-api/internal/infrastructure/auth"
	"user-api/internal/utils/platformerrors"
)

// Result reports what EnsureAdmin did.
type Result int

const (
	// AdminCreated means the seed admin was inserted on this run.
	AdminCreated Result = iota
	// AdminAlreadyExists means a matching admin was already present and was
	// left untouched.
	AdminAlreadyExists
)

// EnsureAdmin guarantees exactly one super-admin exists, created from the
// configured seed credentials. Safe to run on every startup: an existing
// admin is never re-hashed or overwritten, and a uniqueness-violation race
// with a concurrent bootstrap is treated as "already exists". Runs once,
// before the listener starts.
func EnsureAdmin(ctx context.Context, repo user.Repository, cfg *config.Config, log zerolog.Logger) (Result, error) {
	log = log.With().Str("component", "bootstrap").Logger()

	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" {
		// Without a seed email the only acceptable state is an admin that
		// already exists from a previous run.
		exists, err := repo.ExistsWithRole(ctx, user.RoleAdmin)
		if err != nil {
			return 0, bootstrapErr(ctx, "failed to check for existing admin", err,
				"ee8cf289-8939-41e9-8e6a-27eed5c86dca")
		}
		if exists {
			log.Debug().Msg("admin present, no seed configured")
			return AdminAlreadyExists, nil
		}
		return 0, bootstrapErr(ctx, "ADMIN_EMAIL is required: no admin user exists", nil,
			"3049e53a-b4f3-4f62-a1e0-df38ada0217b")
	}

	existing, err := repo.FindByEmail(ctx, email)
	if err != nil {
		return 0, bootstrapErr(ctx, "failed to look up admin seed email", err,
			"3ea360ba-5fc3-4804-8078-31fde56ede64")
	}
	if existing != nil {
		if existing.Role != user.RoleAdmin {
			// Promoting a regular account at startup would be silent
			// privilege escalation; the operator must resolve this.
			return 0, bootstrapErr(ctx, "ADMIN_EMAIL belongs to a non-admin user", nil,
				"3111b476-b8ea-49dc-a966-9846676eef96")
		}
		log.Debug().Str("email", email).Msg("admin already exists")
		return AdminAlreadyExists, nil
	}

	if cfg.AdminPassword == "" {
		return 0, bootstrapErr(ctx, "ADMIN_PASSWORD is required to create the admin user", nil, "")
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return 0, bootstrapErr(ctx, "failed to hash admin password", err, "")
	}

	_, err = repo.Create(ctx, &user.User{
		Email:        email,
		PasswordHash: hash,
		Role:         user.RoleAdmin,
	})
	if err != nil {
		if platformerrors.IsType(err, platformerrors.ErrorTypeConflict) {
			// Another process won the bootstrap race; benign.
			log.Info().Str("email", email).Msg("admin created concurrently")
			return AdminAlreadyExists, nil
		}
		return 0, bootstrapErr(ctx, "failed to create admin user", err, "")
	}

	log.Info().Str("email", email).Msg("admin user created")
	return AdminCreated, nil
}

func bootstrapErr(ctx context.Context, message string, err error, code string) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain,
		platformerrors.ErrorTypeBootstrap, message, err, code)
}
