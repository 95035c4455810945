package user

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/rs/zerolog"

	"user-api/internal/infrastructure/auth"
	"user-api/internal/utils/platformerrors"
)

const minPasswordLength = 8

// normalizeEmail lowercases the input and validates it as a bare address.
// Name-addr forms such as "Name <box@host>" are rejected, otherwise one
// mailbox could register under multiple spellings and the uniqueness
// constraint would only see the decorated strings.
func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return "", err
	}
	if addr.Address != email {
		return "", errors.New("email must be a bare address")
	}
	return email, nil
}

// Service implements version-agnostic user business logic. Both the v1 and
// v2 handler adapters call into the same instance.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

// NewService wires the user service with its repository.
func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "user-service").Logger(),
	}
}

// RegisterInput carries the fields accepted when creating a user.
type RegisterInput struct {
	Email    string
	Password string
	Role     Role
}

// Register validates input, hashes the credential and persists a new user.
// An empty role defaults to viewer.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "invalid email address", err, "")
	}
	if len(input.Password) < minPasswordLength {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "password must be at least 8 characters", nil, "")
	}

	role := input.Role
	if role == "" {
		role = RoleViewer
	}
	if !ValidRole(role) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "unknown role", nil, "")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeInternal, "failed to hash password", err,
			"e4cedcc3-8d13-4911-8726-df0f2172e352")
	}

	created, err := s.repo.Create(ctx, &User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		if platformerrors.IsType(err, platformerrors.ErrorTypeConflict) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
				platformerrors.ErrorTypeConflict, "email already registered", err, "")
		}
		return nil, err
	}

	s.log.Info().Str("email", created.Email).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Authenticate verifies the credential for the given email. Unknown emails
// burn a dummy bcrypt comparison so response timing does not reveal whether
// the account exists.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		auth.DummyCompare(password)
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthorized, "invalid credentials", nil, "")
	}

	usr, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if usr == nil {
		auth.DummyCompare(password)
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthorized, "invalid credentials", nil, "")
	}

	if !auth.VerifyPassword(usr.PasswordHash, password) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthorized, "invalid credentials", nil, "")
	}

	if usr.Disabled {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeForbidden, "account disabled", nil, "")
	}

	return usr, nil
}

// GetByID returns the user with the given id or a not-found error.
func (s *Service) GetByID(ctx context.Context, id uint) (*User, error) {
	usr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound, "user not found", nil, "")
	}
	return usr, nil
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}
