package handlers

import (
	"user-api/internal/domain/user"
	"user-api/internal/infrastructure/auth"
	"user-api/internal/interfaces/httpserver/handlers/authhandler"
	"user-api/internal/interfaces/httpserver/handlers/userhandler"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Auth  *authhandler.AuthHandler
	Users *userhandler.UserHandler
}

// NewProvider constructs the handler provider over the domain services.
func NewProvider(users *user.Service, tokens *auth.TokenManager) *Provider {
	return &Provider{
		Auth:  authhandler.NewAuthHandler(users, tokens),
		Users: userhandler.NewUserHandler(users),
	}
}
