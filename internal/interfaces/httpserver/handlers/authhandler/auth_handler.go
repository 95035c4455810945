package authhandler

import (
	"context"
	"time"

	"user-api/internal/domain/user"
	"user-api/internal/infrastructure/auth"
)

// RegisterRequest is the payload for self-service registration. Role is not
// accepted here; public signups always become viewers.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the credential payload for token issuance.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Token is an issued access token with its expiry.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// AuthHandler invokes domain logic for registration and login.
type AuthHandler struct {
	users  *user.Service
	tokens *auth.TokenManager
}

// NewAuthHandler wires dependencies for auth routes.
func NewAuthHandler(users *user.Service, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{
		users:  users,
		tokens: tokens,
	}
}

// Register creates a viewer account from the request payload.
func (h *AuthHandler) Register(ctx context.Context, req RegisterRequest) (*user.User, error) {
	return h.users.Register(ctx, user.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
}

// Login authenticates the credential and issues an access token carrying the
// user's role scopes.
func (h *AuthHandler) Login(ctx context.Context, req LoginRequest) (*user.User, *Token, error) {
	usr, err := h.users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, nil, err
	}

	token, expiresAt, err := h.tokens.Issue(usr.ID, usr.Email, string(usr.Role), usr.Role.Scopes())
	if err != nil {
		return nil, nil, err
	}

	return usr, &Token{AccessToken: token, ExpiresAt: expiresAt}, nil
}
