package userhandler

import (
	"context"

	"user-api/internal/domain/user"
)

// CreateUserRequest is the admin-facing payload for creating a user with an
// explicit role.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// UserHandler invokes domain logic for user resource routes.
type UserHandler struct {
	users *user.Service
}

// NewUserHandler wires dependencies for user routes.
func NewUserHandler(users *user.Service) *UserHandler {
	return &UserHandler{users: users}
}

// Create persists a new user with the requested role.
func (h *UserHandler) Create(ctx context.Context, req CreateUserRequest) (*user.User, error) {
	return h.users.Register(ctx, user.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     user.Role(req.Role),
	})
}

// Get returns a single user by id.
func (h *UserHandler) Get(ctx context.Context, id uint) (*user.User, error) {
	return h.users.GetByID(ctx, id)
}

// List returns all users.
func (h *UserHandler) List(ctx context.Context) ([]*user.User, error) {
	return h.users.List(ctx)
}
