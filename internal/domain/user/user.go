// Package user provides the user domain model and behaviors shared by every
// API version.
package user

import (
	"context"
	"time"
)

// Role is the permission level assigned to a user.
type Role string

const (
	RoleViewer  Role = "viewer"
	RoleEditor  Role = "editor"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// roleScopes maps each role to the scopes it grants. "*" grants everything,
// "data.*" grants every scope under the data prefix.
var roleScopes = map[Role][]string{
	RoleViewer:  {"profile.read", "data.view"},
	RoleEditor:  {"profile.read", "data.view", "data.edit"},
	RoleManager: {"profile.read", "data.*"},
	RoleAdmin:   {"*"},
}

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	_, ok := roleScopes[r]
	return ok
}

// Scopes returns the scopes granted by the role.
func (r Role) Scopes() []string {
	scopes := roleScopes[r]
	out := make([]string, len(scopes))
	copy(out, scopes)
	return out
}

// User models an application user. PasswordHash is a bcrypt digest; the
// plaintext credential is never stored or returned.
type User struct {
	ID           uint
	Email        string
	PasswordHash string
	Role         Role
	Disabled     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Repository defines storage operations for users. Implementations must
// behave identically regardless of the underlying engine.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
	List(ctx context.Context) ([]*User, error)
	ExistsWithRole(ctx context.Context, role Role) (bool, error)
}
