package userrepo

import (
	"context"
	"sort"
	"sync"

	"user-api/internal/domain/user"
	"user-api/internal/utils/platformerrors"
)

// InMemoryRepository is a thread-safe user.Repository useful for demos and
// tests. It enforces the same email uniqueness contract as the real engines.
type InMemoryRepository struct {
	mu     sync.RWMutex
	users  map[string]*user.User
	nextID uint
}

var _ user.Repository = (*InMemoryRepository)(nil)

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		users:  make(map[string]*user.User),
		nextID: 1,
	}
}

func (r *InMemoryRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, ok := r.users[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, usr *user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[usr.Email]; exists {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeConflict, "email already exists", nil, "")
	}

	cp := *usr
	cp.ID = r.nextID
	r.nextID++
	r.users[cp.Email] = &cp

	out := cp
	return &out, nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*user.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	// match the id ordering of the gorm implementation
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) ExistsWithRole(ctx context.Context, role user.Role) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

// SetDisabled flips the disabled flag for tests and admin tooling.
func (r *InMemoryRepository) SetDisabled(email string, disabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[email]; ok {
		u.Disabled = disabled
	}
}
