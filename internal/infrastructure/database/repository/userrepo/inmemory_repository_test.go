package userrepo

import (
	"context"
	"testing"

	"user-api/internal/domain/user"
)

func TestInMemoryListOrdersByID(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	for _, email := range []string{"c@example.com", "a@example.com", "b@example.com"} {
		if _, err := repo.Create(ctx, &user.User{
			Email:        email,
			PasswordHash: "$2a$10$notarealhashbutlongenoughtostore",
			Role:         user.RoleViewer,
		}); err != nil {
			t.Fatalf("create %s: %v", email, err)
		}
	}

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	for i := 1; i < len(users); i++ {
		if users[i-1].ID >= users[i].ID {
			t.Fatalf("expected ascending ids, got %d before %d", users[i-1].ID, users[i].ID)
		}
	}
}
