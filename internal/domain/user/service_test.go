package user

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"user-api/internal/infrastructure/auth"
	"user-api/internal/utils/platformerrors"
)

type memRepo struct {
	users  map[string]*User
	nextID uint
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[string]*User{}, nextID: 1}
}

func (m *memRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := m.users[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memRepo) FindByID(ctx context.Context, id uint) (*User, error) {
	for _, u := range m.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memRepo) Create(ctx context.Context, u *User) (*User, error) {
	if _, ok := m.users[u.Email]; ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeConflict, "email already exists", nil, "")
	}
	cp := *u
	cp.ID = m.nextID
	m.nextID++
	m.users[u.Email] = &cp
	out := cp
	return &out, nil
}

func (m *memRepo) List(ctx context.Context) ([]*User, error) {
	out := make([]*User, 0, len(m.users))
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memRepo) ExistsWithRole(ctx context.Context, role Role) (bool, error) {
	for _, u := range m.users {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func TestRegisterHashesPasswordAndDefaultsRole(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, zerolog.Nop())

	created, err := svc.Register(context.Background(), RegisterInput{
		Email:    "Person@Example.com",
		Password: "longenoughpassword",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.Email != "person@example.com" {
		t.Fatalf("expected normalized email, got %q", created.Email)
	}
	if created.Role != RoleViewer {
		t.Fatalf("expected default role viewer, got %q", created.Role)
	}
	if created.PasswordHash == "longenoughpassword" {
		t.Fatal("password must be stored hashed")
	}
	if !auth.VerifyPassword(created.PasswordHash, "longenoughpassword") {
		t.Fatal("hash must verify against the original password")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(newMemRepo(), zerolog.Nop())

	cases := []RegisterInput{
		{Email: "not-an-email", Password: "longenoughpassword"},
		{Email: "a@example.com", Password: "short"},
		{Email: "a@example.com", Password: "longenoughpassword", Role: "superuser"},
	}
	for _, input := range cases {
		_, err := svc.Register(context.Background(), input)
		if !platformerrors.IsType(err, platformerrors.ErrorTypeValidation) {
			t.Fatalf("expected validation error for %+v, got %v", input, err)
		}
	}
}

func TestRegisterRejectsNameAddrEmail(t *testing.T) {
	svc := NewService(newMemRepo(), zerolog.Nop())

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "Evil Display <real@example.com>",
		Password: "longenoughpassword",
	})
	if !platformerrors.IsType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error for name-addr email, got %v", err)
	}

	// the bare mailbox must still be registrable and stored undecorated
	created, err := svc.Register(context.Background(), RegisterInput{
		Email:    "real@example.com",
		Password: "longenoughpassword",
	})
	if err != nil {
		t.Fatalf("register bare address: %v", err)
	}
	if created.Email != "real@example.com" {
		t.Fatalf("expected bare address to be stored, got %q", created.Email)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc := NewService(newMemRepo(), zerolog.Nop())
	input := RegisterInput{Email: "dup@example.com", Password: "longenoughpassword"}

	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), input)
	if !platformerrors.IsType(err, platformerrors.ErrorTypeConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, zerolog.Nop())

	if _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "login@example.com",
		Password: "longenoughpassword",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	usr, err := svc.Authenticate(context.Background(), "login@example.com", "longenoughpassword")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if usr.Email != "login@example.com" {
		t.Fatalf("unexpected user: %+v", usr)
	}

	if _, err := svc.Authenticate(context.Background(), "login@example.com", "wrongpassword"); !platformerrors.IsType(err, platformerrors.ErrorTypeUnauthorized) {
		t.Fatalf("expected unauthorized for wrong password, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody@example.com", "whatever"); !platformerrors.IsType(err, platformerrors.ErrorTypeUnauthorized) {
		t.Fatalf("expected unauthorized for unknown email, got %v", err)
	}
}

func TestAuthenticateRejectsDisabledUser(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, zerolog.Nop())

	created, err := svc.Register(context.Background(), RegisterInput{
		Email:    "gone@example.com",
		Password: "longenoughpassword",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	repo.users[created.Email].Disabled = true

	if _, err := svc.Authenticate(context.Background(), "gone@example.com", "longenoughpassword"); !platformerrors.IsType(err, platformerrors.ErrorTypeForbidden) {
		t.Fatalf("expected forbidden for disabled user, got %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc := NewService(newMemRepo(), zerolog.Nop())

	_, err := svc.GetByID(context.Background(), 99)
	if !platformerrors.IsType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
