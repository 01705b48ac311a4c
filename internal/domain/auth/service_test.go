package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeUserRepo struct {
	users map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*User)}
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return ErrEmailTaken
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeUserRepo) CountUsers(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

const testSecret = "test-secret"

func seedAdmin(t *testing.T, repo *fakeUserRepo, svc *Service) *User {
	t.Helper()
	if err := svc.EnsureBootstrapUser(context.Background(), "admin@example.org", "bootstrap-pass"); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	user, err := repo.GetUserByEmail(context.Background(), "admin@example.org")
	if err != nil {
		t.Fatalf("bootstrap user missing: %v", err)
	}
	return user
}

func TestLoginAndVerifyToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, testSecret, time.Hour)
	admin := seedAdmin(t, repo, svc)

	token, user, err := svc.Login(context.Background(), "admin@example.org", "bootstrap-pass")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != admin.ID {
		t.Fatalf("expected user %s, got %s", admin.ID, user.ID)
	}

	actor, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if actor.UserID != admin.ID || actor.Role != RoleAdmin {
		t.Fatalf("unexpected actor: %+v", actor)
	}
	if !actor.IsAdmin() || !actor.IsStaff() {
		t.Fatalf("expected admin to be staff")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, testSecret, time.Hour)
	seedAdmin(t, repo, svc)

	_, _, err := svc.Login(context.Background(), "admin@example.org", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc := NewService(newFakeUserRepo(), testSecret, time.Hour)
	_, _, err := svc.Login(context.Background(), "nobody@example.org", "pass")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, testSecret, time.Hour)
	admin := seedAdmin(t, repo, svc)
	repo.users[admin.ID].Active = false

	_, _, err := svc.Login(context.Background(), "admin@example.org", "bootstrap-pass")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, testSecret, time.Hour)
	seedAdmin(t, repo, svc)

	token, _, err := svc.Login(context.Background(), "admin@example.org", "bootstrap-pass")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	other := NewService(repo, "different-secret", time.Hour)
	if _, err := other.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	svc := NewService(newFakeUserRepo(), testSecret, time.Hour)
	if _, err := svc.VerifyToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCreateUserRequiresAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, testSecret, time.Hour)
	seedAdmin(t, repo, svc)

	attendant := Actor{UserID: "u1", Role: RoleAttendant}
	_, err := svc.CreateUser(context.Background(), attendant, "new@example.org", "password1", RoleViewer)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCreateUserDefaultsToAttendant(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, testSecret, time.Hour)
	admin := seedAdmin(t, repo, svc)

	user, err := svc.CreateUser(context.Background(), Actor{UserID: admin.ID, Role: RoleAdmin}, "new@example.org", "password1", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Role != RoleAttendant {
		t.Fatalf("expected attendant, got %q", user.Role)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, testSecret, time.Hour)
	admin := seedAdmin(t, repo, svc)

	actor := Actor{UserID: admin.ID, Role: RoleAdmin}
	if _, err := svc.CreateUser(context.Background(), actor, "new@example.org", "password1", RoleViewer); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	_, err := svc.CreateUser(context.Background(), actor, "new@example.org", "password1", RoleViewer)
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestEnsureBootstrapSkipsPopulatedStore(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, testSecret, time.Hour)
	seedAdmin(t, repo, svc)

	if err := svc.EnsureBootstrapUser(context.Background(), "other@example.org", "pass1234"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := repo.GetUserByEmail(context.Background(), "other@example.org"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected no second bootstrap user, got %v", err)
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  User@Example.ORG "); got != "User@example.org" {
		t.Fatalf("unexpected normalization: %q", got)
	}
	if got := NormalizeEmail("plainstring"); got != "plainstring" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}
