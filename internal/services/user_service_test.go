package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Adetops/edu-progress-tracker/internal/events"
	"github.com/Adetops/edu-progress-tracker/internal/models"
	"github.com/Adetops/edu-progress-tracker/internal/validator"
)

func newUserService(f *fakeRepository, publisher events.EventPublisher) UserService {
	return NewUserService(f, nil, testLogger(), validator.New(), publisher, nil, "test-secret", time.Hour)
}

func TestUserRegisterAndLogin(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, svc UserService, username string) *models.User {
		t.Helper()
		user, err := svc.Register(ctx, &RegisterUserRequest{
			Username: username,
			Email:    username + "@school.test",
			Password: "correct-horse",
			Role:     models.RoleTeacher,
			FullName: "Test Teacher",
		})
		if err != nil {
			t.Fatalf("failed to register: %v", err)
		}
		return user
	}

	t.Run("register hashes the password", func(t *testing.T) {
		f := newFakeRepository()
		svc := newUserService(f, nil)

		user := register(t, svc, "ada")
		if user.PasswordHash == "correct-horse" || user.PasswordHash == "" {
			t.Errorf("password must be stored hashed")
		}
		if !user.IsActive {
			t.Errorf("new accounts must be active")
		}
	})

	t.Run("omitted role defaults to teacher", func(t *testing.T) {
		f := newFakeRepository()
		svc := newUserService(f, nil)

		user, err := svc.Register(ctx, &RegisterUserRequest{
			Username: "ada",
			Email:    "ada@school.test",
			Password: "correct-horse",
		})
		if err != nil {
			t.Fatalf("failed to register: %v", err)
		}
		if user.Role != models.RoleTeacher {
			t.Errorf("expected teacher role, got %s", user.Role)
		}
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		f := newFakeRepository()
		svc := newUserService(f, nil)

		register(t, svc, "ada")
		_, err := svc.Register(ctx, &RegisterUserRequest{
			Username: "ada",
			Email:    "other@school.test",
			Password: "correct-horse",
			Role:     models.RoleTeacher,
		})
		if !errors.Is(err, ErrUsernameExists) {
			t.Fatalf("expected ErrUsernameExists, got %v", err)
		}
	})

	t.Run("register publishes an event", func(t *testing.T) {
		f := newFakeRepository()
		publisher := events.NewMockEventPublisher(testLogger())
		svc := newUserService(f, publisher)

		register(t, svc, "ada")
		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventUserRegistered {
			t.Fatalf("expected one %s event, got %+v", events.EventUserRegistered, published)
		}
	})

	t.Run("login returns a parseable token", func(t *testing.T) {
		f := newFakeRepository()
		svc := newUserService(f, nil)
		user := register(t, svc, "ada")

		resp, err := svc.Login(ctx, &LoginUserRequest{Username: "ada", Password: "correct-horse"})
		if err != nil {
			t.Fatalf("failed to login: %v", err)
		}
		if resp.User.ID != user.ID {
			t.Errorf("expected user %s, got %s", user.ID, resp.User.ID)
		}

		claims, err := svc.ParseToken(resp.Token)
		if err != nil {
			t.Fatalf("failed to parse token: %v", err)
		}
		if claims.Subject != user.ID || claims.Role != models.RoleTeacher {
			t.Errorf("unexpected claims: %+v", claims)
		}
	})

	t.Run("wrong password is invalid credentials", func(t *testing.T) {
		f := newFakeRepository()
		svc := newUserService(f, nil)
		register(t, svc, "ada")

		_, err := svc.Login(ctx, &LoginUserRequest{Username: "ada", Password: "wrong"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown username is invalid credentials, not not-found", func(t *testing.T) {
		f := newFakeRepository()
		svc := newUserService(f, nil)

		_, err := svc.Login(ctx, &LoginUserRequest{Username: "ghost", Password: "whatever"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("disabled account cannot login", func(t *testing.T) {
		f := newFakeRepository()
		svc := newUserService(f, nil)
		user := register(t, svc, "ada")

		if err := svc.SetActive(ctx, user.ID, false); err != nil {
			t.Fatalf("failed to disable: %v", err)
		}

		_, err := svc.Login(ctx, &LoginUserRequest{Username: "ada", Password: "correct-horse"})
		if !errors.Is(err, ErrAccountDisabled) {
			t.Fatalf("expected ErrAccountDisabled, got %v", err)
		}
	})

	t.Run("change password requires the current one", func(t *testing.T) {
		f := newFakeRepository()
		svc := newUserService(f, nil)
		user := register(t, svc, "ada")

		err := svc.ChangePassword(ctx, user.ID, &ChangeUserPasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "brand-new-pass",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}

		err = svc.ChangePassword(ctx, user.ID, &ChangeUserPasswordRequest{
			CurrentPassword: "correct-horse",
			NewPassword:     "brand-new-pass",
		})
		if err != nil {
			t.Fatalf("failed to change password: %v", err)
		}

		if _, err := svc.Login(ctx, &LoginUserRequest{Username: "ada", Password: "brand-new-pass"}); err != nil {
			t.Fatalf("login with new password failed: %v", err)
		}
	})

	t.Run("tampered token is rejected", func(t *testing.T) {
		f := newFakeRepository()
		svc := newUserService(f, nil)
		register(t, svc, "ada")

		resp, err := svc.Login(ctx, &LoginUserRequest{Username: "ada", Password: "correct-horse"})
		if err != nil {
			t.Fatalf("failed to login: %v", err)
		}
		if _, err := svc.ParseToken(resp.Token + "x"); err == nil {
			t.Fatalf("expected parse error for tampered token")
		}
	})
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the bootstrap admin once", func(t *testing.T) {
		f := newFakeRepository()
		svc := newUserService(f, nil)

		if err := svc.EnsureAdmin(ctx, "admin", "admin@school.test", "admin-password"); err != nil {
			t.Fatalf("failed to ensure admin: %v", err)
		}
		if err := svc.EnsureAdmin(ctx, "admin", "admin@school.test", "admin-password"); err != nil {
			t.Fatalf("second ensure must be a no-op: %v", err)
		}

		count, err := f.User().CountByRole(ctx, models.RoleAdmin)
		if err != nil {
			t.Fatalf("failed to count admins: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 admin, got %d", count)
		}
	})

	t.Run("does nothing without credentials", func(t *testing.T) {
		f := newFakeRepository()
		svc := newUserService(f, nil)

		if err := svc.EnsureAdmin(ctx, "", "", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.users) != 0 {
			t.Errorf("expected no users, got %d", len(f.users))
		}
	})
}
