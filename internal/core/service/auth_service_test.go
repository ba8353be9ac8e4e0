package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/makerhub/workshop-admin/internal/core/domain"
)

func seedUser(t *testing.T, repo *stubUserRepo, username, password, role string, active bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	repo.users[username] = &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		Active:       active,
		CreatedAt:    time.Now().UTC(),
	}
}

func newAuthService(users *stubUserRepo, sessions *stubSessionRepo) *AuthService {
	return NewAuthService(users, sessions, NewTokenService("secret", time.Hour))
}

func TestAuthService_Login_Success(t *testing.T) {
	users := newStubUserRepo()
	sessions := newStubSessionRepo()
	seedUser(t, users, "carol", "s3cret-pass", domain.RoleAdmin, true)
	svc := newAuthService(users, sessions)

	token, user, err := svc.Login(context.Background(), "carol", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "carol" || user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}
	if len(sessions.sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions.sessions))
	}

	ident, err := NewTokenService("secret", time.Hour).Verify(token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if ident.Username != "carol" || ident.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", ident)
	}
	if _, ok := sessions.sessions[ident.SessionID]; !ok {
		t.Fatalf("token sid %q not in session registry", ident.SessionID)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := newStubUserRepo()
	sessions := newStubSessionRepo()
	seedUser(t, users, "dave", "goodpass1", domain.RoleUser, true)
	svc := newAuthService(users, sessions)

	if _, _, err := svc.Login(context.Background(), "dave", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(sessions.sessions) != 0 {
		t.Fatalf("no session should be created on failure")
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubSessionRepo())

	if _, _, err := svc.Login(context.Background(), "ghost", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	users := newStubUserRepo()
	seedUser(t, users, "erin", "goodpass1", domain.RoleTech, false)
	svc := newAuthService(users, newStubSessionRepo())

	if _, _, err := svc.Login(context.Background(), "erin", "goodpass1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for inactive user, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	users := newStubUserRepo()
	sessions := newStubSessionRepo()
	seedUser(t, users, "frank", "goodpass1", domain.RoleUser, true)
	svc := newAuthService(users, sessions)

	token, _, err := svc.Login(context.Background(), "frank", "goodpass1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	ident, err := NewTokenService("secret", time.Hour).Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	if err := svc.Logout(context.Background(), ident); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if len(sessions.sessions) != 0 {
		t.Fatalf("session not deleted")
	}

	// Logging out twice is harmless.
	if err := svc.Logout(context.Background(), ident); err != nil {
		t.Fatalf("second logout failed: %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	users := newStubUserRepo()
	seedUser(t, users, "gina", "oldpass99", domain.RoleUser, true)
	svc := newAuthService(users, newStubSessionRepo())

	if err := svc.ChangePassword(context.Background(), "gina", "wrong", "newpass99"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if err := svc.ChangePassword(context.Background(), "gina", "oldpass99", "newpass99"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(users.users["gina"].PasswordHash), []byte("newpass99")) != nil {
		t.Fatalf("stored hash does not match new password")
	}
}
