package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/makerhub/workshop-admin/internal/core/domain"
	"github.com/makerhub/workshop-admin/internal/core/ports"
)

const bcryptCost = 12

// AuthService implements login, logout and password changes.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	tokens   ports.TokenService
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionRepository, tokens ports.TokenService) *AuthService {
	return &AuthService{users: users, sessions: sessions, tokens: tokens}
}

// Login verifies the credentials, records a session and issues a token.
// Unknown users, wrong passwords and deactivated accounts all return
// ErrInvalidCredentials so callers cannot probe for usernames.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !user.Active {
		return "", nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	session := domain.Session{
		ID:        uuid.NewString(),
		Username:  user.Username,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.Username, user.Role, session.ID)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Logout removes the login session named by the token. The token itself stays
// valid until expiry; see TokenService.
func (s *AuthService) Logout(ctx context.Context, ident domain.Identity) error {
	if ident.SessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, ident.SessionID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

// ChangePassword swaps the caller's password after re-verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, username, current, next string) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcryptCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, username, string(hash))
}
