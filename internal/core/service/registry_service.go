package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/makerhub/workshop-admin/internal/core/domain"
	"github.com/makerhub/workshop-admin/internal/core/ports"
)

const (
	apiKeyLength  = 24
	apiKeyCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

	sessionListLimit = 50
	apiKeyListLimit  = 20
)

// RegistryService lists and revokes login sessions and API keys.
type RegistryService struct {
	sessions ports.SessionRepository
	keys     ports.APIKeyRepository
}

func NewRegistryService(sessions ports.SessionRepository, keys ports.APIKeyRepository) *RegistryService {
	return &RegistryService{sessions: sessions, keys: keys}
}

// Sessions returns the most recent login sessions.
func (s *RegistryService) Sessions(ctx context.Context) ([]domain.Session, error) {
	return s.sessions.List(ctx, sessionListLimit)
}

// RevokeSession deletes a session by id.
func (s *RegistryService) RevokeSession(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

// APIKeys returns the most recent API keys.
func (s *RegistryService) APIKeys(ctx context.Context) ([]domain.APIKey, error) {
	return s.keys.List(ctx, apiKeyListLimit)
}

// CreateAPIKey generates a new key and stores it under the given label.
// Uniqueness is enforced by the store's primary key; a collision surfaces as
// an error rather than being retried, since with 24 random alphanumeric
// characters a collision means the RNG is broken.
func (s *RegistryService) CreateAPIKey(ctx context.Context, name string) (domain.APIKey, error) {
	if strings.TrimSpace(name) == "" {
		return domain.APIKey{}, domain.ErrValidation
	}

	secret, err := generateKey(apiKeyLength)
	if err != nil {
		return domain.APIKey{}, fmt.Errorf("generate api key: %w", err)
	}

	key := domain.APIKey{Key: secret, Name: name, CreatedAt: time.Now().UTC()}
	if err := s.keys.Insert(ctx, key); err != nil {
		return domain.APIKey{}, err
	}
	return key, nil
}

// RevokeAPIKey deletes a key.
func (s *RegistryService) RevokeAPIKey(ctx context.Context, key string) error {
	return s.keys.Delete(ctx, key)
}

// generateKey returns n characters drawn uniformly from apiKeyCharset using
// crypto/rand. Bytes at or above the largest multiple of the charset size are
// discarded so no character is overrepresented.
func generateKey(n int) (string, error) {
	limit := 256 - 256%len(apiKeyCharset)
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, apiKeyCharset[int(b)%len(apiKeyCharset)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
