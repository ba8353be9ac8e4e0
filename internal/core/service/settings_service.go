package service

import (
	"context"
	"errors"
	"time"

	"github.com/makerhub/workshop-admin/internal/core/domain"
	"github.com/makerhub/workshop-admin/internal/core/ports"
)

// SettingsService manages per-user UI settings.
type SettingsService struct {
	settings ports.SettingsRepository
}

func NewSettingsService(settings ports.SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

// Get returns the user's saved settings, or the defaults if none exist.
func (s *SettingsService) Get(ctx context.Context, username string) (domain.Settings, error) {
	saved, err := s.settings.Get(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DefaultSettings(username), nil
		}
		return domain.Settings{}, err
	}
	return saved, nil
}

// Update stores the given settings for the user. Field-level validation is
// the handler's job; this only stamps ownership and time.
func (s *SettingsService) Update(ctx context.Context, username string, in domain.Settings) (domain.Settings, error) {
	in.Username = username
	in.UpdatedAt = time.Now().UTC()
	if err := s.settings.Upsert(ctx, in); err != nil {
		return domain.Settings{}, err
	}
	return in, nil
}

// Reset deletes the user's settings so defaults apply again.
func (s *SettingsService) Reset(ctx context.Context, username string) error {
	if err := s.settings.Delete(ctx, username); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}
