package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/makerhub/workshop-admin/internal/core/domain"
	"github.com/makerhub/workshop-admin/internal/core/ports"
)

// AdminService implements the role-gated administration operations.
type AdminService struct {
	users         ports.UserRepository
	roles         ports.RoleRepository
	logs          ports.LogRepository
	announcements ports.AnnouncementRepository
	backups       ports.BackupRepository
}

func NewAdminService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	logs ports.LogRepository,
	announcements ports.AnnouncementRepository,
	backups ports.BackupRepository,
) *AdminService {
	return &AdminService{
		users:         users,
		roles:         roles,
		logs:          logs,
		announcements: announcements,
		backups:       backups,
	}
}

// Register creates a new user account.
func (s *AdminService) Register(ctx context.Context, username, password, role string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrValidation
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ExportUsers returns every user without password material.
func (s *AdminService) ExportUsers(ctx context.Context) ([]domain.UserExport, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.UserExport, 0, len(users))
	for _, u := range users {
		out = append(out, domain.UserExport{Username: u.Username, Role: u.Role, Active: u.Active})
	}
	return out, nil
}

// ImportUsers validates every row up front, then applies them in one
// transaction. One bad row means zero rows committed.
func (s *AdminService) ImportUsers(ctx context.Context, rows []domain.UserImport) error {
	if len(rows) == 0 {
		return domain.ErrValidation
	}
	for i := range rows {
		rows[i].Username = strings.TrimSpace(rows[i].Username)
		if rows[i].Username == "" {
			return fmt.Errorf("%w: row %d: username required", domain.ErrValidation, i)
		}
		if !domain.ValidRole(rows[i].Role) {
			return fmt.Errorf("%w: row %d: invalid role %q", domain.ErrValidation, i, rows[i].Role)
		}
	}
	return s.users.ImportAll(ctx, rows)
}

// UpdateRole changes a user's role. Actors cannot change their own role.
func (s *AdminService) UpdateRole(ctx context.Context, actor, target, role string) error {
	if actor == target {
		return domain.ErrSelfModification
	}
	if !domain.ValidRole(role) {
		return domain.ErrValidation
	}
	return s.users.UpdateRole(ctx, target, role)
}

// SetActive toggles the active flag. Actors cannot deactivate themselves.
func (s *AdminService) SetActive(ctx context.Context, actor, target string, active bool) error {
	if actor == target {
		return domain.ErrSelfModification
	}
	return s.users.SetActive(ctx, target, active)
}

// ResetPassword sets a new password for another user. Self-resets go through
// the change-password flow, which re-verifies the current password.
func (s *AdminService) ResetPassword(ctx context.Context, actor, target, password string) error {
	if actor == target {
		return domain.ErrSelfModification
	}
	if password == "" {
		return domain.ErrValidation
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, target, string(hash))
}

// DeleteUser removes a user. Actors cannot delete themselves.
func (s *AdminService) DeleteUser(ctx context.Context, actor, target string) error {
	if actor == target {
		return domain.ErrSelfModification
	}
	return s.users.Delete(ctx, target)
}

// Roles returns the role → permissions mapping.
func (s *AdminService) Roles(ctx context.Context) (map[string][]string, error) {
	list, err := s.roles.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string, len(list))
	for _, r := range list {
		out[r.Name] = r.Permissions
	}
	return out, nil
}

// PutRoles upserts every entry of the given mapping.
func (s *AdminService) PutRoles(ctx context.Context, roles map[string][]string) error {
	for name, perms := range roles {
		name = strings.TrimSpace(name)
		if name == "" {
			return domain.ErrValidation
		}
		if perms == nil {
			perms = []string{}
		}
		if err := s.roles.Upsert(ctx, domain.Role{Name: name, Permissions: perms}); err != nil {
			return err
		}
	}
	return nil
}

// RecentLogs returns the last 100 audit messages, newest first.
func (s *AdminService) RecentLogs(ctx context.Context) ([]string, error) {
	entries, err := s.logs.Recent(ctx, 100)
	if err != nil {
		return nil, err
	}
	msgs := make([]string, 0, len(entries))
	for _, e := range entries {
		msgs = append(msgs, e.Message)
	}
	return msgs, nil
}

// Announcements returns the 20 most recent announcements.
func (s *AdminService) Announcements(ctx context.Context) ([]domain.Announcement, error) {
	return s.announcements.List(ctx, 20)
}

// PostAnnouncement stores a broadcast keyed by the current timestamp.
func (s *AdminService) PostAnnouncement(ctx context.Context, text string) (domain.Announcement, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Announcement{}, domain.ErrValidation
	}
	a := domain.Announcement{TS: time.Now().UnixMilli(), Text: text}
	if err := s.announcements.Create(ctx, a); err != nil {
		return domain.Announcement{}, err
	}
	return a, nil
}

// DeleteAnnouncement removes a broadcast by its timestamp key.
func (s *AdminService) DeleteAnnouncement(ctx context.Context, ts int64) error {
	return s.announcements.Delete(ctx, ts)
}

// Backup dumps every administrative collection.
func (s *AdminService) Backup(ctx context.Context) (*domain.Backup, error) {
	return s.backups.Dump(ctx)
}

// Restore replaces every administrative collection with the payload.
func (s *AdminService) Restore(ctx context.Context, b *domain.Backup) error {
	if b == nil {
		return domain.ErrValidation
	}
	for _, u := range b.Users {
		if u.Username == "" || !domain.ValidRole(u.Role) {
			return fmt.Errorf("%w: user %q", domain.ErrValidation, u.Username)
		}
	}
	return s.backups.Restore(ctx, b)
}
