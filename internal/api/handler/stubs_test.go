package handler

import (
	"context"

	"github.com/makerhub/workshop-admin/internal/core/domain"
)

// Canned service doubles for the handler tests. Each field overrides one
// operation; unset operations return zero values.

type stubAuthService struct {
	loginFn          func(username, password string) (string, *domain.User, error)
	loggedOut        []string
	changePasswordFn func(username, current, next string) error
}

func (s *stubAuthService) Login(_ context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(username, password)
}

func (s *stubAuthService) Logout(_ context.Context, ident domain.Identity) error {
	s.loggedOut = append(s.loggedOut, ident.SessionID)
	return nil
}

func (s *stubAuthService) ChangePassword(_ context.Context, username, current, next string) error {
	return s.changePasswordFn(username, current, next)
}

type stubAdminService struct {
	registerFn     func(username, password, role string) (*domain.User, error)
	exported       []domain.UserExport
	imported       [][]domain.UserImport
	importErr      error
	roleUpdates    []string
	roleUpdateErr  error
	statusUpdates  []string
	deleted        []string
	roles          map[string][]string
	logs           []string
	announcements  []domain.Announcement
	postedAnnErr   error
	deletedAnnTS   []int64
	backup         *domain.Backup
	restored       *domain.Backup
	restoreErr     error
	resetPasswords []string
}

func (s *stubAdminService) Register(_ context.Context, username, password, role string) (*domain.User, error) {
	return s.registerFn(username, password, role)
}

func (s *stubAdminService) ExportUsers(_ context.Context) ([]domain.UserExport, error) {
	return s.exported, nil
}

func (s *stubAdminService) ImportUsers(_ context.Context, rows []domain.UserImport) error {
	if s.importErr != nil {
		return s.importErr
	}
	s.imported = append(s.imported, rows)
	return nil
}

func (s *stubAdminService) UpdateRole(_ context.Context, actor, target, role string) error {
	if s.roleUpdateErr != nil {
		return s.roleUpdateErr
	}
	s.roleUpdates = append(s.roleUpdates, actor+">"+target+":"+role)
	return nil
}

func (s *stubAdminService) SetActive(_ context.Context, actor, target string, active bool) error {
	s.statusUpdates = append(s.statusUpdates, target)
	return nil
}

func (s *stubAdminService) ResetPassword(_ context.Context, actor, target, password string) error {
	s.resetPasswords = append(s.resetPasswords, target)
	return nil
}

func (s *stubAdminService) DeleteUser(_ context.Context, actor, target string) error {
	s.deleted = append(s.deleted, actor+">"+target)
	return nil
}

func (s *stubAdminService) Roles(_ context.Context) (map[string][]string, error) {
	return s.roles, nil
}

func (s *stubAdminService) PutRoles(_ context.Context, roles map[string][]string) error {
	s.roles = roles
	return nil
}

func (s *stubAdminService) RecentLogs(_ context.Context) ([]string, error) {
	return s.logs, nil
}

func (s *stubAdminService) Announcements(_ context.Context) ([]domain.Announcement, error) {
	return s.announcements, nil
}

func (s *stubAdminService) PostAnnouncement(_ context.Context, text string) (domain.Announcement, error) {
	if s.postedAnnErr != nil {
		return domain.Announcement{}, s.postedAnnErr
	}
	a := domain.Announcement{TS: 1700000000000, Text: text}
	s.announcements = append(s.announcements, a)
	return a, nil
}

func (s *stubAdminService) DeleteAnnouncement(_ context.Context, ts int64) error {
	s.deletedAnnTS = append(s.deletedAnnTS, ts)
	return nil
}

func (s *stubAdminService) Backup(_ context.Context) (*domain.Backup, error) {
	return s.backup, nil
}

func (s *stubAdminService) Restore(_ context.Context, b *domain.Backup) error {
	if s.restoreErr != nil {
		return s.restoreErr
	}
	s.restored = b
	return nil
}

type stubRegistryService struct {
	sessions        []domain.Session
	revokedSessions []string
	keys            []domain.APIKey
	createKeyFn     func(name string) (domain.APIKey, error)
	revokedKeys     []string
}

func (s *stubRegistryService) Sessions(_ context.Context) ([]domain.Session, error) {
	return s.sessions, nil
}

func (s *stubRegistryService) RevokeSession(_ context.Context, id string) error {
	s.revokedSessions = append(s.revokedSessions, id)
	return nil
}

func (s *stubRegistryService) APIKeys(_ context.Context) ([]domain.APIKey, error) {
	return s.keys, nil
}

func (s *stubRegistryService) CreateAPIKey(_ context.Context, name string) (domain.APIKey, error) {
	return s.createKeyFn(name)
}

func (s *stubRegistryService) RevokeAPIKey(_ context.Context, key string) error {
	s.revokedKeys = append(s.revokedKeys, key)
	return nil
}
