package service

import (
	"context"
	"fmt"

	"github.com/makerhub/workshop-admin/internal/core/domain"
)

// In-memory doubles shared by the service tests.

type stubUserRepo struct {
	users       map[string]*domain.User
	importCalls [][]domain.UserImport
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := r.users[user.Username]; exists {
		return domain.ErrUserExists
	}
	r.users[user.Username] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, username, role string) error {
	u, ok := r.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) SetActive(_ context.Context, username string, active bool) error {
	u, ok := r.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Active = active
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, username, passwordHash string) error {
	u, ok := r.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, username string) error {
	if _, ok := r.users[username]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, username)
	return nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) ImportAll(_ context.Context, rows []domain.UserImport) error {
	r.importCalls = append(r.importCalls, rows)
	for _, row := range rows {
		active := true
		if row.Active != nil {
			active = *row.Active
		}
		if u, ok := r.users[row.Username]; ok {
			u.Role = row.Role
			u.Active = active
			continue
		}
		r.users[row.Username] = &domain.User{Username: row.Username, Role: row.Role, Active: active}
	}
	return nil
}

type stubSessionRepo struct {
	sessions map[string]domain.Session
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[string]domain.Session)}
}

func (r *stubSessionRepo) Create(_ context.Context, session domain.Session) error {
	if _, exists := r.sessions[session.ID]; exists {
		return fmt.Errorf("insert session: duplicate id %s", session.ID)
	}
	r.sessions[session.ID] = session
	return nil
}

func (r *stubSessionRepo) List(_ context.Context, _ int64) ([]domain.Session, error) {
	out := make([]domain.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out, nil
}

func (r *stubSessionRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.sessions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

type stubAPIKeyRepo struct {
	keys      map[string]domain.APIKey
	insertErr error
	inserts   int
}

func newStubAPIKeyRepo() *stubAPIKeyRepo {
	return &stubAPIKeyRepo{keys: make(map[string]domain.APIKey)}
}

func (r *stubAPIKeyRepo) Insert(_ context.Context, key domain.APIKey) error {
	r.inserts++
	if r.insertErr != nil {
		return r.insertErr
	}
	if _, exists := r.keys[key.Key]; exists {
		return fmt.Errorf("insert api key: duplicate key")
	}
	r.keys[key.Key] = key
	return nil
}

func (r *stubAPIKeyRepo) List(_ context.Context, _ int64) ([]domain.APIKey, error) {
	out := make([]domain.APIKey, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, k)
	}
	return out, nil
}

func (r *stubAPIKeyRepo) Delete(_ context.Context, key string) error {
	if _, ok := r.keys[key]; !ok {
		return domain.ErrNotFound
	}
	delete(r.keys, key)
	return nil
}

type stubLogRepo struct {
	entries []domain.LogEntry
	failErr error
}

func (r *stubLogRepo) Append(_ context.Context, message string) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.entries = append(r.entries, domain.LogEntry{TS: int64(len(r.entries) + 1), Message: message})
	return nil
}

func (r *stubLogRepo) Recent(_ context.Context, limit int64) ([]domain.LogEntry, error) {
	out := make([]domain.LogEntry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

type stubAnnouncementRepo struct {
	anns map[int64]domain.Announcement
}

func newStubAnnouncementRepo() *stubAnnouncementRepo {
	return &stubAnnouncementRepo{anns: make(map[int64]domain.Announcement)}
}

func (r *stubAnnouncementRepo) List(_ context.Context, _ int64) ([]domain.Announcement, error) {
	out := make([]domain.Announcement, 0, len(r.anns))
	for _, a := range r.anns {
		out = append(out, a)
	}
	return out, nil
}

func (r *stubAnnouncementRepo) Create(_ context.Context, a domain.Announcement) error {
	r.anns[a.TS] = a
	return nil
}

func (r *stubAnnouncementRepo) Delete(_ context.Context, ts int64) error {
	if _, ok := r.anns[ts]; !ok {
		return domain.ErrNotFound
	}
	delete(r.anns, ts)
	return nil
}

type stubBackupRepo struct {
	dump     *domain.Backup
	restored *domain.Backup
}

func (r *stubBackupRepo) Dump(_ context.Context) (*domain.Backup, error) {
	return r.dump, nil
}

func (r *stubBackupRepo) Restore(_ context.Context, b *domain.Backup) error {
	r.restored = b
	return nil
}
