package handler

import (
	"time"

	"github.com/makerhub/workshop-admin/internal/core/domain"
)

type importUserRow struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Active   *bool  `json:"active"`
}

type importUsersRequest struct {
	Users []importUserRow `json:"users"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin user tech"`
}

type updateStatusRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

type announcementRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type apiKeyRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type apiKeyResponse struct {
	Message string `json:"message"`
	Key     string `json:"key"`
}

// backupUser is the wire shape of a user inside a backup payload. Unlike the
// public user JSON it carries the password hash, so restoring a backup
// reproduces working credentials.
type backupUser struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Role         string `json:"role"`
	Active       bool   `json:"active"`
	CreatedAt    int64  `json:"created_at"`
}

type backupRole struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

type backupSession struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Created  int64  `json:"created"`
}

type backupAPIKey struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Created int64  `json:"created"`
}

type backupPayload struct {
	Users         []backupUser          `json:"users"`
	Roles         []backupRole          `json:"roles"`
	Sessions      []backupSession       `json:"sessions"`
	APIKeys       []backupAPIKey        `json:"apikeys"`
	Announcements []domain.Announcement `json:"announcements"`
	Logs          []domain.LogEntry     `json:"logs"`
}

func backupToWire(b *domain.Backup) backupPayload {
	p := backupPayload{
		Announcements: b.Announcements,
		Logs:          b.Logs,
	}
	for _, u := range b.Users {
		p.Users = append(p.Users, backupUser{
			Username:     u.Username,
			PasswordHash: u.PasswordHash,
			Role:         u.Role,
			Active:       u.Active,
			CreatedAt:    u.CreatedAt.Unix(),
		})
	}
	for _, r := range b.Roles {
		p.Roles = append(p.Roles, backupRole{Role: r.Name, Permissions: r.Permissions})
	}
	for _, s := range b.Sessions {
		p.Sessions = append(p.Sessions, backupSession{ID: s.ID, Username: s.Username, Created: s.CreatedAt.Unix()})
	}
	for _, k := range b.APIKeys {
		p.APIKeys = append(p.APIKeys, backupAPIKey{Key: k.Key, Name: k.Name, Created: k.CreatedAt.Unix()})
	}
	return p
}

func backupFromWire(p *backupPayload) *domain.Backup {
	b := &domain.Backup{
		Announcements: p.Announcements,
		Logs:          p.Logs,
	}
	for _, u := range p.Users {
		b.Users = append(b.Users, domain.User{
			Username:     u.Username,
			PasswordHash: u.PasswordHash,
			Role:         u.Role,
			Active:       u.Active,
			CreatedAt:    time.Unix(u.CreatedAt, 0).UTC(),
		})
	}
	for _, r := range p.Roles {
		b.Roles = append(b.Roles, domain.Role{Name: r.Role, Permissions: r.Permissions})
	}
	for _, s := range p.Sessions {
		b.Sessions = append(b.Sessions, domain.Session{ID: s.ID, Username: s.Username, CreatedAt: time.Unix(s.Created, 0).UTC()})
	}
	for _, k := range p.APIKeys {
		b.APIKeys = append(b.APIKeys, domain.APIKey{Key: k.Key, Name: k.Name, CreatedAt: time.Unix(k.Created, 0).UTC()})
	}
	return b
}
