package ports

import (
	"context"

	"github.com/makerhub/workshop-admin/internal/core/domain"
)

// TokenService issues and verifies stateless bearer tokens.
type TokenService interface {
	Issue(username, role, sessionID string) (string, error)
	Verify(token string) (domain.Identity, error)
}

// TokenVerifier is the read side of TokenService, all the authentication
// guard needs.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// AuthService covers the self-service authentication operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Logout(ctx context.Context, ident domain.Identity) error
	ChangePassword(ctx context.Context, username, current, next string) error
}

// AdminService covers role-gated administration of users, roles, logs,
// announcements and backups.
type AdminService interface {
	Register(ctx context.Context, username, password, role string) (*domain.User, error)
	ExportUsers(ctx context.Context) ([]domain.UserExport, error)
	ImportUsers(ctx context.Context, rows []domain.UserImport) error
	UpdateRole(ctx context.Context, actor, target, role string) error
	SetActive(ctx context.Context, actor, target string, active bool) error
	ResetPassword(ctx context.Context, actor, target, password string) error
	DeleteUser(ctx context.Context, actor, target string) error

	Roles(ctx context.Context) (map[string][]string, error)
	PutRoles(ctx context.Context, roles map[string][]string) error

	RecentLogs(ctx context.Context) ([]string, error)

	Announcements(ctx context.Context) ([]domain.Announcement, error)
	PostAnnouncement(ctx context.Context, text string) (domain.Announcement, error)
	DeleteAnnouncement(ctx context.Context, ts int64) error

	Backup(ctx context.Context) (*domain.Backup, error)
	Restore(ctx context.Context, b *domain.Backup) error
}

// RegistryService lists and revokes sessions and API keys.
type RegistryService interface {
	Sessions(ctx context.Context) ([]domain.Session, error)
	RevokeSession(ctx context.Context, id string) error
	APIKeys(ctx context.Context) ([]domain.APIKey, error)
	CreateAPIKey(ctx context.Context, name string) (domain.APIKey, error)
	RevokeAPIKey(ctx context.Context, key string) error
}

// AuditSink records one message per successful state-changing action.
type AuditSink interface {
	Record(ctx context.Context, action, actor, source string) error
}

// OrderService persists bulk order intakes.
type OrderService interface {
	BulkCreate(ctx context.Context, orders []domain.OrderInput) error
}

// CatalogService serves the consumables catalog.
type CatalogService interface {
	List(ctx context.Context) ([]domain.Consumable, error)
}

// SettingsService manages per-user settings.
type SettingsService interface {
	Get(ctx context.Context, username string) (domain.Settings, error)
	Update(ctx context.Context, username string, s domain.Settings) (domain.Settings, error)
	Reset(ctx context.Context, username string) error
}
