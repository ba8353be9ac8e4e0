package ports

import (
	"context"

	"github.com/makerhub/workshop-admin/internal/core/domain"
)

// UserRepository is the credential store. It exclusively owns user rows.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
	UpdateRole(ctx context.Context, username, role string) error
	SetActive(ctx context.Context, username string, active bool) error
	UpdatePassword(ctx context.Context, username, passwordHash string) error
	Delete(ctx context.Context, username string) error
	CountByRole(ctx context.Context, role string) (int64, error)
	// ImportAll upserts every row inside one transaction; on any failure
	// nothing is applied.
	ImportAll(ctx context.Context, rows []domain.UserImport) error
}

// RoleRepository persists the role → permissions mapping.
type RoleRepository interface {
	List(ctx context.Context) ([]domain.Role, error)
	Upsert(ctx context.Context, role domain.Role) error
	CreateIfMissing(ctx context.Context, role domain.Role) error
}

// SessionRepository tracks issued login sessions for listing and revocation.
type SessionRepository interface {
	Create(ctx context.Context, session domain.Session) error
	List(ctx context.Context, limit int64) ([]domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// APIKeyRepository tracks long-lived API keys.
type APIKeyRepository interface {
	Insert(ctx context.Context, key domain.APIKey) error
	List(ctx context.Context, limit int64) ([]domain.APIKey, error)
	Delete(ctx context.Context, key string) error
}

// LogRepository is the append-only audit store.
type LogRepository interface {
	Append(ctx context.Context, message string) error
	Recent(ctx context.Context, limit int64) ([]domain.LogEntry, error)
}

// AnnouncementRepository persists admin broadcasts.
type AnnouncementRepository interface {
	List(ctx context.Context, limit int64) ([]domain.Announcement, error)
	Create(ctx context.Context, a domain.Announcement) error
	Delete(ctx context.Context, ts int64) error
}

// OrderRepository persists order lines. Bulk inserts are all-or-nothing.
type OrderRepository interface {
	InsertBulk(ctx context.Context, orders []domain.Order) error
}

// SettingsRepository persists per-user settings.
type SettingsRepository interface {
	Get(ctx context.Context, username string) (domain.Settings, error)
	Upsert(ctx context.Context, s domain.Settings) error
	Delete(ctx context.Context, username string) error
}

// CatalogRepository holds the consumables catalog.
type CatalogRepository interface {
	List(ctx context.Context) ([]domain.Consumable, error)
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, items []domain.Consumable) error
}

// BackupRepository dumps and restores every administrative collection.
// Restore runs inside one transaction and rolls back fully on failure.
type BackupRepository interface {
	Dump(ctx context.Context) (*domain.Backup, error)
	Restore(ctx context.Context, b *domain.Backup) error
}
