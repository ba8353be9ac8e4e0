// Package bootstrap seeds the store on first startup: the default admin
// account, the built-in role → permission entries, and the consumables
// catalog. Every step is idempotent, so restarting the process is safe.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/makerhub/workshop-admin/internal/core/domain"
	"github.com/makerhub/workshop-admin/internal/core/ports"
)

const defaultAdminUsername = "admin"

var defaultRoles = []domain.Role{
	{Name: domain.RoleAdmin, Permissions: []string{"user_management", "system_admin", "orders", "reports"}},
	{Name: domain.RoleUser, Permissions: []string{"orders"}},
	{Name: domain.RoleTech, Permissions: []string{"orders", "tech_support"}},
}

// Deps collects everything bootstrap touches.
type Deps struct {
	Users ports.UserRepository
	Roles ports.RoleRepository
	Audit ports.AuditSink
	Log   zerolog.Logger
}

// Run creates the default admin (when no admin-role user exists) and the
// default role entries. The admin password comes from configuration.
func Run(ctx context.Context, deps Deps, adminPassword string) error {
	n, err := deps.Users.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("bootstrap: count admins: %w", err)
	}

	if n == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), 12)
		if err != nil {
			return fmt.Errorf("bootstrap: hash admin password: %w", err)
		}
		admin := &domain.User{
			Username:     defaultAdminUsername,
			PasswordHash: string(hash),
			Role:         domain.RoleAdmin,
			Active:       true,
			CreatedAt:    time.Now().UTC(),
		}
		if err := deps.Users.Create(ctx, admin); err != nil {
			return fmt.Errorf("bootstrap: create admin: %w", err)
		}

		deps.Log.Info().Str("username", defaultAdminUsername).
			Msg("default admin user created, change the password after first login")
		if err := deps.Audit.Record(ctx, "Default admin user created during initialization", "system", "bootstrap"); err != nil {
			deps.Log.Error().Err(err).Msg("bootstrap audit write failed")
		}
	}

	for _, role := range defaultRoles {
		if err := deps.Roles.CreateIfMissing(ctx, role); err != nil {
			return fmt.Errorf("bootstrap: %w", err)
		}
	}

	return nil
}
