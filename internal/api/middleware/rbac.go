package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/makerhub/workshop-admin/internal/api/metrics"
	"github.com/makerhub/workshop-admin/internal/core/domain"
)

// RBAC enforces role-based access control. Must run after Auth.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := IdentityFromContext(c)
			if !ok {
				metrics.GuardRejectionsTotal.WithLabelValues("rbac").Inc()
				return domain.ErrUnauthenticated
			}
			if _, ok := allowed[ident.Role]; !ok {
				metrics.GuardRejectionsTotal.WithLabelValues("rbac").Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
