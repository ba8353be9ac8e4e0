package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/makerhub/workshop-admin/internal/api/middleware"
	"github.com/makerhub/workshop-admin/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call. A missing identity on a guarded route
// means the middleware chain was miswired, which must read as 401, never as
// an anonymous pass-through.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok || ident.Username == "" {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return ident, nil
}
