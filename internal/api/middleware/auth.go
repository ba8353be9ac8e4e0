package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/makerhub/workshop-admin/internal/api/metrics"
	"github.com/makerhub/workshop-admin/internal/core/domain"
	"github.com/makerhub/workshop-admin/internal/core/ports"
)

// identityKey is the echo context key holding the decoded domain.Identity.
const identityKey = "identity"

// Auth validates the bearer token and injects the decoded identity into the
// request context as a typed value.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.GuardRejectionsTotal.WithLabelValues("auth").Inc()
				return domain.ErrUnauthenticated
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.GuardRejectionsTotal.WithLabelValues("auth").Inc()
				return domain.ErrUnauthenticated
			}

			ident, err := verifier.Verify(parts[1])
			if err != nil {
				metrics.GuardRejectionsTotal.WithLabelValues("auth").Inc()
				return err
			}

			c.Set(identityKey, ident)
			return next(c)
		}
	}
}

// IdentityFromContext returns the identity stored by Auth, if any.
func IdentityFromContext(c echo.Context) (domain.Identity, bool) {
	ident, ok := c.Get(identityKey).(domain.Identity)
	return ident, ok
}

// SetIdentity stores an identity in the context. Exposed for handler tests.
func SetIdentity(c echo.Context, ident domain.Identity) {
	c.Set(identityKey, ident)
}
