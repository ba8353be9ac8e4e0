package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/makerhub/workshop-admin/internal/api/metrics"
	"github.com/makerhub/workshop-admin/internal/core/domain"
)

// CSRF rejects state-changing requests whose Origin (or, failing that,
// Referer) host does not match the request's Host header. Read-only methods
// always pass, and development mode disables the check entirely.
func CSRF(development bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}
			if development {
				return next(c)
			}

			host := c.Request().Host
			if sameHost(c.Request().Header.Get("Origin"), host) ||
				sameHost(c.Request().Header.Get("Referer"), host) {
				return next(c)
			}

			metrics.GuardRejectionsTotal.WithLabelValues("csrf").Inc()
			return domain.ErrCSRFRejected
		}
	}
}

// sameHost reports whether the URL in raw has exactly the given host.
// An empty or unparsable value never matches.
func sameHost(raw, host string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Host == host
}
