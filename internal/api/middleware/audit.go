package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/makerhub/workshop-admin/internal/api/metrics"
	"github.com/makerhub/workshop-admin/internal/core/ports"
)

// Audit records one entry per successful (2xx) pass through the wrapped
// handler. Audit failures are logged and counted but never fail the request.
func Audit(sink ports.AuditSink, log zerolog.Logger, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil {
				return err
			}

			status := c.Response().Status
			if status < http.StatusOK || status >= http.StatusMultipleChoices {
				return nil
			}

			actor := ""
			if ident, ok := IdentityFromContext(c); ok {
				actor = ident.Username
			}
			if err := sink.Record(c.Request().Context(), action, actor, c.RealIP()); err != nil {
				metrics.AuditWritesTotal.WithLabelValues("error").Inc()
				log.Error().Err(err).Str("action", action).Msg("audit write failed")
				return nil
			}
			metrics.AuditWritesTotal.WithLabelValues("ok").Inc()
			return nil
		}
	}
}
