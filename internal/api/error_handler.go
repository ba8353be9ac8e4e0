package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/makerhub/workshop-admin/internal/api/handler"
	"github.com/makerhub/workshop-admin/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *handler.ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, errorResponse{Error: "validation failed", Details: ve.Details})
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrServerMisconfigured):
		return http.StatusInternalServerError, "server misconfigured: missing JWT secret"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusForbidden, "invalid or expired token"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "insufficient permissions"
	case errors.Is(err, domain.ErrCSRFRejected):
		return http.StatusForbidden, "cross-origin request rejected"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "too many requests, please try again later"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrSelfModification):
		return http.StatusBadRequest, "cannot modify own account"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
