package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/makerhub/workshop-admin/internal/core/domain"
	"github.com/makerhub/workshop-admin/internal/core/service"
)

func invokeAuth(t *testing.T, authorization string) (domain.Identity, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var ident domain.Identity
	var present bool
	handler := Auth(service.NewTokenService("secret", time.Hour))(func(c echo.Context) error {
		ident, present = IdentityFromContext(c)
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return ident, present, err
}

func TestAuth_ValidToken(t *testing.T) {
	token, err := service.NewTokenService("secret", time.Hour).Issue("alice", domain.RoleAdmin, "sess-9")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	ident, present, err := invokeAuth(t, "Bearer "+token)
	if err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
	if !present {
		t.Fatalf("identity not stored in context")
	}
	if ident.Username != "alice" || ident.Role != domain.RoleAdmin || ident.SessionID != "sess-9" {
		t.Fatalf("unexpected identity: %+v", ident)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	if _, _, err := invokeAuth(t, ""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	for _, header := range []string{"Token abc", "Bearer", "justatoken"} {
		if _, _, err := invokeAuth(t, header); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("header %q: expected ErrUnauthenticated, got %v", header, err)
		}
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	forged, err := service.NewTokenService("other-secret", time.Hour).Issue("mallory", domain.RoleAdmin, "")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, _, err := invokeAuth(t, "Bearer "+forged); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
