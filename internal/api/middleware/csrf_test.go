package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/makerhub/workshop-admin/internal/core/domain"
)

func invokeCSRF(t *testing.T, development bool, method, origin, referer string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "http://api.internal/api/admin/users", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return CSRF(development)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
}

func TestCSRF_ReadMethodsPass(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		if err := invokeCSRF(t, false, method, "", ""); err != nil {
			t.Fatalf("%s without origin should pass, got %v", method, err)
		}
	}
}

func TestCSRF_DevelopmentBypass(t *testing.T) {
	if err := invokeCSRF(t, true, http.MethodPost, "http://evil.example", ""); err != nil {
		t.Fatalf("development mode should pass, got %v", err)
	}
}

func TestCSRF_SameOrigin(t *testing.T) {
	if err := invokeCSRF(t, false, http.MethodPost, "http://api.internal", ""); err != nil {
		t.Fatalf("same-origin POST should pass, got %v", err)
	}
}

func TestCSRF_RefererFallback(t *testing.T) {
	if err := invokeCSRF(t, false, http.MethodDelete, "", "http://api.internal/admin.html"); err != nil {
		t.Fatalf("same-host referer should pass, got %v", err)
	}
}

func TestCSRF_CrossOriginRejected(t *testing.T) {
	err := invokeCSRF(t, false, http.MethodPost, "http://evil.example", "")
	if !errors.Is(err, domain.ErrCSRFRejected) {
		t.Fatalf("expected ErrCSRFRejected, got %v", err)
	}
}

func TestCSRF_NoHeadersRejected(t *testing.T) {
	if err := invokeCSRF(t, false, http.MethodPost, "", ""); !errors.Is(err, domain.ErrCSRFRejected) {
		t.Fatalf("expected ErrCSRFRejected, got %v", err)
	}
}
