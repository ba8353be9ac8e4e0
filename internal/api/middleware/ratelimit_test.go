package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/makerhub/workshop-admin/internal/core/domain"
)

func invokeLimit(t *testing.T, limiter *RateLimiter, max int, window time.Duration) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	req.RemoteAddr = "10.0.0.7:54321"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return limiter.Limit("login", max, window)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
}

func TestRateLimiter_EnforcesWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := NewRateLimiter(client, zerolog.Nop())

	for i := 0; i < 3; i++ {
		if err := invokeLimit(t, limiter, 3, time.Minute); err != nil {
			t.Fatalf("request %d should pass, got %v", i+1, err)
		}
	}
	if err := invokeLimit(t, limiter, 3, time.Minute); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if err := invokeLimit(t, limiter, 3, time.Minute); err != nil {
		t.Fatalf("request after window should pass, got %v", err)
	}
}

func TestRateLimiter_SeparateClients(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := NewRateLimiter(client, zerolog.Nop())

	e := echo.New()
	send := func(ip string) error {
		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		return limiter.Limit("login", 1, time.Minute)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})(c)
	}

	if err := send("10.0.0.1"); err != nil {
		t.Fatalf("first client should pass, got %v", err)
	}
	if err := send("10.0.0.1"); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited for exhausted client, got %v", err)
	}
	if err := send("10.0.0.2"); err != nil {
		t.Fatalf("other client should not be affected, got %v", err)
	}
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := NewRateLimiter(client, zerolog.Nop())
	mr.Close()

	if err := invokeLimit(t, limiter, 1, time.Minute); err != nil {
		t.Fatalf("unreachable limiter must let the request through, got %v", err)
	}
}
