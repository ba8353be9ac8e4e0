package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/makerhub/workshop-admin/internal/core/domain"
)

func TestRegistryService_CreateAPIKey(t *testing.T) {
	keys := newStubAPIKeyRepo()
	svc := NewRegistryService(newStubSessionRepo(), keys)

	key, err := svc.CreateAPIKey(context.Background(), "ci-runner")
	if err != nil {
		t.Fatalf("CreateAPIKey failed: %v", err)
	}
	if len(key.Key) != apiKeyLength {
		t.Fatalf("expected %d-char key, got %d", apiKeyLength, len(key.Key))
	}
	for _, c := range key.Key {
		if !strings.ContainsRune(apiKeyCharset, c) {
			t.Fatalf("key contains %q outside charset", c)
		}
	}
	if key.Name != "ci-runner" {
		t.Fatalf("unexpected name %q", key.Name)
	}
	if _, ok := keys.keys[key.Key]; !ok {
		t.Fatalf("key not stored")
	}
}

func TestGenerateKey_LengthAndCharset(t *testing.T) {
	// Rejection sampling discards some bytes; the generator must still fill
	// the requested length exactly, for short and long keys alike.
	for _, n := range []int{1, apiKeyLength, 256} {
		key, err := generateKey(n)
		if err != nil {
			t.Fatalf("generateKey(%d) failed: %v", n, err)
		}
		if len(key) != n {
			t.Fatalf("generateKey(%d) returned %d characters", n, len(key))
		}
		for _, c := range key {
			if !strings.ContainsRune(apiKeyCharset, c) {
				t.Fatalf("key contains %q outside charset", c)
			}
		}
	}
}

func TestRegistryService_CreateAPIKey_EmptyName(t *testing.T) {
	keys := newStubAPIKeyRepo()
	svc := NewRegistryService(newStubSessionRepo(), keys)

	if _, err := svc.CreateAPIKey(context.Background(), "  "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if keys.inserts != 0 {
		t.Fatalf("no insert may happen for a rejected name")
	}
}

func TestRegistryService_CreateAPIKey_CollisionNotRetried(t *testing.T) {
	keys := newStubAPIKeyRepo()
	cause := errors.New("insert api key: duplicate key")
	keys.insertErr = cause
	svc := NewRegistryService(newStubSessionRepo(), keys)

	_, err := svc.CreateAPIKey(context.Background(), "ci-runner")
	if !errors.Is(err, cause) {
		t.Fatalf("expected insert error to propagate unchanged, got %v", err)
	}
	if keys.inserts != 1 {
		t.Fatalf("expected exactly one insert attempt, got %d", keys.inserts)
	}
}

func TestRegistryService_RevokeAPIKey(t *testing.T) {
	keys := newStubAPIKeyRepo()
	svc := NewRegistryService(newStubSessionRepo(), keys)

	key, err := svc.CreateAPIKey(context.Background(), "temp")
	if err != nil {
		t.Fatalf("CreateAPIKey failed: %v", err)
	}
	if err := svc.RevokeAPIKey(context.Background(), key.Key); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if err := svc.RevokeAPIKey(context.Background(), key.Key); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second revoke, got %v", err)
	}
}

func TestRegistryService_RevokeSession(t *testing.T) {
	sessions := newStubSessionRepo()
	sessions.sessions["s1"] = domain.Session{ID: "s1", Username: "alice"}
	svc := NewRegistryService(sessions, newStubAPIKeyRepo())

	if err := svc.RevokeSession(context.Background(), "s1"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if err := svc.RevokeSession(context.Background(), "s1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
