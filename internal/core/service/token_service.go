package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/makerhub/workshop-admin/internal/core/domain"
)

// TokenService issues and verifies HS256 bearer tokens. Tokens are stateless:
// verification checks signature and expiry only, never the session registry,
// so a revoked session does not invalidate an already-issued token.
type TokenService struct {
	secret string
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: secret, ttl: ttl}
}

// Issue signs a token carrying the identity and its login session id.
func (s *TokenService) Issue(username, role, sessionID string) (string, error) {
	if s.secret == "" {
		return "", domain.ErrServerMisconfigured
	}

	claims := jwt.MapClaims{
		"username": username,
		"role":     role,
		"sid":      sessionID,
		"exp":      time.Now().Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

// Verify parses and validates a token and returns the embedded identity.
func (s *TokenService) Verify(token string) (domain.Identity, error) {
	if s.secret == "" {
		return domain.Identity{}, domain.ErrServerMisconfigured
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !tkn.Valid {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	sid, _ := claims["sid"].(string)
	if username == "" || role == "" {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	return domain.Identity{Username: username, Role: role, SessionID: sid}, nil
}
