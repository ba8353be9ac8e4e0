package domain

import "time"

// Session records one issued login. It exists for administrative listing and
// revocation; token verification never consults it.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created"`
}

// APIKey is a long-lived capability token. It is not bound to a user.
type APIKey struct {
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created"`
}
