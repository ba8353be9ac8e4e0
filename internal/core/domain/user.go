package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
	RoleTech  = "tech"
)

// ValidRole reports whether r is one of the enumerated roles.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleUser, RoleTech:
		return true
	}
	return false
}

// User models an account in the credential store. Usernames are the identity;
// a deactivated user keeps its row but cannot authenticate.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the decoded token payload threaded from the authentication
// guard into handlers. SessionID ties the token back to its login session.
type Identity struct {
	Username  string
	Role      string
	SessionID string
}

// UserExport is the row shape for the admin export/import endpoints.
// Password hashes never travel through export.
type UserExport struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}

// UserImport is one row of a bulk import. A nil Active defaults to active;
// imports are declarative, there is no "leave unchanged".
type UserImport struct {
	Username string
	Role     string
	Active   *bool
}
