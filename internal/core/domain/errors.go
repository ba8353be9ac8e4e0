package domain

import "errors"

// Sentinel errors for the whole service. The HTTP layer owns the mapping to
// status codes; everything below it works in terms of these values.
var (
	// ErrUnauthenticated means the request carried no usable credential.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrServerMisconfigured means a required secret (the JWT signing key) is absent.
	ErrServerMisconfigured = errors.New("server misconfigured: missing signing secret")

	// ErrInvalidToken means the bearer token failed signature or expiry checks.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrForbidden means the authenticated identity lacks the required role.
	ErrForbidden = errors.New("insufficient permissions")

	// ErrCSRFRejected means a state-changing request failed the origin check.
	ErrCSRFRejected = errors.New("cross-origin request rejected")

	// ErrRateLimited means the client exceeded its request budget for the window.
	ErrRateLimited = errors.New("too many requests")

	// ErrInvalidCredentials covers unknown users, wrong passwords and
	// deactivated accounts alike, so login failures are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserExists means the username is already taken.
	ErrUserExists = errors.New("user already exists")

	// ErrUserNotFound means the target username does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrNotFound covers missing sessions, API keys and announcements.
	ErrNotFound = errors.New("not found")

	// ErrSelfModification means an actor targeted their own account with a
	// role change, status toggle, password reset or delete.
	ErrSelfModification = errors.New("cannot modify own account")

	// ErrValidation means the request payload failed field validation.
	ErrValidation = errors.New("validation failed")
)
