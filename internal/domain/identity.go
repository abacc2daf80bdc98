package domain

// Identity is the authenticated caller resolved from a validated token.
// It is an immutable per-request value and is never persisted.
type Identity struct {
	Subject string
	Role    Role
}
