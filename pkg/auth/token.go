package auth

import (
	"time"
)

// Token is an opaque credential issued by the login endpoint. The endpoint
// does not report expiry, so the lifetime is tracked client-side from the
// moment of issuance. Tokens are immutable; a refresh produces a new one.
type Token struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Valid reports whether the token can still authorize calls at now.
func (t Token) Valid(now time.Time) bool {
	return t.Value != "" && now.Before(t.ExpiresAt)
}

// Usable reports whether the token is safe to attach to a request at now.
// The margin guards against the token expiring between validation and use.
func (t Token) Usable(now time.Time, margin time.Duration) bool {
	return t.Value != "" && now.Before(t.ExpiresAt.Add(-margin))
}
