package auth

import (
	"fmt"
	"net/http"

	"github.com/kamdentle/valuation-gateway/pkg/errors"
)

// TokenAuth implements the Handler interface for opaque token authentication.
// The downstream endpoint expects "Token <value>", not the Bearer scheme.
type TokenAuth struct {
	Token string // The opaque token value
}

// NewTokenAuth creates a new token authentication handler
func NewTokenAuth(token string) *TokenAuth {
	return &TokenAuth{
		Token: token,
	}
}

// ApplyAuth adds the token to the Authorization header
func (a *TokenAuth) ApplyAuth(req *http.Request) error {
	// Validate inputs
	if a.Token == "" {
		return errors.WrapError(
			fmt.Errorf("token is required"),
			errors.ErrConfiguration,
			"apply token auth",
		)
	}

	req.Header.Set("Authorization", "Token "+a.Token)

	return nil
}

// String returns a string representation of this auth method for testing
func (a *TokenAuth) String() string {
	// There is no need to actually put the actual token
	return "TokenAuth(token: [REDACTED])"
}
