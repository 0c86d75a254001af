package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kamdentle/valuation-gateway/pkg/errors"
)

// TokenIssuer performs the login call and returns a fresh token value.
type TokenIssuer interface {
	Issue(ctx context.Context) (value string, issuedAt time.Time, err error)
}

// Issuer implements TokenIssuer against the REST login endpoint.
// It does not retry; a failed login surfaces to the caller so the next
// logical request can try again.
type Issuer struct {
	loginURL string
	username string
	password string
	doer     HTTPDoer
	now      func() time.Time
}

// IssuerOption configures an Issuer.
type IssuerOption func(*Issuer)

// WithIssuerClock replaces the time source used to stamp issuedAt.
func WithIssuerClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) {
		i.now = now
	}
}

// NewIssuer creates an Issuer for the given login endpoint and credentials.
// The HTTPDoer is shared and long-lived, not constructed per call.
func NewIssuer(loginURL, username, password string, doer HTTPDoer, opts ...IssuerOption) *Issuer {
	i := &Issuer{
		loginURL: loginURL,
		username: username,
		password: password,
		doer:     doer,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// loginRequest is the JSON body sent to the login endpoint
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Issue posts the configured credentials and returns the raw token string
// plus the moment of issuance. Network errors, non-2xx statuses and empty
// bodies all map to ErrTokenAcquisition.
func (i *Issuer) Issue(ctx context.Context) (string, time.Time, error) {
	body, err := json.Marshal(loginRequest{Username: i.username, Password: i.password})
	if err != nil {
		return "", time.Time{}, errors.WrapError(err, errors.ErrTokenAcquisition, "encode login request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.loginURL, bytes.NewReader(body))
	if err != nil {
		return "", time.Time{}, errors.WrapError(err, errors.ErrTokenAcquisition, "create login request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := i.doer.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", time.Time{}, errors.WrapError(ctx.Err(), errors.ErrCancelled, "login request")
		}
		return "", time.Time{}, errors.WrapError(err, errors.ErrTokenAcquisition, "login request")
	}
	defer resp.Body.Close()

	issuedAt := i.now()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", time.Time{}, errors.WrapError(err, errors.ErrTokenAcquisition, "read login response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", time.Time{}, errors.WrapError(
			fmt.Errorf("login returned status %d: %s", resp.StatusCode, raw),
			errors.ErrTokenAcquisition,
			"login request",
		)
	}

	// The endpoint returns the token as the raw body, sometimes wrapped in
	// JSON string quotes. Normalize both forms.
	value := strings.TrimSpace(string(raw))
	value = strings.Trim(value, `"`)
	if value == "" {
		return "", time.Time{}, errors.WrapError(
			fmt.Errorf("login returned an empty token"),
			errors.ErrTokenAcquisition,
			"login response",
		)
	}

	return value, issuedAt, nil
}

// String returns a string representation of this issuer for diagnostics
func (i *Issuer) String() string {
	return fmt.Sprintf("Issuer(username: %s, url: %s)", i.username, i.loginURL)
}
