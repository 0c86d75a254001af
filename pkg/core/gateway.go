package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/kamdentle/valuation-gateway/pkg/auth"
	"github.com/kamdentle/valuation-gateway/pkg/config"
	"github.com/kamdentle/valuation-gateway/pkg/errors"
)

// TokenSource supplies a valid token, refreshing as needed.
type TokenSource interface {
	GetValid(ctx context.Context) (auth.Token, error)
	Invalidate(tok auth.Token)
}

// QueryExecutor runs one selected document against the downstream endpoint.
type QueryExecutor interface {
	Execute(ctx context.Context, token auth.Token, doc Document, variables map[string]interface{}) (string, error)
}

// Gateway is the façade used by the calling application. Each call walks
// token acquisition, routing and execution; the shared token cache is the
// only state carried across calls.
type Gateway struct {
	tokens   TokenSource
	router   *Router
	executor QueryExecutor
	logger   *slog.Logger
}

// settings collects construction-time overrides.
type settings struct {
	httpClient *http.Client
	now        func() time.Time
	logger     *slog.Logger
}

// Option configures gateway construction.
type Option func(*settings)

// WithHTTPClient injects a shared HTTP client for both downstream endpoints.
func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) {
		s.httpClient = c
	}
}

// WithClock replaces the token cache's time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

// WithLogger enables diagnostic logging. Errors are still returned to the
// caller either way; nothing is logged-and-discarded.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// New wires a Gateway from config: one long-lived HTTP client shared by the
// token issuer and the query executor, a token store with the configured
// TTL and safety margin, and a router over the two query documents.
func New(cfg *config.Gateway, opts ...Option) (*Gateway, error) {
	if cfg == nil {
		return nil, errors.WrapError(
			fmt.Errorf("config is nil"),
			errors.ErrConfiguration,
			"create gateway",
		)
	}

	var st settings
	for _, opt := range opts {
		opt(&st)
	}

	httpClient := st.httpClient
	if httpClient == nil {
		timeout := 30 * time.Second
		if cfg.HTTP != nil && cfg.HTTP.TimeoutSeconds > 0 {
			timeout = time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	ttl := time.Duration(cfg.Auth.TokenTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	margin := time.Duration(cfg.Auth.SafetyMarginSeconds) * time.Second
	if margin <= 0 {
		margin = 5 * time.Second
	}

	var issuerOpts []auth.IssuerOption
	var storeOpts []auth.StoreOption
	if st.now != nil {
		issuerOpts = append(issuerOpts, auth.WithIssuerClock(st.now))
		storeOpts = append(storeOpts, auth.WithClock(st.now))
	}

	issuer := auth.NewIssuer(cfg.Auth.LoginURL, cfg.Auth.Username, cfg.Auth.Password, httpClient, issuerOpts...)

	logger := st.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Gateway{
		tokens:   auth.NewStore(issuer, ttl, margin, storeOpts...),
		router:   NewRouter(&cfg.GraphQL),
		executor: NewExecutor(cfg.GraphQL.Endpoint, httpClient),
		logger:   logger,
	}, nil
}

// FetchValuation is the caller-facing operation: look up a valuation by
// vehicle identifier with an optional mileage filter.
func (g *Gateway) FetchValuation(ctx context.Context, identifier string, mileage *int) (string, error) {
	return g.Fetch(ctx, Request{UVC: identifier, Mileage: mileage})
}

// Fetch obtains a valid token, selects the query document and executes it,
// returning the raw result subtree. If the downstream rejects the token
// (401/403), the cached token is invalidated and the query retried exactly
// once with a fresh one.
func (g *Gateway) Fetch(ctx context.Context, req Request) (string, error) {
	tok, err := g.tokens.GetValid(ctx)
	if err != nil {
		return "", err
	}

	doc, variables := g.router.Select(req)
	g.logger.Debug("executing valuation query", "document", doc.Name, "uvc", req.UVC)

	result, err := g.executor.Execute(ctx, tok, doc, variables)
	if err == nil {
		return result, nil
	}

	if !authRejected(err) {
		return "", err
	}

	// The downstream revoked a token we still considered valid. Drop it,
	// refresh once and retry once; a second rejection is final.
	g.logger.Debug("token rejected downstream, refreshing once", "document", doc.Name)
	g.tokens.Invalidate(tok)

	tok, err = g.tokens.GetValid(ctx)
	if err != nil {
		return "", err
	}

	return g.executor.Execute(ctx, tok, doc, variables)
}

// authRejected reports whether the executor failed with an authorization
// status from the downstream endpoint.
func authRejected(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden
}
