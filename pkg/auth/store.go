package auth

import (
	"context"
	"sync"
	"time"

	"github.com/kamdentle/valuation-gateway/pkg/errors"
)

// Store holds at most one cached token and refreshes it lazily on demand.
// N concurrent callers hitting an expired window produce exactly one call
// to the issuer; all of them receive the same token (or the same error).
type Store struct {
	issuer TokenIssuer
	ttl    time.Duration
	margin time.Duration
	now    func() time.Time

	mu       sync.Mutex
	current  Token
	inflight *refreshCall
}

// refreshCall is the single-flight rendezvous for one refresh attempt.
// done is closed once tok/err are set; waiters select against it.
type refreshCall struct {
	done chan struct{}
	tok  Token
	err  error
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock replaces the time source. Used by tests to control expiry.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a Store that issues tokens with the given fixed ttl and
// treats a cached token as stale once it is within margin of expiry.
func NewStore(issuer TokenIssuer, ttl, margin time.Duration, opts ...StoreOption) *Store {
	s := &Store{
		issuer: issuer,
		ttl:    ttl,
		margin: margin,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetValid returns the cached token if it is still usable, otherwise joins
// the single in-flight refresh (starting one if needed) and returns its
// outcome. A failed refresh leaves any previous token in place so the next
// call retries fresh. Cancelled waiters return without disturbing the
// refresh; other waiters still receive its result.
func (s *Store) GetValid(ctx context.Context) (Token, error) {
	s.mu.Lock()
	if s.current.Usable(s.now(), s.margin) {
		tok := s.current
		s.mu.Unlock()
		return tok, nil
	}

	call := s.inflight
	if call == nil {
		call = &refreshCall{done: make(chan struct{})}
		s.inflight = call
		// The refresh outlives any single waiter; detach it from the
		// triggering caller's cancellation.
		go s.runRefresh(context.WithoutCancel(ctx), call)
	}
	s.mu.Unlock()

	select {
	case <-call.done:
		if call.err != nil {
			return Token{}, call.err
		}
		return call.tok, nil
	case <-ctx.Done():
		return Token{}, errors.WrapError(ctx.Err(), errors.ErrCancelled, "waiting for token refresh")
	}
}

// runRefresh performs one issuer call and publishes the result to waiters.
func (s *Store) runRefresh(ctx context.Context, call *refreshCall) {
	value, issuedAt, err := s.issuer.Issue(ctx)

	s.mu.Lock()
	if err != nil {
		call.err = err
	} else {
		tok := Token{
			Value:     value,
			IssuedAt:  issuedAt,
			ExpiresAt: issuedAt.Add(s.ttl),
		}
		s.current = tok
		call.tok = tok
	}
	s.inflight = nil
	s.mu.Unlock()

	close(call.done)
}

// Invalidate drops the cached token, but only if it is still the one the
// caller observed. This reconciles client-side caching with server-side
// revocation: a token the downstream rejected is discarded so the next
// GetValid refreshes, without clobbering a newer token some other caller
// already fetched.
func (s *Store) Invalidate(tok Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.Value == tok.Value {
		s.current = Token{}
	}
}
