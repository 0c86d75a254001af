package graphql

import "net/http"

// HTTPDoer is the minimal client interface shared across the gateway.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client executes GraphQL operations.
type Client struct {
	doer HTTPDoer
}

// NewClient wraps an HTTPDoer (e.g. *http.Client).
func NewClient(doer HTTPDoer) *Client {
	return &Client{doer: doer}
}

// Execute sends a built request.
func (c *Client) Execute(req *http.Request) (*http.Response, error) {
	return c.doer.Do(req)
}
