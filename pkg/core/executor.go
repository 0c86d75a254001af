package core

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/kamdentle/valuation-gateway/pkg/auth"
	"github.com/kamdentle/valuation-gateway/pkg/errors"
	"github.com/kamdentle/valuation-gateway/pkg/transport/graphql"
)

// StatusError reports a non-success HTTP status from the query endpoint.
// It unwraps to ErrQueryExecution so callers can classify it either way.
type StatusError struct {
	Document   string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("document %q returned HTTP %d: %s", e.Document, e.StatusCode, e.Status)
}

func (e *StatusError) Unwrap() error {
	return errors.ErrQueryExecution
}

// graphqlResponse is the standard GraphQL envelope.
type graphqlResponse struct {
	Data   map[string]interface{} `json:"data"`
	Errors []graphqlError         `json:"errors,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// Executor runs one query document against the GraphQL endpoint and extracts
// the result subtree. It holds no per-call state; concurrent use is safe.
type Executor struct {
	endpoint string
	client   *graphql.Client
}

// NewExecutor creates an Executor over a shared, long-lived HTTPDoer.
func NewExecutor(endpoint string, doer graphql.HTTPDoer) *Executor {
	return &Executor{
		endpoint: endpoint,
		client:   graphql.NewClient(doer),
	}
}

// Execute sends the document with the given token and variables, then
// navigates the response data down the document's response path and returns
// that subtree re-serialized as a string. Transport failures, non-success
// statuses, malformed JSON, GraphQL errors and a missing response path all
// map to ErrQueryExecution; no partial result is ever returned.
func (e *Executor) Execute(ctx context.Context, token auth.Token, doc Document, variables map[string]interface{}) (string, error) {
	builder := graphql.NewBuilder(e.endpoint, doc.Query, variables, nil, auth.NewTokenAuth(token.Value))

	req, err := builder.Build(ctx)
	if err != nil {
		return "", errors.WrapError(err, errors.ErrQueryExecution, fmt.Sprintf("build %s request", doc.Name))
	}

	resp, err := e.client.Execute(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", errors.WrapError(ctx.Err(), errors.ErrCancelled, fmt.Sprintf("execute %s", doc.Name))
		}
		return "", errors.WrapError(err, errors.ErrQueryExecution, fmt.Sprintf("execute %s", doc.Name))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused
		io.Copy(io.Discard, resp.Body)
		return "", &StatusError{
			Document:   doc.Name,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.WrapError(err, errors.ErrQueryExecution, fmt.Sprintf("read %s response", doc.Name))
	}

	var payload graphqlResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", errors.WrapError(err, errors.ErrQueryExecution, fmt.Sprintf("decode %s response", doc.Name))
	}

	if len(payload.Errors) > 0 {
		return "", errors.WrapError(
			fmt.Errorf("graphql error: %s", payload.Errors[0].Message),
			errors.ErrQueryExecution,
			fmt.Sprintf("execute %s", doc.Name),
		)
	}

	if payload.Data == nil {
		return "", errors.WrapError(
			fmt.Errorf("response has no data"),
			errors.ErrQueryExecution,
			fmt.Sprintf("execute %s", doc.Name),
		)
	}

	node, ok := ExtractField(payload.Data, doc.ResponsePath)
	if !ok {
		return "", errors.WrapError(
			fmt.Errorf("response path %q not found", doc.ResponsePath),
			errors.ErrQueryExecution,
			fmt.Sprintf("extract %s result", doc.Name),
		)
	}

	out, err := json.Marshal(node)
	if err != nil {
		return "", errors.WrapError(err, errors.ErrQueryExecution, fmt.Sprintf("serialize %s result", doc.Name))
	}

	return string(out), nil
}
