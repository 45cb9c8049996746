package feed

import (
	"errors"
	"fmt"
)

// ErrCategoryRequired indicates the caller passed a blank category. The feed
// requires cat_id, so this is rejected before any request is issued.
var ErrCategoryRequired = errors.New("feed: category is required")

// TransportError covers network failures and non-success HTTP statuses.
type TransportError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("feed: transport failure: %v", e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("feed: unexpected status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("feed: unexpected status %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError means the feed answered successfully but the body carried an
// application-level error marker. Distinct from TransportError so callers can
// tell "feed is down" from "feed rejected this query".
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("feed: upstream error: %s", e.Message)
}

// DecodeError signals the response body did not match the expected shape,
// i.e. the feed contract is broken rather than the query rejected.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("feed: decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
