// Package riot is a client for the Riot Games API. Every call is a
// single best-effort attempt; failures come back as *APIError values
// discriminated by kind so callers can decide what a failure means.
package riot

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates API failures.
type ErrorKind string

const (
	// KindAuth: the API key was rejected (401/403). Dev keys expire
	// after 24 hours, so this is a routine failure, not a bug.
	KindAuth ErrorKind = "auth"

	// KindNotFound: the match, account, or entry does not exist (404).
	KindNotFound ErrorKind = "not_found"

	// KindRateLimited: the key's quota is exhausted (429). RetryAfter
	// carries the server's hint in seconds; the client never acts on it.
	KindRateLimited ErrorKind = "rate_limited"

	// KindTransport: the request could not complete or returned an
	// unexpected status.
	KindTransport ErrorKind = "transport"

	// KindValidation: the request was malformed before it left.
	KindValidation ErrorKind = "validation"
)

// APIError is a failed API call.
type APIError struct {
	Kind       ErrorKind
	Status     int // HTTP status, 0 when the request never completed
	RetryAfter int // seconds, only set for rate limit errors
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("riot api: %s (%s, status %d)", e.Message, e.Kind, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("riot api: %s (%s): %v", e.Message, e.Kind, e.Err)
	}
	return fmt.Sprintf("riot api: %s (%s)", e.Message, e.Kind)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is (or wraps) an APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// Kind extracts the error kind, or "" for non-API errors.
func Kind(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}
