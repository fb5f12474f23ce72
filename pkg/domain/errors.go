package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTimeout is returned when a fetch exceeded its time bound, retryable by caller
	ErrTimeout = errors.New("fetch timed out")
	// ErrMalformedDocument is returned when a feed document can't be parsed
	ErrMalformedDocument = errors.New("malformed feed document")
	// ErrNotFound is returned when a catalog record doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrRefreshInProgress is returned when the feed already has a refresh in flight
	ErrRefreshInProgress = errors.New("refresh already in progress")
	// ErrInvalidInput is returned for unusable caller input, e.g. a non-http url
	ErrInvalidInput = errors.New("invalid input")
)

// UpstreamError is returned for responses other than 2xx and 304
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream responded with status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Retryable reports whether a retry with backoff makes sense, i.e. 5xx and 429
func (e *UpstreamError) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// StoreIOError wraps a catalog store failure
type StoreIOError struct {
	Op  string
	Err error
}

func (e *StoreIOError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreIOError) Unwrap() error { return e.Err }

// IsRetryable reports whether the error is worth retrying by the caller
func IsRetryable(err error) bool {
	if errors.Is(err, ErrTimeout) {
		return true
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Retryable()
	}
	return false
}
