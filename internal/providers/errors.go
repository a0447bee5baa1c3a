package providers

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure kinds shared by every provider client. Callers branch on these
// with errors.Is; the concrete *Failure carries provider and status detail.
var (
	ErrUnavailable = errors.New("provider unavailable")
	ErrNotFound    = errors.New("resource not found")
	ErrRateLimited = errors.New("provider rate limited")
	ErrMalformed   = errors.New("malformed provider payload")
)

// Failure is a classified upstream error.
type Failure struct {
	Provider   string
	Kind       error
	StatusCode int
	Message    string
}

func (f *Failure) Error() string {
	if f.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status %d): %s", f.Provider, f.Kind, f.StatusCode, f.Message)
	}
	return fmt.Sprintf("%s: %s: %s", f.Provider, f.Kind, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Kind
}

// NewFailure builds a classified failure for a provider.
func NewFailure(provider string, kind error, statusCode int, message string) *Failure {
	if kind == nil {
		kind = ErrUnavailable
	}
	return &Failure{
		Provider:   provider,
		Kind:       kind,
		StatusCode: statusCode,
		Message:    message,
	}
}

// ClassifyStatus maps an HTTP response status to a failure kind.
func ClassifyStatus(provider string, statusCode int, message string) *Failure {
	kind := ErrUnavailable
	switch {
	case statusCode == http.StatusNotFound:
		kind = ErrNotFound
	case statusCode == http.StatusTooManyRequests:
		kind = ErrRateLimited
	case statusCode >= http.StatusInternalServerError:
		kind = ErrUnavailable
	}
	return NewFailure(provider, kind, statusCode, message)
}

// AsFailure extracts the classified failure from an error chain.
func AsFailure(err error) (*Failure, bool) {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure, true
	}
	return nil, false
}
