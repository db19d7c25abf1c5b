package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies why a provider call failed. Callers dispatch on it when
// deciding how loudly to report a fallback.
type Kind string

const (
	KindUnavailable Kind = "unavailable"
	KindTimeout     Kind = "timeout"
	KindQuota       Kind = "quota"
	KindTransport   Kind = "transport"
	KindRejected    Kind = "rejected"
	KindSchema      Kind = "schema"
	KindEmpty       Kind = "empty"
)

// ErrNoProvider is returned when no provider is configured for a capability.
var ErrNoProvider = errors.New("no generative AI provider configured")

// Error is returned by every provider call in this package.
type Error struct {
	Kind     Kind
	Provider string
	Op       string
	Err      error
}

func (e *Error) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("ai %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("ai %s (%s): %s: %v", e.Op, e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the failure kind of err. Errors that did not come from this
// package are classified as transport failures.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var aiErr *Error
	if errors.As(err, &aiErr) {
		return aiErr.Kind
	}
	if errors.Is(err, ErrNoProvider) {
		return KindUnavailable
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindTransport
}

// classify wraps a raw SDK error. status is the HTTP status code when the SDK
// exposed one, 0 otherwise.
func classify(provider, op string, status int, err error) *Error {
	kind := KindTransport
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case errors.Is(err, context.Canceled):
		kind = KindUnavailable
	case status == http.StatusTooManyRequests || isRateLimitError(err):
		kind = KindQuota
	case status == http.StatusBadRequest || status == http.StatusUnauthorized ||
		status == http.StatusForbidden || status == http.StatusNotFound:
		kind = KindRejected
	case status >= 500 || isServerError(err):
		kind = KindUnavailable
	}
	return &Error{Kind: kind, Provider: provider, Op: op, Err: err}
}

func isRateLimitError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "resource_exhausted") ||
		strings.Contains(errStr, "quota")
}

func isServerError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "server_error") ||
		strings.Contains(errStr, "unavailable") ||
		strings.Contains(errStr, "overloaded")
}
