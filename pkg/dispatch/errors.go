package dispatch

import (
	"errors"
	"fmt"
)

// LimitKind identifies which capacity gate rejected a request.
type LimitKind string

const (
	// LimitNone signals admission.
	LimitNone LimitKind = ""
	// LimitRequests signals the request-per-second gate rejected.
	LimitRequests LimitKind = "request_limit_exceeded"
	// LimitTokens signals the token-per-second gate rejected.
	LimitTokens LimitKind = "token_limit_exceeded"
)

// UnknownRouteError reports a receive call for an unregistered route.
type UnknownRouteError struct {
	Route string
}

func (e *UnknownRouteError) Error() string {
	return fmt.Sprintf("unknown route %q", e.Route)
}

// RequestLimitError reports a rejection by the request-count gate.
type RequestLimitError struct {
	Route   string
	Request Request
}

func (e *RequestLimitError) Error() string {
	return fmt.Sprintf("request limit exceeded on route %q for request %s", e.Route, e.Request.ID)
}

// TokenLimitError reports a rejection by the token-count gate.
type TokenLimitError struct {
	Route   string
	Request Request
}

func (e *TokenLimitError) Error() string {
	return fmt.Sprintf("token limit exceeded on route %q for request %s (cost %d)", e.Route, e.Request.ID, e.Request.TokenCost)
}

// KindOf maps an admission error to its limit kind, or LimitNone for
// errors that are not limit rejections.
func KindOf(err error) LimitKind {
	var reqErr *RequestLimitError
	if errors.As(err, &reqErr) {
		return LimitRequests
	}
	var tokErr *TokenLimitError
	if errors.As(err, &tokErr) {
		return LimitTokens
	}
	return LimitNone
}

// IsLimitError reports whether an error is a recoverable limit rejection.
func IsLimitError(err error) bool {
	return KindOf(err) != LimitNone
}
