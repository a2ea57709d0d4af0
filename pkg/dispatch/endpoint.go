package dispatch

import (
	"sync"
	"time"
)

// Endpoint is a rate-limited destination identified by a route.
//
// The route and limits are fixed at construction; only the capacity
// counter mutates. The mutex serializes check-then-deduct so the endpoint
// stays correct when the server is shared across concurrent callers.
type Endpoint struct {
	route  string
	limits Limits
	clock  Clock

	mu      sync.Mutex
	counter *counter
}

// NewEndpoint creates an endpoint at full capacity.
func NewEndpoint(route string, limits Limits, clock Clock) *Endpoint {
	if clock == nil {
		clock = realClock{}
	}
	return &Endpoint{
		route:   route,
		limits:  limits,
		clock:   clock,
		counter: newCounter(limits, clock.Now()),
	}
}

// Route returns the endpoint's route identifier.
func (e *Endpoint) Route() string {
	return e.route
}

// Limits returns the endpoint's per-second ceilings.
func (e *Endpoint) Limits() Limits {
	return e.limits
}

// Admit checks the request against current capacity and deducts on
// success. Rejections surface as *RequestLimitError or *TokenLimitError
// and leave capacity untouched.
func (e *Endpoint) Admit(req Request) (Header, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.clock.Now()
	switch e.counter.tryAdmit(req.TokenCost, now) {
	case LimitRequests:
		return Header{}, &RequestLimitError{Route: e.route, Request: req}
	case LimitTokens:
		return Header{}, &TokenLimitError{Route: e.route, Request: req}
	}
	return e.header(req.ID, now), nil
}

// CanAdmit probes whether the request would be admitted right now
// without deducting capacity.
func (e *Endpoint) CanAdmit(tokenCost uint64) LimitKind {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.counter.canAdmit(tokenCost, e.clock.Now())
}

// NextAdmitDelay reports the time until refill admits a request of the
// given cost. ok is false when the endpoint can never admit it.
func (e *Endpoint) NextAdmitDelay(tokenCost uint64) (time.Duration, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.counter.nextAdmitDelay(tokenCost, e.clock.Now())
}

// Snapshot reports remaining capacity after a refill. For rates below
// one request per second the bank still holds a whole request, so
// RequestsRemaining can read above MaxRequestsPerSec; that is the
// admission clamp, not drift.
func (e *Endpoint) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	requests, tokens := e.counter.snapshot(e.clock.Now())
	return Snapshot{
		Route:             e.route,
		MaxRequestsPerSec: e.limits.RequestsPerSec,
		MaxTokensPerSec:   e.limits.TokensPerSec,
		RequestsRemaining: requests,
		TokensRemaining:   tokens,
	}
}

// header builds the admission receipt under the endpoint lock.
func (e *Endpoint) header(requestID string, at time.Time) Header {
	return Header{
		Route:             e.route,
		RequestID:         requestID,
		MaxRequestsPerSec: e.limits.RequestsPerSec,
		MaxTokensPerSec:   e.limits.TokensPerSec,
		RequestsRemaining: e.counter.requests,
		TokensRemaining:   e.counter.tokens,
		AdmittedAt:        at,
	}
}
