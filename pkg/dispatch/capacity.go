package dispatch

import (
	"math"
	"time"
)

// counter tracks remaining request and token capacity for one endpoint
// with continuous linear refill toward the configured ceilings.
//
// Refill is lazy: every observation advances lastRefill to the current
// time and credits capacity proportional to the elapsed interval, clamped
// to one second's worth. Unused capacity never banks beyond the ceiling.
type counter struct {
	limits     Limits
	requests   float64
	tokens     float64
	lastRefill time.Time
}

// newCounter creates a counter starting at full capacity.
func newCounter(limits Limits, now time.Time) *counter {
	c := &counter{limits: limits, lastRefill: now}
	c.requests = c.requestCeiling()
	c.tokens = limits.TokensPerSec
	return c
}

// requestCeiling is the clamp for the request gate. A rate below one
// request per second (30 requests/min normalizes to 0.5/sec) still banks
// up to one whole request, otherwise such an endpoint could never admit
// anything. For integer rates the ceiling equals the configured limit.
func (c *counter) requestCeiling() float64 {
	if c.limits.RequestsPerSec <= 0 {
		return 0
	}
	return math.Max(1, c.limits.RequestsPerSec)
}

// refill credits capacity for the time elapsed since the last observation.
func (c *counter) refill(now time.Time) {
	elapsed := now.Sub(c.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}
	c.requests = math.Min(c.requestCeiling(), c.requests+c.limits.RequestsPerSec*elapsed)
	c.tokens = math.Min(c.limits.TokensPerSec, c.tokens+c.limits.TokensPerSec*elapsed)
	c.lastRefill = now
}

// tryAdmit refills, checks the request gate before the token gate, and
// deducts on success. A rejection leaves the counter untouched.
func (c *counter) tryAdmit(tokenCost uint64, now time.Time) LimitKind {
	c.refill(now)
	if kind := c.check(tokenCost); kind != LimitNone {
		return kind
	}
	c.requests -= 1
	c.tokens -= float64(tokenCost)
	return LimitNone
}

// canAdmit refills and checks both gates without deducting.
func (c *counter) canAdmit(tokenCost uint64, now time.Time) LimitKind {
	c.refill(now)
	return c.check(tokenCost)
}

// check applies the admission gates in order: requests first, tokens second.
func (c *counter) check(tokenCost uint64) LimitKind {
	if c.requests < 1 {
		return LimitRequests
	}
	if c.tokens < float64(tokenCost) {
		return LimitTokens
	}
	return LimitNone
}

// nextAdmitDelay reports how long until the linear refill would admit a
// request of the given cost. ok is false when no amount of waiting helps,
// which happens when the cost exceeds the token ceiling or a ceiling is zero.
func (c *counter) nextAdmitDelay(tokenCost uint64, now time.Time) (time.Duration, bool) {
	c.refill(now)
	if c.limits.RequestsPerSec <= 0 || float64(tokenCost) > c.limits.TokensPerSec {
		return 0, false
	}
	var wait float64
	if c.requests < 1 {
		wait = (1 - c.requests) / c.limits.RequestsPerSec
	}
	if deficit := float64(tokenCost) - c.tokens; deficit > 0 {
		if c.limits.TokensPerSec <= 0 {
			return 0, false
		}
		wait = math.Max(wait, deficit/c.limits.TokensPerSec)
	}
	if wait <= 0 {
		return 0, true
	}
	// Round up to a whole millisecond so the caller never wakes early
	// from floating point truncation.
	return time.Duration(math.Ceil(wait*1000)) * time.Millisecond, true
}

// snapshot refills and reports the current remaining capacity.
func (c *counter) snapshot(now time.Time) (requests, tokens float64) {
	c.refill(now)
	return c.requests, c.tokens
}
