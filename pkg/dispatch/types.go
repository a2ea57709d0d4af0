package dispatch

import "time"

// Request is an immutable unit of work bound for an endpoint.
type Request struct {
	ID        string `json:"id" yaml:"id"`
	TokenCost uint64 `json:"token_cost" yaml:"token_cost"`
}

// Limits holds the per-second capacity ceilings for an endpoint.
//
// Ceilings are fractional because per-minute configuration normalizes to
// per-second rates at load time (90 requests/min is 1.5 requests/sec).
type Limits struct {
	RequestsPerSec float64 `json:"requests_per_sec"`
	TokensPerSec   float64 `json:"tokens_per_sec"`
}

// Header is the receipt returned for an admitted request.
type Header struct {
	Route             string    `json:"route"`
	RequestID         string    `json:"request_id"`
	MaxRequestsPerSec float64   `json:"max_requests_per_sec"`
	MaxTokensPerSec   float64   `json:"max_tokens_per_sec"`
	RequestsRemaining float64   `json:"requests_remaining"`
	TokensRemaining   float64   `json:"tokens_remaining"`
	AdmittedAt        time.Time `json:"admitted_at"`
}

// Snapshot reports endpoint capacity at an observation point.
type Snapshot struct {
	Route             string  `json:"route"`
	MaxRequestsPerSec float64 `json:"max_requests_per_sec"`
	MaxTokensPerSec   float64 `json:"max_tokens_per_sec"`
	RequestsRemaining float64 `json:"requests_remaining"`
	TokensRemaining   float64 `json:"tokens_remaining"`
}
