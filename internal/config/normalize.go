package config

import (
	"github.com/google/uuid"

	"inferoute/pkg/dispatch"
)

// NormalizeEndpoints resolves per-minute rates into their per-second
// equivalents. Per-minute values divide by 60 at load time, so a
// 90 requests/min endpoint runs at 1.5 requests/sec.
func NormalizeEndpoints(file *EndpointsFile) {
	for i := range file.Endpoints {
		endpoint := &file.Endpoints[i]
		if endpoint.RequestsPerSecond == nil && endpoint.MaxRequestsPerMinute != nil {
			perSec := *endpoint.MaxRequestsPerMinute / 60
			endpoint.RequestsPerSecond = &perSec
		}
		if endpoint.TokensPerSecond == nil && endpoint.MaxTokensPerMinute != nil {
			perSec := *endpoint.MaxTokensPerMinute / 60
			endpoint.TokensPerSecond = &perSec
		}
	}
}

// NormalizeRequests assigns generated ids to requests that omit one.
func NormalizeRequests(file *RequestsFile) {
	for i := range file.Requests {
		if file.Requests[i].ID == "" {
			file.Requests[i].ID = uuid.NewString()
		}
	}
}

// Limits converts a normalized endpoint spec into dispatch limits.
func (e EndpointSpec) Limits() dispatch.Limits {
	var limits dispatch.Limits
	if e.RequestsPerSecond != nil {
		limits.RequestsPerSec = *e.RequestsPerSecond
	}
	if e.TokensPerSecond != nil {
		limits.TokensPerSec = *e.TokensPerSecond
	}
	return limits
}
