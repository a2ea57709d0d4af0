package config

import (
	"fmt"
	"strings"
)

// EndpointSpec declares one route and its capacity ceilings. Rates are
// given either per minute or per second, one form per gate.
type EndpointSpec struct {
	Route                string   `yaml:"route"`
	MaxRequestsPerMinute *float64 `yaml:"max_requests_per_minute"`
	MaxTokensPerMinute   *float64 `yaml:"max_tokens_per_minute"`
	RequestsPerSecond    *float64 `yaml:"requests_per_second"`
	TokensPerSecond      *float64 `yaml:"tokens_per_second"`
}

// EndpointsFile is the top-level endpoints configuration document.
type EndpointsFile struct {
	Endpoints []EndpointSpec `yaml:"endpoints"`
}

// RequestSpec declares one queued request. A missing id gets a
// generated one during normalization.
type RequestSpec struct {
	ID        string `yaml:"id"`
	TokenCost uint64 `yaml:"token_cost"`
}

// RequestsFile is the top-level request-queue document.
type RequestsFile struct {
	Requests []RequestSpec `yaml:"requests"`
}

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}
