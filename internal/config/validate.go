package config

import (
	"fmt"
	"strings"
)

// issueAdder adds a validation issue to a shared collector.
type issueAdder func(field, message string)

// issueCollector accumulates validation issues.
type issueCollector struct {
	issues []Issue
}

// add records a new validation issue.
func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

// result returns a ValidationError when issues are present.
func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// ValidateEndpoints checks a parsed endpoints file before normalization,
// so conflicting rate forms are still visible.
func ValidateEndpoints(file *EndpointsFile) error {
	collector := &issueCollector{}
	if len(file.Endpoints) == 0 {
		collector.add("endpoints", "at least one endpoint is required")
	}
	seen := map[string]bool{}
	for i := range file.Endpoints {
		validateEndpoint(&file.Endpoints[i], i, seen, collector.add)
	}
	return collector.result()
}

// validateEndpoint checks one endpoint entry.
func validateEndpoint(endpoint *EndpointSpec, index int, seen map[string]bool, add issueAdder) {
	field := func(name string) string {
		return fmt.Sprintf("endpoints[%d].%s", index, name)
	}
	route := strings.TrimSpace(endpoint.Route)
	switch {
	case route == "":
		add(field("route"), "is required")
	case !strings.HasPrefix(route, "/"):
		add(field("route"), "must start with /")
	case seen[route]:
		add(field("route"), fmt.Sprintf("duplicate route %q", route))
	default:
		seen[route] = true
	}

	validateRate(endpoint.MaxRequestsPerMinute, endpoint.RequestsPerSecond,
		field, "max_requests_per_minute", "requests_per_second", add)
	validateRate(endpoint.MaxTokensPerMinute, endpoint.TokensPerSecond,
		field, "max_tokens_per_minute", "tokens_per_second", add)
}

// validateRate checks that exactly one non-negative rate form is given.
func validateRate(perMinute, perSecond *float64, field func(string) string, minuteName, secondName string, add issueAdder) {
	switch {
	case perMinute != nil && perSecond != nil:
		add(field(minuteName), "cannot be set with "+secondName)
	case perMinute == nil && perSecond == nil:
		add(field(minuteName), "or "+secondName+" is required")
	case perMinute != nil && *perMinute < 0:
		add(field(minuteName), "must be >= 0")
	case perSecond != nil && *perSecond < 0:
		add(field(secondName), "must be >= 0")
	}
}

// ValidateRequests checks a normalized requests file.
func ValidateRequests(file *RequestsFile) error {
	collector := &issueCollector{}
	if len(file.Requests) == 0 {
		collector.add("requests", "at least one request is required")
	}
	seen := map[string]bool{}
	for i, request := range file.Requests {
		field := fmt.Sprintf("requests[%d].id", i)
		switch {
		case strings.TrimSpace(request.ID) == "":
			continue
		case seen[request.ID]:
			collector.add(field, fmt.Sprintf("duplicate id %q", request.ID))
		default:
			seen[request.ID] = true
		}
	}
	return collector.result()
}
