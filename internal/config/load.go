package config

import (
	"fmt"
	"os"

	"inferoute/pkg/dispatch"
)

// LoadEndpoints reads, parses, validates, and normalizes an endpoints file.
func LoadEndpoints(path string) (EndpointsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EndpointsFile{}, fmt.Errorf("read endpoints: %w", err)
	}
	file, err := ParseEndpoints(data)
	if err != nil {
		return EndpointsFile{}, err
	}
	if err := ValidateEndpoints(&file); err != nil {
		return EndpointsFile{}, err
	}
	NormalizeEndpoints(&file)
	return file, nil
}

// LoadRequests reads, parses, validates, and normalizes a requests file.
func LoadRequests(path string) ([]dispatch.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read requests: %w", err)
	}
	file, err := ParseRequests(data)
	if err != nil {
		return nil, err
	}
	if err := ValidateRequests(&file); err != nil {
		return nil, err
	}
	NormalizeRequests(&file)
	requests := make([]dispatch.Request, 0, len(file.Requests))
	for _, spec := range file.Requests {
		requests = append(requests, dispatch.Request{ID: spec.ID, TokenCost: spec.TokenCost})
	}
	return requests, nil
}

// NewServer registers every configured endpoint on a fresh server,
// preserving declaration order.
func NewServer(file EndpointsFile, clock dispatch.Clock) (*dispatch.Server, error) {
	server := dispatch.NewServer(clock)
	for _, endpoint := range file.Endpoints {
		if err := server.AddEndpoint(endpoint.Route, endpoint.Limits()); err != nil {
			return nil, err
		}
	}
	return server, nil
}
