package dispatch

import "fmt"

// Server routes receive calls to registered endpoints.
//
// The endpoint set is built once at load time and never mutated after
// serving begins; capacity state inside each endpoint mutates freely.
// The server performs no retries, no rerouting, and no deduplication.
type Server struct {
	clock     Clock
	endpoints map[string]*Endpoint
	order     []string
}

// NewServer creates a server with no endpoints. A nil clock uses real time.
func NewServer(clock Clock) *Server {
	if clock == nil {
		clock = realClock{}
	}
	return &Server{
		clock:     clock,
		endpoints: map[string]*Endpoint{},
	}
}

// AddEndpoint registers an endpoint. Routes must be unique.
func (s *Server) AddEndpoint(route string, limits Limits) error {
	if route == "" {
		return fmt.Errorf("endpoint route is required")
	}
	if _, ok := s.endpoints[route]; ok {
		return fmt.Errorf("duplicate endpoint route %q", route)
	}
	s.endpoints[route] = NewEndpoint(route, limits, s.clock)
	s.order = append(s.order, route)
	return nil
}

// Receive performs the admission check for a request bound to a route.
// On success the request is considered executed exactly once. Failures
// are *UnknownRouteError, *RequestLimitError, or *TokenLimitError.
func (s *Server) Receive(route string, req Request) (Header, error) {
	endpoint, ok := s.endpoints[route]
	if !ok {
		return Header{}, &UnknownRouteError{Route: route}
	}
	return endpoint.Admit(req)
}

// Routes returns the registered routes in declaration order.
func (s *Server) Routes() []string {
	return append([]string(nil), s.order...)
}

// Endpoint returns the endpoint for a route, if registered.
func (s *Server) Endpoint(route string) (*Endpoint, bool) {
	endpoint, ok := s.endpoints[route]
	return endpoint, ok
}

// Snapshots reports capacity for every endpoint in declaration order.
func (s *Server) Snapshots() []Snapshot {
	snapshots := make([]Snapshot, 0, len(s.order))
	for _, route := range s.order {
		snapshots = append(snapshots, s.endpoints[route].Snapshot())
	}
	return snapshots
}

// MaxTokenRate returns the highest token ceiling across endpoints.
func (s *Server) MaxTokenRate() float64 {
	best := 0.0
	for _, endpoint := range s.endpoints {
		if endpoint.limits.TokensPerSec > best {
			best = endpoint.limits.TokensPerSec
		}
	}
	return best
}
