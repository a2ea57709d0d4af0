package schedule

import "inferoute/pkg/dispatch"

// Scheduler drains a queue against a dispatch server in minimum
// wall-clock time while honoring two hard constraints: at most one
// receive call in flight, and head-of-queue-only visibility.
//
// The scheduler borrows the server; it never owns or mutates the
// endpoint set.
type Scheduler struct {
	server   *dispatch.Server
	clock    Clock
	observer Observer
	routes   []string
}

// Option overrides scheduler behavior.
type Option func(*Scheduler)

// WithObserver attaches an observer for run events.
func WithObserver(observer Observer) Option {
	return func(s *Scheduler) {
		if observer != nil {
			s.observer = observer
		}
	}
}

// WithRoutes overrides the route probe order. The default is the
// server's declaration order.
func WithRoutes(routes []string) Option {
	return func(s *Scheduler) {
		if len(routes) > 0 {
			s.routes = append([]string(nil), routes...)
		}
	}
}

// NewScheduler creates a scheduler for the given server and clock.
// A nil clock uses real time.
func NewScheduler(server *dispatch.Server, clock Clock, opts ...Option) *Scheduler {
	if clock == nil {
		clock = RealClock()
	}
	s := &Scheduler{
		server:   server,
		clock:    clock,
		observer: NoopObserver{},
		routes:   server.Routes(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
