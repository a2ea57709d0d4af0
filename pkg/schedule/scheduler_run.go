package schedule

import (
	"context"
	"fmt"
	"time"

	"inferoute/pkg/dispatch"
)

// Run drains the queue. It returns the partial report together with the
// error when the run aborts: an unroutable head request, an unknown
// route in the probe order, or a cancelled context.
func (s *Scheduler) Run(ctx context.Context, queue *Queue) (Report, error) {
	report := newReport()
	start := s.clock.Now()
	var lastAdmit time.Time
	s.observer.OnRunStart(start, queue.Len())

	for {
		head, ok := queue.Peek()
		if !ok {
			break
		}
		if err := s.checkRoutable(head); err != nil {
			return report, err
		}

		admitted, at, err := s.probeRoutes(head, &report)
		if err != nil {
			return report, err
		}
		if admitted {
			queue.Pop()
			report.Fulfilled++
			lastAdmit = at
			continue
		}

		delay, ok := s.nextAdmitDelay(head)
		if !ok {
			// checkRoutable passed, so some endpoint reported a finite
			// delay moments ago; hitting this means the probe order
			// excludes every admissible endpoint.
			return report, &UnroutableRequestError{Request: head, MaxTokenRate: s.server.MaxTokenRate()}
		}
		s.observer.OnWait(s.clock.Now(), delay)
		report.Waits++
		report.Waited += delay
		if err := s.clock.Sleep(ctx, delay); err != nil {
			return report, err
		}
	}

	if !lastAdmit.IsZero() {
		report.Makespan = lastAdmit.Sub(start)
	}
	s.observer.OnRunEnd(s.clock.Now(), report)
	return report, nil
}

// probeRoutes tries the head request against each route in order and
// reports whether one admitted it. Probes go through the non-mutating
// CanAdmit; only a route that would admit gets the Receive call, which
// re-checks capacity as the single source of truth.
func (s *Scheduler) probeRoutes(head dispatch.Request, report *Report) (bool, time.Time, error) {
	for _, route := range s.routes {
		endpoint, ok := s.server.Endpoint(route)
		if !ok {
			return false, time.Time{}, fmt.Errorf("probe route %s: %w", route, &dispatch.UnknownRouteError{Route: route})
		}
		if kind := endpoint.CanAdmit(head.TokenCost); kind != dispatch.LimitNone {
			s.recordRejection(report, route, head, rejectionError(kind, route, head))
			continue
		}
		header, err := s.server.Receive(route, head)
		if err != nil {
			if !dispatch.IsLimitError(err) {
				return false, time.Time{}, fmt.Errorf("probe route %s: %w", route, err)
			}
			// A concurrent API caller took the capacity between the probe
			// and the admit.
			s.recordRejection(report, route, head, err)
			continue
		}
		s.observer.OnAdmit(header.AdmittedAt, route, head, header)
		report.FulfilledByRoute[route]++
		return true, header.AdmittedAt, nil
	}
	return false, time.Time{}, nil
}

// recordRejection counts a probe rejection by kind and notifies the observer.
func (s *Scheduler) recordRejection(report *Report, route string, head dispatch.Request, err error) {
	switch dispatch.KindOf(err) {
	case dispatch.LimitRequests:
		report.RequestRejections++
	case dispatch.LimitTokens:
		report.TokenRejections++
	}
	s.observer.OnReject(s.clock.Now(), route, head, err)
}

// rejectionError builds the typed error for a failed probe.
func rejectionError(kind dispatch.LimitKind, route string, head dispatch.Request) error {
	if kind == dispatch.LimitRequests {
		return &dispatch.RequestLimitError{Route: route, Request: head}
	}
	return &dispatch.TokenLimitError{Route: route, Request: head}
}

// checkRoutable fails fast when no endpoint can ever admit the request.
func (s *Scheduler) checkRoutable(head dispatch.Request) error {
	for _, route := range s.routes {
		endpoint, ok := s.server.Endpoint(route)
		if !ok {
			return fmt.Errorf("probe route %s: %w", route, &dispatch.UnknownRouteError{Route: route})
		}
		if _, ok := endpoint.NextAdmitDelay(head.TokenCost); ok {
			return nil
		}
	}
	return &UnroutableRequestError{Request: head, MaxTokenRate: s.server.MaxTokenRate()}
}

// nextAdmitDelay returns the earliest instant, as a delay from now, at
// which any endpoint's refill would admit the request.
func (s *Scheduler) nextAdmitDelay(head dispatch.Request) (time.Duration, bool) {
	var best time.Duration
	found := false
	for _, route := range s.routes {
		endpoint, ok := s.server.Endpoint(route)
		if !ok {
			continue
		}
		delay, ok := endpoint.NextAdmitDelay(head.TokenCost)
		if !ok {
			continue
		}
		if !found || delay < best {
			best = delay
			found = true
		}
	}
	if !found {
		return 0, false
	}
	// A zero delay here would busy-spin: the probe just rejected, so
	// force at least one millisecond of progress.
	if best <= 0 {
		best = time.Millisecond
	}
	return best, true
}
