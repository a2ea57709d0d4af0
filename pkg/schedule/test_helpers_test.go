package schedule

import (
	"testing"
	"time"

	"inferoute/pkg/dispatch"
)

// recordingObserver captures run events for assertions.
type recordingObserver struct {
	admits  []admitEvent
	rejects []rejectEvent
	waits   []time.Duration
	started bool
	ended   bool
	report  Report
}

type admitEvent struct {
	at    time.Time
	route string
	req   dispatch.Request
}

type rejectEvent struct {
	route string
	req   dispatch.Request
	kind  dispatch.LimitKind
}

func (r *recordingObserver) OnRunStart(time.Time, int) {
	r.started = true
}

func (r *recordingObserver) OnAdmit(at time.Time, route string, req dispatch.Request, _ dispatch.Header) {
	r.admits = append(r.admits, admitEvent{at: at, route: route, req: req})
}

func (r *recordingObserver) OnReject(_ time.Time, route string, req dispatch.Request, err error) {
	r.rejects = append(r.rejects, rejectEvent{route: route, req: req, kind: dispatch.KindOf(err)})
}

func (r *recordingObserver) OnWait(_ time.Time, d time.Duration) {
	r.waits = append(r.waits, d)
}

func (r *recordingObserver) OnRunEnd(_ time.Time, report Report) {
	r.ended = true
	r.report = report
}

// buildServer registers endpoints on a fresh server sharing the clock.
func buildServer(t *testing.T, clock Clock, endpoints map[string]dispatch.Limits, order []string) *dispatch.Server {
	t.Helper()
	server := dispatch.NewServer(clock)
	for _, route := range order {
		if err := server.AddEndpoint(route, endpoints[route]); err != nil {
			t.Fatalf("add endpoint %s: %v", route, err)
		}
	}
	return server
}

func requests(costs ...uint64) []dispatch.Request {
	out := make([]dispatch.Request, 0, len(costs))
	for i, cost := range costs {
		out = append(out, dispatch.Request{ID: requestID(i), TokenCost: cost})
	}
	return out
}

func requestID(index int) string {
	return "r" + string(rune('1'+index))
}

func admittedIDs(observer *recordingObserver) []string {
	ids := make([]string, 0, len(observer.admits))
	for _, admit := range observer.admits {
		ids = append(ids, admit.req.ID)
	}
	return ids
}
