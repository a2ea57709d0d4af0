package schedule

import (
	"time"

	"inferoute/pkg/dispatch"
)

// Observer receives scheduler lifecycle events for a run.
type Observer interface {
	// OnRunStart signals the start of a run with the pending queue depth.
	OnRunStart(at time.Time, pending int)
	// OnAdmit signals a successful admission.
	OnAdmit(at time.Time, route string, req dispatch.Request, header dispatch.Header)
	// OnReject signals a limit rejection during route probing.
	OnReject(at time.Time, route string, req dispatch.Request, err error)
	// OnWait signals a wait for capacity refill.
	OnWait(at time.Time, d time.Duration)
	// OnRunEnd signals run completion with the final report.
	OnRunEnd(at time.Time, report Report)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) OnRunStart(time.Time, int)                                        {}
func (NoopObserver) OnAdmit(time.Time, string, dispatch.Request, dispatch.Header)     {}
func (NoopObserver) OnReject(time.Time, string, dispatch.Request, error)              {}
func (NoopObserver) OnWait(time.Time, time.Duration)                                  {}
func (NoopObserver) OnRunEnd(time.Time, Report)                                       {}

// MultiObserver fans events out to several observers in order.
func MultiObserver(observers ...Observer) Observer {
	filtered := make([]Observer, 0, len(observers))
	for _, observer := range observers {
		if observer != nil {
			filtered = append(filtered, observer)
		}
	}
	return multiObserver{observers: filtered}
}

type multiObserver struct {
	observers []Observer
}

func (m multiObserver) OnRunStart(at time.Time, pending int) {
	for _, observer := range m.observers {
		observer.OnRunStart(at, pending)
	}
}

func (m multiObserver) OnAdmit(at time.Time, route string, req dispatch.Request, header dispatch.Header) {
	for _, observer := range m.observers {
		observer.OnAdmit(at, route, req, header)
	}
}

func (m multiObserver) OnReject(at time.Time, route string, req dispatch.Request, err error) {
	for _, observer := range m.observers {
		observer.OnReject(at, route, req, err)
	}
}

func (m multiObserver) OnWait(at time.Time, d time.Duration) {
	for _, observer := range m.observers {
		observer.OnWait(at, d)
	}
}

func (m multiObserver) OnRunEnd(at time.Time, report Report) {
	for _, observer := range m.observers {
		observer.OnRunEnd(at, report)
	}
}
