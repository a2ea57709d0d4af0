package live

import (
	"time"

	"inferoute/pkg/dispatch"
	"inferoute/pkg/schedule"
)

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a scheduler run.
	EventRunStart EventKind = iota
	// EventAdmit signals an admitted request.
	EventAdmit
	// EventReject signals a limit rejection during probing.
	EventReject
	// EventWait signals the scheduler sleeping until the next refill.
	EventWait
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind    EventKind
	At      time.Time
	Pending int
	Route   string
	Request dispatch.Request
	Header  dispatch.Header
	Limit   dispatch.LimitKind
	Wait    time.Duration
	Report  schedule.Report
}
