package live

import (
	"fmt"

	"inferoute/pkg/dispatch"
)

// Reduce applies a scheduler event to the UI state.
func Reduce(state State, event Event) State {
	switch event.Kind {
	case EventRunStart:
		state.StartedAt = event.At
		state.Pending = event.Pending
		state.Rows = nil
		state.Counts = StatusCounts{}
		state.LastEvent = ""
		state.Done = false
	case EventAdmit:
		var i int
		state, i = ensureRow(state, event.Request)
		row := state.Rows[i]
		row.Status = StatusFulfilled
		row.Route = event.Route
		row.AdmittedAt = event.At
		state.Rows[i] = row
		state.LastEvent = fmt.Sprintf("%s admitted on %s", event.Request.ID, event.Route)
	case EventReject:
		var i int
		state, i = ensureRow(state, event.Request)
		row := state.Rows[i]
		row.Status = StatusBlocked
		row.Rejections++
		state.Rows[i] = row
		switch event.Limit {
		case dispatch.LimitRequests:
			state.Counts.RequestRejections++
		case dispatch.LimitTokens:
			state.Counts.TokenRejections++
		}
		state.LastEvent = formatRejectEvent(event)
	case EventWait:
		state.Counts.Waits++
		state.LastEvent = "waiting " + formatDuration(event.Wait) + " for refill"
	case EventRunEnd:
		state.Done = true
		state.Report = event.Report
		state.LastEvent = fmt.Sprintf("run complete: %d fulfilled in %s",
			event.Report.Fulfilled, formatDuration(event.Report.Makespan))
	}
	state.Counts = recount(state)
	return state
}

// recount recomputes row-derived counts, keeping the event counters.
func recount(state State) StatusCounts {
	counts := state.Counts
	counts.Blocked = 0
	counts.Fulfilled = 0
	for _, row := range state.Rows {
		switch row.Status {
		case StatusBlocked:
			counts.Blocked++
		case StatusFulfilled:
			counts.Fulfilled++
		}
	}
	counts.Pending = state.Pending - counts.Fulfilled
	if counts.Pending < 0 {
		counts.Pending = 0
	}
	return counts
}

// formatRejectEvent creates a short footer message for a rejection.
func formatRejectEvent(event Event) string {
	switch event.Limit {
	case dispatch.LimitRequests:
		return fmt.Sprintf("%s blocked on %s (request limit)", event.Request.ID, event.Route)
	case dispatch.LimitTokens:
		return fmt.Sprintf("%s blocked on %s (token limit)", event.Request.ID, event.Route)
	default:
		return fmt.Sprintf("%s rejected on %s", event.Request.ID, event.Route)
	}
}
