package live

import (
	"time"

	"inferoute/pkg/dispatch"
	"inferoute/pkg/schedule"
)

// RowStatus is the display status of a queued request.
type RowStatus string

const (
	// StatusQueued marks a request not yet probed.
	StatusQueued RowStatus = "queued"
	// StatusBlocked marks the head request waiting for a refill.
	StatusBlocked RowStatus = "blocked"
	// StatusFulfilled marks an admitted request.
	StatusFulfilled RowStatus = "fulfilled"
)

// RequestRow holds UI state for a single queued request.
type RequestRow struct {
	ID         string
	TokenCost  uint64
	Status     RowStatus
	Route      string
	Rejections int
	AdmittedAt time.Time
}

// StatusCounts aggregates counts by status bucket.
type StatusCounts struct {
	Pending           int
	Blocked           int
	Fulfilled         int
	RequestRejections int
	TokenRejections   int
	Waits             int
}

// State captures the live UI state for a scheduler run.
type State struct {
	StartedAt time.Time
	Pending   int
	Rows      []RequestRow
	Counts    StatusCounts
	LastEvent string
	Done      bool
	Report    schedule.Report
}

// rowIndex locates a request row by id, or -1.
func rowIndex(rows []RequestRow, id string) int {
	for i := range rows {
		if rows[i].ID == id {
			return i
		}
	}
	return -1
}

// ensureRow appends a row for the request when it first appears.
func ensureRow(state State, req dispatch.Request) (State, int) {
	if i := rowIndex(state.Rows, req.ID); i >= 0 {
		return state, i
	}
	state.Rows = append(state.Rows, RequestRow{
		ID:        req.ID,
		TokenCost: req.TokenCost,
		Status:    StatusQueued,
	})
	return state, len(state.Rows) - 1
}
