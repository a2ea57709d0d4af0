package journal

import (
	"sort"
	"sync"
	"time"

	"inferoute/pkg/dispatch"
	"inferoute/pkg/schedule"
)

// Status values recorded for dispatch entries.
const (
	StatusFulfilled = "fulfilled"
)

// Entry records one admission or rejection for a route.
type Entry struct {
	RequestID  string `json:"request_id"`
	Route      string `json:"route"`
	TokenCost  uint64 `json:"token_cost"`
	ElapsedSec int    `json:"elapsed_sec"`
	Status     string `json:"status"`
}

// Statistics aggregates a run's journal.
type Statistics struct {
	TotalElapsedTime   int `json:"total_elapsed_time"`
	NumErrors          int `json:"num_errors"`
	LongestElapsedTime int `json:"longest_elapsed_time"`
	TotalFulfilled     int `json:"total_fulfilled"`
}

// Journal records fulfilled and errored dispatches per route. It
// implements schedule.Observer so a scheduler run can be journaled
// without the scheduler knowing about reporting.
type Journal struct {
	mu        sync.Mutex
	start     time.Time
	fulfilled map[string][]Entry
	errored   map[string][]Entry
	report    schedule.Report
}

// New creates an empty journal.
func New() *Journal {
	return &Journal{
		fulfilled: map[string][]Entry{},
		errored:   map[string][]Entry{},
	}
}

// OnRunStart anchors elapsed-time accounting at the run start.
func (j *Journal) OnRunStart(at time.Time, _ int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.start = at
}

// OnAdmit records a fulfilled dispatch.
func (j *Journal) OnAdmit(at time.Time, route string, req dispatch.Request, _ dispatch.Header) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fulfilled[route] = append(j.fulfilled[route], j.entryLocked(at, route, req, StatusFulfilled))
}

// OnReject records a rejected dispatch with the rejection as status.
func (j *Journal) OnReject(at time.Time, route string, req dispatch.Request, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errored[route] = append(j.errored[route], j.entryLocked(at, route, req, err.Error()))
}

// OnWait is recorded in the final report, not per event.
func (j *Journal) OnWait(time.Time, time.Duration) {}

// OnRunEnd stores the final report.
func (j *Journal) OnRunEnd(_ time.Time, report schedule.Report) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.report = report
}

// Report returns the scheduler report captured at run end.
func (j *Journal) Report() schedule.Report {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.report
}

// Fulfilled returns the fulfilled entries for a route in admission order.
func (j *Journal) Fulfilled(route string) []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]Entry(nil), j.fulfilled[route]...)
}

// Errored returns the rejection entries for a route in occurrence order.
func (j *Journal) Errored(route string) []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]Entry(nil), j.errored[route]...)
}

// Routes returns every route that appears in the journal, sorted.
func (j *Journal) Routes() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	seen := map[string]bool{}
	for route := range j.fulfilled {
		seen[route] = true
	}
	for route := range j.errored {
		seen[route] = true
	}
	routes := make([]string, 0, len(seen))
	for route := range seen {
		routes = append(routes, route)
	}
	sort.Strings(routes)
	return routes
}

// Statistics aggregates elapsed times and counts across all routes.
func (j *Journal) Statistics() Statistics {
	j.mu.Lock()
	defer j.mu.Unlock()
	var stats Statistics
	for _, entries := range j.fulfilled {
		for _, entry := range entries {
			stats.TotalFulfilled++
			stats.TotalElapsedTime += entry.ElapsedSec
			if entry.ElapsedSec > stats.LongestElapsedTime {
				stats.LongestElapsedTime = entry.ElapsedSec
			}
		}
	}
	for _, entries := range j.errored {
		stats.NumErrors += len(entries)
	}
	return stats
}

// entryLocked builds an entry with elapsed whole seconds since run start.
func (j *Journal) entryLocked(at time.Time, route string, req dispatch.Request, status string) Entry {
	elapsed := 0
	if !j.start.IsZero() && at.After(j.start) {
		elapsed = int(at.Sub(j.start).Seconds())
	}
	return Entry{
		RequestID:  req.ID,
		Route:      route,
		TokenCost:  req.TokenCost,
		ElapsedSec: elapsed,
		Status:     status,
	}
}
