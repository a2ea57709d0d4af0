package schedule

import "time"

// Report summarizes a completed scheduler run.
type Report struct {
	Fulfilled         int            `json:"fulfilled"`
	RequestRejections int            `json:"request_rejections"`
	TokenRejections   int            `json:"token_rejections"`
	Waits             int            `json:"waits"`
	Waited            time.Duration  `json:"waited_ns"`
	Makespan          time.Duration  `json:"makespan_ns"`
	FulfilledByRoute  map[string]int `json:"fulfilled_by_route"`
}

// newReport initializes an empty report.
func newReport() Report {
	return Report{FulfilledByRoute: map[string]int{}}
}
