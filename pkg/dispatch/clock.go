package dispatch

import "time"

// Clock provides the current time for capacity refills.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}
