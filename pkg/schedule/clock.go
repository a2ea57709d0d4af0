package schedule

import (
	"context"
	"time"
)

// Clock provides current time and the scheduler's only suspension point.
//
// A real clock sleeps on the wall clock; a virtual clock advances its
// notion of now instantly, which keeps scheduler runs deterministic and
// lets tests fast-forward to the next refill instant.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// RealClock returns a Clock backed by the wall clock.
func RealClock() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// VirtualClock returns a Clock whose Sleep advances time without blocking.
func VirtualClock(start time.Time) Clock {
	return &virtualClock{now: start}
}

type virtualClock struct {
	now time.Time
}

func (c *virtualClock) Now() time.Time {
	return c.now
}

func (c *virtualClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d > 0 {
		c.now = c.now.Add(d)
	}
	return nil
}
