package testutil

import (
	"context"
	"testing"
	"time"
)

// contextTimeout bounds tests that pass a zero or negative timeout.
// Dispatch tests run on virtual clocks, so anything slower than this is
// a hang, not a slow test.
const contextTimeout = 10 * time.Second

// Context returns a context cancelled when the test finishes. The
// timeout shrinks to fit under go test's own deadline, keeping enough
// headroom for the failure to be reported instead of the suite dying
// on the -timeout panic.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = contextTimeout
	}
	if td, ok := t.(interface{ Deadline() (time.Time, bool) }); ok {
		if deadline, ok := td.Deadline(); ok {
			headroom := time.Until(deadline) - 500*time.Millisecond
			if headroom > 0 && headroom < timeout {
				timeout = headroom
			}
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}
