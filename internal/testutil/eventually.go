package testutil

import (
	"testing"
	"time"
)

// Eventually polls check at the given interval until it reports true,
// failing the test with msg once the timeout runs out. The check runs
// once more at the deadline so a condition that became true during the
// final interval still passes.
func Eventually(t testing.TB, timeout, interval time.Duration, check func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if check() {
			return
		}
		if !time.Now().Before(deadline) {
			break
		}
		time.Sleep(interval)
	}
	if check() {
		return
	}
	if msg == "" {
		msg = "condition never held"
	}
	t.Fatal(msg)
}
