package schedule

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"inferoute/internal/testutil"
	"inferoute/pkg/dispatch"
)

func TestScheduler_DrainsInQueueOrder(t *testing.T) {
	clock := VirtualClock(time.Unix(0, 0))
	server := buildServer(t, clock, map[string]dispatch.Limits{
		"/a": {RequestsPerSec: 1, TokensPerSec: 20},
		"/b": {RequestsPerSec: 1, TokensPerSec: 10},
	}, []string{"/a", "/b"})
	observer := &recordingObserver{}
	scheduler := NewScheduler(server, clock, WithObserver(observer))

	queue := NewQueue(requests(10, 10, 10, 10))
	report, err := scheduler.Run(context.Background(), queue)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if queue.Len() != 0 {
		t.Fatalf("queue not drained, %d left", queue.Len())
	}
	if report.Fulfilled != 4 {
		t.Fatalf("expected 4 fulfilled, got %d", report.Fulfilled)
	}
	want := []string{"r1", "r2", "r3", "r4"}
	if got := admittedIDs(observer); !reflect.DeepEqual(got, want) {
		t.Fatalf("admission order %v, want %v", got, want)
	}
	if !observer.started || !observer.ended {
		t.Fatalf("expected run start and end events")
	}
}

func TestScheduler_SpillsToSecondEndpoint(t *testing.T) {
	clock := VirtualClock(time.Unix(0, 0))
	server := buildServer(t, clock, map[string]dispatch.Limits{
		"/a": {RequestsPerSec: 1, TokensPerSec: 20},
		"/b": {RequestsPerSec: 1, TokensPerSec: 20},
	}, []string{"/a", "/b"})
	observer := &recordingObserver{}
	scheduler := NewScheduler(server, clock, WithObserver(observer))

	// Both fit immediately: r1 on /a, r2 spills to /b with no wait.
	report, err := scheduler.Run(context.Background(), NewQueue(requests(10, 10)))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Waits != 0 {
		t.Fatalf("expected no waits, got %d", report.Waits)
	}
	if observer.admits[0].route != "/a" || observer.admits[1].route != "/b" {
		t.Fatalf("expected /a then /b, got %+v", observer.admits)
	}
	if report.Makespan != 0 {
		t.Fatalf("expected zero makespan, got %s", report.Makespan)
	}
}

func TestScheduler_WaitsForRefillInsteadOfSpinning(t *testing.T) {
	clock := VirtualClock(time.Unix(0, 0))
	server := buildServer(t, clock, map[string]dispatch.Limits{
		"/a": {RequestsPerSec: 1, TokensPerSec: 20},
	}, []string{"/a"})
	observer := &recordingObserver{}
	scheduler := NewScheduler(server, clock, WithObserver(observer))

	report, err := scheduler.Run(context.Background(), NewQueue(requests(15, 15, 15)))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Fulfilled != 3 {
		t.Fatalf("expected 3 fulfilled, got %d", report.Fulfilled)
	}
	// One wait per blocked head; each bounded by the request-gate refill.
	if report.Waits != 2 {
		t.Fatalf("expected 2 waits, got %d", report.Waits)
	}
	for _, wait := range observer.waits {
		if wait <= 0 || wait > time.Second {
			t.Fatalf("wait out of range: %s", wait)
		}
	}
	if report.Makespan != 2*time.Second {
		t.Fatalf("expected 2s makespan, got %s", report.Makespan)
	}
}

func TestScheduler_PrefersEarlierRefill(t *testing.T) {
	clock := VirtualClock(time.Unix(0, 0))
	// /slow banks a request every 2s (30/min), /fast every second.
	server := buildServer(t, clock, map[string]dispatch.Limits{
		"/slow": {RequestsPerSec: 0.5, TokensPerSec: 100},
		"/fast": {RequestsPerSec: 1, TokensPerSec: 100},
	}, []string{"/slow", "/fast"})
	observer := &recordingObserver{}
	scheduler := NewScheduler(server, clock, WithObserver(observer))

	report, err := scheduler.Run(context.Background(), NewQueue(requests(10, 10, 10)))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// r1 → /slow, r2 → /fast, r3 blocked; /fast readmits after 1s,
	// before /slow's 2s refill.
	if report.Makespan != time.Second {
		t.Fatalf("expected 1s makespan, got %s", report.Makespan)
	}
	if observer.admits[2].route != "/fast" {
		t.Fatalf("expected r3 on /fast, got %s", observer.admits[2].route)
	}
}

func TestScheduler_RequestGateReportedBeforeTokenGate(t *testing.T) {
	clock := VirtualClock(time.Unix(0, 0))
	server := buildServer(t, clock, map[string]dispatch.Limits{
		"/ab": {RequestsPerSec: 1, TokensPerSec: 20},
	}, []string{"/ab"})
	observer := &recordingObserver{}
	scheduler := NewScheduler(server, clock, WithObserver(observer))

	report, err := scheduler.Run(context.Background(), NewQueue(requests(15, 15)))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.RequestRejections == 0 {
		t.Fatalf("expected request-gate rejections")
	}
	if report.TokenRejections != 0 {
		t.Fatalf("request gate must report before the token gate, got %d token rejections", report.TokenRejections)
	}
	if observer.rejects[0].kind != dispatch.LimitRequests {
		t.Fatalf("expected request limit rejection, got %s", observer.rejects[0].kind)
	}
}

func TestScheduler_ProbeRejectionLeavesCapacityUntouched(t *testing.T) {
	clock := VirtualClock(time.Unix(0, 0))
	server := buildServer(t, clock, map[string]dispatch.Limits{
		"/small": {RequestsPerSec: 5, TokensPerSec: 10},
		"/large": {RequestsPerSec: 5, TokensPerSec: 100},
	}, []string{"/small", "/large"})
	observer := &recordingObserver{}
	scheduler := NewScheduler(server, clock, WithObserver(observer))

	// Cost 50 overflows /small's token gate on the way to /large; the
	// probe must not burn one of /small's request slots.
	report, err := scheduler.Run(context.Background(), NewQueue(requests(50)))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.TokenRejections != 1 {
		t.Fatalf("expected 1 token rejection, got %d", report.TokenRejections)
	}
	if observer.rejects[0].kind != dispatch.LimitTokens {
		t.Fatalf("expected a token limit rejection, got %s", observer.rejects[0].kind)
	}
	small, ok := server.Endpoint("/small")
	if !ok {
		t.Fatal("missing /small endpoint")
	}
	snap := small.Snapshot()
	if snap.RequestsRemaining != 5 || snap.TokensRemaining != 10 {
		t.Fatalf("rejected probe mutated capacity: %+v", snap)
	}
}

func TestScheduler_UnroutableFailsFast(t *testing.T) {
	clock := VirtualClock(time.Unix(0, 0))
	server := buildServer(t, clock, map[string]dispatch.Limits{
		"/a": {RequestsPerSec: 1, TokensPerSec: 20},
		"/b": {RequestsPerSec: 1, TokensPerSec: 30},
	}, []string{"/a", "/b"})
	scheduler := NewScheduler(server, clock)

	started := clock.Now()
	report, err := scheduler.Run(context.Background(), NewQueue(requests(10, 31)))
	var unroutableErr *UnroutableRequestError
	if !errors.As(err, &unroutableErr) {
		t.Fatalf("expected unroutable error, got %v", err)
	}
	if unroutableErr.Request.ID != "r2" || unroutableErr.MaxTokenRate != 30 {
		t.Fatalf("unexpected error detail: %+v", unroutableErr)
	}
	// The routable head before it still completes; the failure must not
	// wait for refills that cannot help.
	if report.Fulfilled != 1 {
		t.Fatalf("expected 1 fulfilled before the failure, got %d", report.Fulfilled)
	}
	if !clock.Now().Equal(started) {
		t.Fatalf("fail-fast must not advance time")
	}
}

func TestScheduler_ZeroRequestCeilingIsUnroutable(t *testing.T) {
	clock := VirtualClock(time.Unix(0, 0))
	server := buildServer(t, clock, map[string]dispatch.Limits{
		"/dead": {RequestsPerSec: 0, TokensPerSec: 100},
	}, []string{"/dead"})
	scheduler := NewScheduler(server, clock)

	_, err := scheduler.Run(context.Background(), NewQueue(requests(1)))
	var unroutableErr *UnroutableRequestError
	if !errors.As(err, &unroutableErr) {
		t.Fatalf("expected unroutable error, got %v", err)
	}
}

func TestScheduler_ContextCancelStopsWait(t *testing.T) {
	clock := testutil.NewFakeClock(time.Unix(0, 0))
	server := buildServer(t, clock, map[string]dispatch.Limits{
		"/a": {RequestsPerSec: 1, TokensPerSec: 20},
	}, []string{"/a"})
	scheduler := NewScheduler(server, clock)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	queue := NewQueue(requests(15, 15))
	_, err := scheduler.Run(ctx, queue)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
	// The head that was admitted before cancellation stays popped; the
	// blocked head stays pending.
	if queue.Len() != 1 {
		t.Fatalf("expected 1 pending after cancel, got %d", queue.Len())
	}
}

func TestScheduler_RouteOverrideRestrictsProbes(t *testing.T) {
	clock := VirtualClock(time.Unix(0, 0))
	server := buildServer(t, clock, map[string]dispatch.Limits{
		"/a": {RequestsPerSec: 1, TokensPerSec: 20},
		"/b": {RequestsPerSec: 1, TokensPerSec: 20},
	}, []string{"/a", "/b"})
	observer := &recordingObserver{}
	scheduler := NewScheduler(server, clock, WithObserver(observer), WithRoutes([]string{"/b"}))

	report, err := scheduler.Run(context.Background(), NewQueue(requests(10, 10)))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.FulfilledByRoute["/b"] != 2 || report.FulfilledByRoute["/a"] != 0 {
		t.Fatalf("expected all admissions on /b: %+v", report.FulfilledByRoute)
	}
}
