package dispatch

import (
	"errors"
	"testing"
	"time"

	"inferoute/internal/testutil"
)

func TestEndpoint_AdmitReturnsHeader(t *testing.T) {
	clock := testutil.NewFakeClock(time.Unix(0, 0))
	endpoint := NewEndpoint("/a", Limits{RequestsPerSec: 1, TokensPerSec: 20}, clock)

	header, err := endpoint.Admit(Request{ID: "r1", TokenCost: 15})
	if err != nil {
		t.Fatalf("admit: %v", err)
	}
	if header.Route != "/a" || header.RequestID != "r1" {
		t.Fatalf("unexpected header identity: %+v", header)
	}
	if header.RequestsRemaining != 0 || header.TokensRemaining != 5 {
		t.Fatalf("unexpected remaining capacity: %+v", header)
	}
	if !header.AdmittedAt.Equal(clock.Now()) {
		t.Fatalf("expected admitted_at %s, got %s", clock.Now(), header.AdmittedAt)
	}
}

func TestEndpoint_BackToBackHitsRequestGate(t *testing.T) {
	clock := testutil.NewFakeClock(time.Unix(0, 0))
	endpoint := NewEndpoint("/ab", Limits{RequestsPerSec: 1, TokensPerSec: 20}, clock)

	if _, err := endpoint.Admit(Request{ID: "r1", TokenCost: 15}); err != nil {
		t.Fatalf("first admit: %v", err)
	}
	_, err := endpoint.Admit(Request{ID: "r2", TokenCost: 15})
	var reqErr *RequestLimitError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected request limit error, got %v", err)
	}
	if reqErr.Route != "/ab" || reqErr.Request.ID != "r2" {
		t.Fatalf("unexpected error detail: %+v", reqErr)
	}
}

func TestEndpoint_OversizedCostHitsTokenGateWhenIdle(t *testing.T) {
	clock := testutil.NewFakeClock(time.Unix(0, 0))
	// 360 tokens/min is 6 tokens/sec.
	endpoint := NewEndpoint("/b", Limits{RequestsPerSec: 1, TokensPerSec: 6}, clock)

	_, err := endpoint.Admit(Request{ID: "r1", TokenCost: 10})
	var tokErr *TokenLimitError
	if !errors.As(err, &tokErr) {
		t.Fatalf("expected token limit error, got %v", err)
	}
}

func TestEndpoint_RefillRestoresAdmission(t *testing.T) {
	clock := testutil.NewFakeClock(time.Unix(0, 0))
	endpoint := NewEndpoint("/a", Limits{RequestsPerSec: 1, TokensPerSec: 20}, clock)

	if _, err := endpoint.Admit(Request{ID: "r1", TokenCost: 20}); err != nil {
		t.Fatalf("first admit: %v", err)
	}
	clock.Advance(time.Second)
	if _, err := endpoint.Admit(Request{ID: "r2", TokenCost: 20}); err != nil {
		t.Fatalf("admit after refill: %v", err)
	}
}

func TestEndpoint_CanAdmitDoesNotDeduct(t *testing.T) {
	clock := testutil.NewFakeClock(time.Unix(0, 0))
	endpoint := NewEndpoint("/a", Limits{RequestsPerSec: 1, TokensPerSec: 20}, clock)

	for i := 0; i < 5; i++ {
		if kind := endpoint.CanAdmit(20); kind != LimitNone {
			t.Fatalf("probe %d changed admission state: %s", i, kind)
		}
	}
	if _, err := endpoint.Admit(Request{ID: "r1", TokenCost: 20}); err != nil {
		t.Fatalf("admit after probes: %v", err)
	}
}

func TestKindOf(t *testing.T) {
	reqErr := &RequestLimitError{Route: "/a", Request: Request{ID: "r"}}
	tokErr := &TokenLimitError{Route: "/a", Request: Request{ID: "r"}}
	if KindOf(reqErr) != LimitRequests {
		t.Fatalf("expected request kind")
	}
	if KindOf(tokErr) != LimitTokens {
		t.Fatalf("expected token kind")
	}
	if KindOf(&UnknownRouteError{Route: "/x"}) != LimitNone {
		t.Fatalf("unknown route is not a limit rejection")
	}
	if IsLimitError(nil) {
		t.Fatalf("nil is not a limit rejection")
	}
}
