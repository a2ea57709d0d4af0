package cli

import (
	"bytes"
	"io"
	"testing"
)

func withTerminal(t *testing.T, tty bool) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(io.Writer) bool { return tty }
	t.Cleanup(func() { isTerminal = orig })
}

func TestResolveUIModeAuto(t *testing.T) {
	withTerminal(t, true)
	decision, err := resolveUIMode("auto", &bytes.Buffer{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !decision.useLive {
		t.Fatal("expected live UI on a TTY")
	}

	withTerminal(t, false)
	decision, err = resolveUIMode("auto", &bytes.Buffer{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if decision.useLive {
		t.Fatal("expected plain output without a TTY")
	}
}

func TestResolveUIModeLiveFallsBackWithoutTTY(t *testing.T) {
	withTerminal(t, false)
	decision, err := resolveUIMode("live", &bytes.Buffer{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if decision.useLive {
		t.Fatal("expected fallback to plain")
	}
	if decision.warning == "" {
		t.Fatal("expected a fallback warning")
	}
}

func TestResolveUIModePlain(t *testing.T) {
	withTerminal(t, true)
	decision, err := resolveUIMode("plain", &bytes.Buffer{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if decision.useLive {
		t.Fatal("expected plain output")
	}
}

func TestResolveUIModeInvalid(t *testing.T) {
	if _, err := resolveUIMode("fancy", &bytes.Buffer{}); err == nil {
		t.Fatal("expected an error for an invalid mode")
	}
}

func TestParseUIModeEmptyMeansAuto(t *testing.T) {
	mode, err := parseUIMode("")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if mode != uiAuto {
		t.Fatalf("expected auto, got %d", mode)
	}
}
