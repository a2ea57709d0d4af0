package cli

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// uiMode is a parsed --ui flag value.
type uiMode int

const (
	uiAuto uiMode = iota
	uiLive
	uiPlain
)

// parseUIMode maps the flag string to a mode. An empty value means auto.
func parseUIMode(value string) (uiMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return uiAuto, nil
	case "live":
		return uiLive, nil
	case "plain":
		return uiPlain, nil
	default:
		return uiAuto, fmt.Errorf("invalid ui mode %q (expected auto|live|plain)", value)
	}
}

// uiModeDecision captures whether to use the live UI.
type uiModeDecision struct {
	useLive bool
	warning string
}

// isTerminal reports whether a writer is a TTY.
var isTerminal = defaultIsTerminal

// resolveUIMode decides whether the run gets the live dashboard. Auto
// follows the TTY; an explicit live request on a non-TTY downgrades to
// plain with a warning rather than handing bubbletea a pipe.
func resolveUIMode(value string, stdout io.Writer) (uiModeDecision, error) {
	mode, err := parseUIMode(value)
	if err != nil {
		return uiModeDecision{}, err
	}
	tty := isTerminal(stdout)
	switch mode {
	case uiLive:
		if !tty {
			return uiModeDecision{
				warning: "Live UI requested but stdout is not a TTY; falling back to plain output.",
			}, nil
		}
		return uiModeDecision{useLive: true}, nil
	case uiPlain:
		return uiModeDecision{}, nil
	default:
		return uiModeDecision{useLive: tty}, nil
	}
}

// defaultIsTerminal inspects the writer for TTY support. Anything that
// cannot surface a file descriptor is treated as a pipe.
func defaultIsTerminal(stdout io.Writer) bool {
	fder, ok := stdout.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(fder.Fd()))
}
