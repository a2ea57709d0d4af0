package live

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the run header line.
func renderHeader(state State, now time.Time, noColor bool) string {
	line := "Dispatch run"
	if !state.StartedAt.IsZero() && !state.Done {
		line += " | Elapsed: " + now.Sub(state.StartedAt).Round(100*time.Millisecond).String()
	}
	if state.Done {
		line += " | Makespan: " + formatDuration(state.Report.Makespan)
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders the status counts line.
func renderSummary(state State, noColor bool) string {
	counts := state.Counts
	line := "Pending: " + fmtInt(counts.Pending) +
		" Blocked: " + fmtInt(counts.Blocked) +
		" Fulfilled: " + fmtInt(counts.Fulfilled) +
		" ReqRejects: " + fmtInt(counts.RequestRejections) +
		" TokRejects: " + fmtInt(counts.TokenRejections) +
		" Waits: " + fmtInt(counts.Waits)
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderFooter renders the last event line.
func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last event: "+state.LastEvent, noColor, lipgloss.Color("244"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
