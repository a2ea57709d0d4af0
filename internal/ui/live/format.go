package live

import (
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// fmtUint converts a token count to string.
func fmtUint(value uint64) string {
	return strconv.FormatUint(value, 10)
}

// formatDuration renders a rounded duration for display.
func formatDuration(duration time.Duration) string {
	if duration <= 0 {
		return "0s"
	}
	return duration.Round(time.Millisecond).String()
}

// formatRejections formats rejection counts for display.
func formatRejections(rejections int) string {
	if rejections <= 0 {
		return ""
	}
	return fmtInt(rejections)
}

// formatStatus renders a colored status label for a row.
func formatStatus(row RequestRow, noColor bool) string {
	text := string(row.Status)
	if noColor {
		return text
	}
	return statusStyle(row.Status).Render(text)
}

// statusStyle selects a style for a given status.
func statusStyle(status RowStatus) lipgloss.Style {
	color := lipgloss.Color("246")
	switch status {
	case StatusFulfilled:
		color = lipgloss.Color("42")
	case StatusBlocked:
		color = lipgloss.Color("39")
	}
	return lipgloss.NewStyle().Foreground(color)
}
