package live

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// defaultColumns defines the request table layout.
func defaultColumns() []table.Column {
	return []table.Column{
		{Title: "Request", Width: 12},
		{Title: "Cost", Width: 8},
		{Title: "Status", Width: 14},
		{Title: "Route", Width: 16},
		{Title: "Rejections", Width: 10},
	}
}

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			row.ID,
			fmtUint(row.TokenCost),
			formatStatus(row, noColor),
			row.Route,
			formatRejections(row.Rejections),
		})
	}
	return rows
}
