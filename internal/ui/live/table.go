package live

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
)

// defaultColumns returns the dispatch table layout.
func defaultColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 5},
		{Title: "Config", Width: 18},
		{Title: "Provider", Width: 10},
		{Title: "Query", Width: 60},
		{Title: "Status", Width: 24},
		{Title: "Time", Width: 8},
		{Title: "Tokens", Width: 7},
	}
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			strconv.Itoa(row.Index),
			row.ConfigID,
			row.Provider,
			formatQueryText(row.QueryText),
			formatStatus(row),
			formatRowDuration(row, now),
			formatTokens(row.Tokens),
		})
	}
	return rows
}
