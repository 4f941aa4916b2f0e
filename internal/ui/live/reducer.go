package live

import (
	"fmt"

	"serpbench/internal/runner"
)

// Reduce applies a dispatch event to the UI state. Event indexes are
// 1-based positions in the query/config cross product.
func Reduce(state State, event runner.DispatchEvent) State {
	state = ensureRow(state, event)
	state = applyDispatchEvent(state, event)
	if event.Total > state.Total {
		state.Total = event.Total
	}
	state.Counts = recount(state.Rows, state.Total)
	if message := formatLastEvent(event); message != "" {
		state.LastEvent = message
	}
	return state
}

// ensureRow grows the state rows to include the event's slot.
func ensureRow(state State, event runner.DispatchEvent) State {
	slot := event.Index - 1
	if slot < 0 {
		return state
	}
	if slot < len(state.Rows) {
		return state
	}
	rows := make([]DispatchRow, slot+1)
	copy(rows, state.Rows)
	for i := len(state.Rows); i < len(rows); i++ {
		rows[i] = DispatchRow{Index: i + 1}
	}
	state.Rows = rows
	return state
}

// applyDispatchEvent updates a row with the given event.
func applyDispatchEvent(state State, event runner.DispatchEvent) State {
	slot := event.Index - 1
	if slot < 0 || slot >= len(state.Rows) {
		return state
	}
	row := state.Rows[slot]
	if row.ConfigID == "" {
		row.ConfigID = event.ConfigID
	}
	if row.Provider == "" {
		row.Provider = event.Provider
	}
	if row.QueryText == "" {
		row.QueryText = event.QueryText
	}
	row.Status = event.Type
	switch event.Type {
	case runner.DispatchRunning:
		if row.StartedAt.IsZero() {
			row.StartedAt = event.EmittedAt
		}
	case runner.DispatchOK, runner.DispatchFailed:
		row.LatencyMS = event.LatencyMS
		row.Tokens = event.Tokens
		row.Error = event.Error
		if !event.EmittedAt.IsZero() {
			row.FinishedAt = event.EmittedAt
		}
	}
	state.Rows[slot] = row
	return state
}

// recount recomputes status counts for the current rows.
func recount(rows []DispatchRow, total int) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case runner.DispatchRunning:
			counts.Running++
		case runner.DispatchOK:
			counts.OK++
		case runner.DispatchFailed:
			counts.Failed++
		}
	}
	counts.Pending = total - counts.Running - counts.OK - counts.Failed
	if counts.Pending < 0 {
		counts.Pending = 0
	}
	return counts
}

// formatLastEvent creates a short footer message for the event.
func formatLastEvent(event runner.DispatchEvent) string {
	switch event.Type {
	case runner.DispatchFailed:
		return fmt.Sprintf("%d/%d %s failed: %s", event.Index, event.Total, event.ConfigID, event.Error)
	case runner.DispatchOK:
		return fmt.Sprintf("%d/%d %s done (%s)", event.Index, event.Total, event.ConfigID, formatLatency(event.LatencyMS))
	default:
		return ""
	}
}
