package live

import (
	"strconv"
	"strings"
	"time"

	"serpbench/internal/runner"
)

// formatQueryText truncates query text for display.
func formatQueryText(text string) string {
	normalized := strings.Join(strings.Fields(text), " ")
	if normalized == "" {
		return ""
	}
	const limit = 60
	if len(normalized) <= limit {
		return normalized
	}
	return normalized[:limit-3] + "..."
}

// statusLabel maps dispatch statuses to display labels.
func statusLabel(status runner.DispatchEventType) string {
	switch status {
	case runner.DispatchRunning:
		return "running"
	case runner.DispatchOK:
		return "ok"
	case runner.DispatchFailed:
		return "failed"
	default:
		return "pending"
	}
}

// formatStatus renders the status cell, folding in the error detail.
func formatStatus(row DispatchRow) string {
	label := statusLabel(row.Status)
	if row.Status == runner.DispatchFailed && row.Error != "" {
		detail := row.Error
		const limit = 40
		if len(detail) > limit {
			detail = detail[:limit-3] + "..."
		}
		return label + ": " + detail
	}
	return label
}

// formatLatency renders a millisecond latency for display.
func formatLatency(latencyMS int64) string {
	if latencyMS <= 0 {
		return "-"
	}
	return strconv.FormatInt(latencyMS, 10) + "ms"
}

// formatTokens renders a token estimate for display.
func formatTokens(tokens int) string {
	if tokens <= 0 {
		return "-"
	}
	return strconv.Itoa(tokens)
}

// formatRowDuration renders elapsed time for a row.
func formatRowDuration(row DispatchRow, now time.Time) string {
	switch {
	case row.StartedAt.IsZero():
		return ""
	case row.FinishedAt.IsZero():
		return formatDuration(now.Sub(row.StartedAt))
	default:
		return formatDuration(row.FinishedAt.Sub(row.StartedAt))
	}
}

// formatDuration renders a rounded duration for display.
func formatDuration(duration time.Duration) string {
	if duration <= 0 {
		return "0s"
	}
	return duration.Round(100 * time.Millisecond).String()
}
