package live

import (
	"time"

	"serpbench/internal/runner"
)

// DispatchRow holds UI state for a single query/config pair.
type DispatchRow struct {
	Index      int
	ConfigID   string
	Provider   string
	QueryText  string
	Status     runner.DispatchEventType
	LatencyMS  int64
	Tokens     int
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// StatusCounts aggregates rows by status bucket.
type StatusCounts struct {
	Pending int
	Running int
	OK      int
	Failed  int
}

// State captures the live UI state for a run.
type State struct {
	RunID     string
	StartedAt time.Time
	Total     int
	Skipped   []string
	Rows      []DispatchRow
	Counts    StatusCounts
	LastEvent string
	Finished  bool
}
