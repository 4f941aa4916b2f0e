package live

import "serpbench/internal/runner"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventConfigSkipped reports a config excluded before dispatch.
	EventConfigSkipped
	// EventDispatch delivers a dispatch status update.
	EventDispatch
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind     EventKind
	RunID    string
	Queries  int
	Configs  int
	ConfigID string
	Provider string
	Reason   string
	Dispatch runner.DispatchEvent
}
