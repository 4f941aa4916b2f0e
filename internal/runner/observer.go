package runner

import "time"

// DispatchEventType identifies a dispatch status update for observers.
type DispatchEventType string

const (
	// DispatchRunning marks an active provider call.
	DispatchRunning DispatchEventType = "running"
	// DispatchOK marks a completed call with a usable response.
	DispatchOK DispatchEventType = "ok"
	// DispatchFailed marks a call that produced an error response.
	DispatchFailed DispatchEventType = "failed"
)

// DispatchEvent carries a single status update for one query/config pair.
type DispatchEvent struct {
	Index     int
	Total     int
	ConfigID  string
	Provider  string
	QueryText string
	Type      DispatchEventType
	LatencyMS int64
	Tokens    int
	Error     string
	EmittedAt time.Time
}

// RunObserver receives run lifecycle events for UI or logging.
type RunObserver interface {
	// OnRunStart signals the start of a run.
	OnRunStart(runID string, queries, configs int)
	// OnConfigSkipped signals a config excluded before dispatch.
	OnConfigSkipped(configID, providerName, reason string)
	// OnDispatchEvent delivers a dispatch status update.
	OnDispatchEvent(event DispatchEvent)
	// OnRunEnd signals run completion.
	OnRunEnd(artifact Artifact)
}

// nopObserver discards all events.
type nopObserver struct{}

func (nopObserver) OnRunStart(string, int, int)            {}
func (nopObserver) OnConfigSkipped(string, string, string) {}
func (nopObserver) OnDispatchEvent(DispatchEvent)          {}
func (nopObserver) OnRunEnd(Artifact)                      {}

// ensureObserver substitutes a no-op observer for nil.
func ensureObserver(observer RunObserver) RunObserver {
	if observer == nil {
		return nopObserver{}
	}
	return observer
}
