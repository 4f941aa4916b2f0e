package cli

import (
	"fmt"
	"io"

	"serpbench/internal/runner"
)

// plainObserver prints one line per completed dispatch. It is the
// fallback when the live UI is off or stdout is not a TTY.
type plainObserver struct {
	out io.Writer
}

func (p plainObserver) OnRunStart(runID string, queries, configs int) {
	fmt.Fprintf(p.out, "Run %s: %d queries x %d configs\n", runID, queries, configs)
}

func (p plainObserver) OnConfigSkipped(configID, providerName, reason string) {
	fmt.Fprintf(p.out, "Skipping %s (%s): %s\n", configID, providerName, reason)
}

func (p plainObserver) OnDispatchEvent(event runner.DispatchEvent) {
	switch event.Type {
	case runner.DispatchOK:
		fmt.Fprintf(p.out, "[%d/%d] %s %q ok (%dms)\n",
			event.Index, event.Total, event.ConfigID, event.QueryText, event.LatencyMS)
	case runner.DispatchFailed:
		fmt.Fprintf(p.out, "[%d/%d] %s %q failed: %s\n",
			event.Index, event.Total, event.ConfigID, event.QueryText, event.Error)
	}
}

func (p plainObserver) OnRunEnd(artifact runner.Artifact) {}
