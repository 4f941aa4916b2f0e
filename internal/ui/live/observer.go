package live

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"serpbench/internal/runner"
)

// Controller bridges runner callbacks onto the Bubble Tea program.
// It implements runner.RunObserver.
type Controller struct {
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// Start launches the live UI on stdout and returns its controller.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	c := &Controller{
		events: make(chan Event, 256),
		done:   make(chan struct{}),
	}
	program := tea.NewProgram(NewModel(c.events, opts), tea.WithOutput(stdout), tea.WithAltScreen())
	go func() {
		defer close(c.done)
		_, _ = program.Run()
	}()
	return c
}

// Close ends the event stream; the UI quits once it drains.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() { close(c.events) })
}

// Wait blocks until the UI goroutine has exited.
func (c *Controller) Wait() {
	if c == nil {
		return
	}
	<-c.done
}

// OnRunStart seeds the header and the expected dispatch total.
func (c *Controller) OnRunStart(runID string, queries, configs int) {
	c.send(Event{Kind: EventRunStart, RunID: runID, Queries: queries, Configs: configs})
}

// OnConfigSkipped records a config excluded before dispatch.
func (c *Controller) OnConfigSkipped(configID, providerName, reason string) {
	c.send(Event{Kind: EventConfigSkipped, ConfigID: configID, Provider: providerName, Reason: reason})
}

// OnDispatchEvent forwards one dispatch status change.
func (c *Controller) OnDispatchEvent(event runner.DispatchEvent) {
	c.send(Event{Kind: EventDispatch, Dispatch: event})
}

// OnRunEnd marks the run finished and closes the stream.
func (c *Controller) OnRunEnd(artifact runner.Artifact) {
	c.send(Event{Kind: EventRunEnd})
	c.Close()
}

// send enqueues an event without blocking the runner. A full buffer
// drops the event; the artifact still records every result.
func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	select {
	case c.events <- event:
	default:
	}
}
