package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Options configures the live UI model.
type Options struct {
	NoColor      bool
	TickInterval time.Duration
}

const defaultTickInterval = 200 * time.Millisecond

// Model is the Bubble Tea model behind the live dispatch view.
type Model struct {
	state  State
	table  table.Model
	events <-chan Event
	tick   time.Duration
	now    time.Time
	theme  theme
}

// NewModel constructs the model for an event stream.
func NewModel(events <-chan Event, opts Options) Model {
	th := newTheme(opts.NoColor)
	grid := table.New(
		table.WithColumns(defaultColumns()),
		table.WithFocused(false),
	)
	grid.SetStyles(th.table)
	interval := opts.TickInterval
	if interval <= 0 {
		interval = defaultTickInterval
	}
	return Model{
		table:  grid,
		events: events,
		tick:   interval,
		now:    time.Now(),
		theme:  th,
	}
}

// Init starts the tick loop and subscribes to the event stream.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.nextEvent(), tickEvery(m.tick))
}

// Update consumes UI events, timer ticks, and resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(typed.Width)
		m.table.SetHeight(max(typed.Height-5, 1))
		return m, nil
	case EventMsg:
		m = m.consume(typed.Event)
		return m, m.nextEvent()
	case tickMsg:
		m.now = time.Time(typed)
		m.table.SetRows(rowsForState(m.state, m.now))
		return m, tickEvery(m.tick)
	}
	return m, nil
}

// View stacks the non-empty sections above and below the dispatch table.
func (m Model) View() string {
	sections := make([]string, 0, 5)
	sections = append(sections,
		renderHeader(m.state, m.now, m.theme),
		renderSummary(m.state, m.theme),
	)
	if line := renderSkipped(m.state, m.theme); line != "" {
		sections = append(sections, line)
	}
	sections = append(sections, m.table.View())
	if line := renderFooter(m.state, m.theme); line != "" {
		sections = append(sections, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// consume folds one event into the model state.
func (m Model) consume(event Event) Model {
	switch event.Kind {
	case EventRunStart:
		m.state.RunID = event.RunID
		m.state.Total = event.Queries * event.Configs
		if m.state.StartedAt.IsZero() {
			m.state.StartedAt = time.Now()
		}
	case EventConfigSkipped:
		m.state.Skipped = append(m.state.Skipped, event.ConfigID)
		m.state.LastEvent = "skipped " + event.ConfigID + ": " + event.Reason
	case EventDispatch:
		m.state = Reduce(m.state, event.Dispatch)
	case EventRunEnd:
		m.state.Finished = true
	}
	m.table.SetRows(rowsForState(m.state, m.now))
	return m
}

// EventMsg wraps an Event for Bubble Tea delivery.
type EventMsg struct {
	Event Event
}

type tickMsg time.Time

// nextEvent blocks until the next event, quitting when the stream closes.
func (m Model) nextEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		event, ok := <-events
		if !ok {
			return tea.Quit()
		}
		return EventMsg{Event: event}
	}
}

func tickEvery(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}
