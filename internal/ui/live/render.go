package live

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// theme holds prebuilt styles for each UI section so render calls only
// concatenate and wrap text.
type theme struct {
	header  lipgloss.Style
	summary lipgloss.Style
	muted   lipgloss.Style
	footer  lipgloss.Style
	table   table.Styles
}

func newTheme(noColor bool) theme {
	grid := table.DefaultStyles()
	if noColor {
		plain := lipgloss.NewStyle()
		return theme{header: plain, summary: plain, muted: plain, footer: plain, table: grid}
	}
	grid.Header = grid.Header.Foreground(lipgloss.Color("252"))
	return theme{
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		summary: lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		footer:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		table:   grid,
	}
}

// renderHeader renders the run line with elapsed time.
func renderHeader(state State, now time.Time, th theme) string {
	parts := []string{"Run " + state.RunID}
	if !state.StartedAt.IsZero() {
		parts = append(parts, "Elapsed: "+now.Sub(state.StartedAt).Round(100*time.Millisecond).String())
	}
	if state.Finished {
		parts = append(parts, "finished")
	}
	return th.header.Render(strings.Join(parts, " | "))
}

// renderSummary renders the status counts with overall progress.
func renderSummary(state State, th theme) string {
	c := state.Counts
	line := fmt.Sprintf("Pending: %d Running: %d OK: %d Failed: %d", c.Pending, c.Running, c.OK, c.Failed)
	if state.Total > 0 {
		line += fmt.Sprintf("  [%d/%d]", c.OK+c.Failed, state.Total)
	}
	return th.summary.Render(line)
}

// renderSkipped renders the skipped-config line, empty when none were.
func renderSkipped(state State, th theme) string {
	if len(state.Skipped) == 0 {
		return ""
	}
	return th.muted.Render("Skipped configs: " + strings.Join(state.Skipped, ", "))
}

// renderFooter renders the last event line, empty before the first event.
func renderFooter(state State, th theme) string {
	if state.LastEvent == "" {
		return ""
	}
	return th.footer.Render("Last event: " + state.LastEvent)
}
