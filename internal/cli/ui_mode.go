package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

type uiMode string

const (
	uiAuto  uiMode = "auto"
	uiLive  uiMode = "live"
	uiPlain uiMode = "plain"
)

// uiModeDecision is the outcome of mode resolution: whether to start
// the live view, and a warning to surface when the request was
// downgraded.
type uiModeDecision struct {
	useLive bool
	warning string
}

// isTerminal is swapped by tests to control TTY detection.
var isTerminal = defaultIsTerminal

// parseUIMode normalizes a --ui flag value.
func parseUIMode(raw string) (uiMode, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return uiAuto, nil
	}
	switch mode := uiMode(trimmed); mode {
	case uiAuto, uiLive, uiPlain:
		return mode, nil
	}
	return "", fmt.Errorf("invalid ui mode %q (expected auto|live|plain)", raw)
}

// resolveUIMode decides between the live view and plain output. An
// explicit live request on a non-TTY downgrades with a warning rather
// than erroring, so scripted invocations with --ui live still work.
func resolveUIMode(raw string, stdout io.Writer) (uiModeDecision, error) {
	mode, err := parseUIMode(raw)
	if err != nil {
		return uiModeDecision{}, err
	}
	tty := isTerminal(stdout)
	switch mode {
	case uiLive:
		if !tty {
			return uiModeDecision{
				warning: "Live UI requested but stdout is not a TTY; falling back to plain output.",
			}, nil
		}
		return uiModeDecision{useLive: true}, nil
	case uiPlain:
		return uiModeDecision{}, nil
	default:
		return uiModeDecision{useLive: tty}, nil
	}
}

// defaultIsTerminal reports whether the writer is backed by a TTY.
func defaultIsTerminal(stdout io.Writer) bool {
	type fder interface{ Fd() uintptr }
	switch w := stdout.(type) {
	case nil:
		return false
	case *os.File:
		return term.IsTerminal(int(w.Fd()))
	case fder:
		return term.IsTerminal(int(w.Fd()))
	default:
		return false
	}
}
