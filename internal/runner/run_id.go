package runner

import "time"

// FormatRunID renders a run's start instant as its identifier.
// Lexicographic order over run IDs matches chronological order.
func FormatRunID(startedAt time.Time) string {
	return startedAt.UTC().Format("20060102T150405Z")
}

// ensureRunID uses the provided generator or derives the ID from the
// run's start instant.
func ensureRunID(generator func() (string, error), startedAt time.Time) (string, error) {
	if generator != nil {
		return generator()
	}
	return FormatRunID(startedAt), nil
}
