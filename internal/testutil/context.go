package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds tests that pass no explicit timeout.
const DefaultTimeout = 5 * time.Second

// deadlineMargin is withheld from the -timeout deadline so a test that
// times out fails with its own error instead of the framework's panic.
const deadlineMargin = time.Second

// Context returns a context canceled when the test ends. The effective
// timeout is the smaller of the requested one (DefaultTimeout when
// non-positive) and the test binary's own deadline.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	effective := timeout
	if effective <= 0 {
		effective = DefaultTimeout
	}
	if deadline, ok := t.Deadline(); ok {
		if budget := time.Until(deadline) - deadlineMargin; budget > 0 && budget < effective {
			effective = budget
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), effective)
	t.Cleanup(cancel)
	return ctx
}
