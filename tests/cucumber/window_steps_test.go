package cucumber

import (
	"fmt"
	"time"

	"serpbench/internal/query"
)

func (s *featureState) aQueryValidBetween(from, until string) error {
	validFrom, err := parseBound(from)
	if err != nil {
		return fmt.Errorf("valid_from: %w", err)
	}
	validUntil, err := parseBound(until)
	if err != nil {
		return fmt.Errorf("valid_until: %w", err)
	}
	s.windowQueries = append(s.windowQueries, query.Query{
		Text:       fmt.Sprintf("window query %d", len(s.windowQueries)+1),
		ValidFrom:  validFrom,
		ValidUntil: validUntil,
	})
	return nil
}

func (s *featureState) theRunTimestampIs(value string) error {
	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("parse run timestamp: %w", err)
	}
	s.runAt = at
	return nil
}

func (s *featureState) theQueryIs(verdict string) error {
	if len(s.windowQueries) != 1 {
		return fmt.Errorf("expected exactly one query, have %d", len(s.windowQueries))
	}
	runnable := query.Runnable(s.windowQueries[0], s.runAt)
	switch verdict {
	case "runnable":
		if !runnable {
			return fmt.Errorf("query skipped at %s", s.runAt.Format(time.RFC3339))
		}
	case "skipped":
		if runnable {
			return fmt.Errorf("query runnable at %s", s.runAt.Format(time.RFC3339))
		}
	default:
		return fmt.Errorf("unknown verdict %q", verdict)
	}
	return nil
}

func (s *featureState) queriesRemainRunnable(count int) error {
	runnable := query.FilterRunnable(s.windowQueries, s.runAt)
	if len(runnable) != count {
		return fmt.Errorf("expected %d runnable queries, got %d", count, len(runnable))
	}
	return nil
}

// parseBound turns an optional RFC 3339 cell into a window bound. An
// empty cell leaves the bound open.
func parseBound(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &at, nil
}
