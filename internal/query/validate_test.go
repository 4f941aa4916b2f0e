package query

import (
	"strings"
	"testing"
	"time"
)

func rawEntries(values ...any) []RawEntry {
	entries := make([]RawEntry, 0, len(values))
	for i, value := range values {
		entries = append(entries, RawEntry{Source: "static.yaml", Index: i, Value: value})
	}
	return entries
}

// TestSanitizeKeepsValidEntries verifies well-formed entries pass through untouched.
func TestSanitizeKeepsValidEntries(t *testing.T) {
	entries := rawEntries(
		map[string]any{"text": "What is Go?"},
		map[string]any{"text": "Who won?", "ground_truth": "The home team."},
		map[string]any{
			"text":        "Current chancellor?",
			"valid_from":  "2025-01-28T23:00:00Z",
			"valid_until": "2025-02-01T19:00:00Z",
		},
	)
	queries, report := Sanitize(entries)
	if len(queries) != 3 {
		t.Fatalf("expected 3 queries, got %d", len(queries))
	}
	if report.Dropped() != 0 {
		t.Fatalf("expected no rejections, got %d", report.Dropped())
	}
	if queries[1].GroundTruth != "The home team." {
		t.Fatalf("unexpected ground truth: %q", queries[1].GroundTruth)
	}
	if queries[2].ValidFrom == nil || queries[2].ValidUntil == nil {
		t.Fatalf("expected both bounds parsed")
	}
}

// TestSanitizeDropsMalformedText verifies the empty-text rule drops exactly the bad entry.
func TestSanitizeDropsMalformedText(t *testing.T) {
	entries := rawEntries(
		map[string]any{"text": "a"},
		map[string]any{"text": ""},
		map[string]any{"text": "b"},
		map[string]any{"text": "c"},
	)
	queries, report := Sanitize(entries)
	if len(queries) != 3 {
		t.Fatalf("expected 3 queries, got %d", len(queries))
	}
	if report.Count(RejectText) != 1 {
		t.Fatalf("expected 1 text rejection, got %d", report.Count(RejectText))
	}
	lines := report.Summary()
	if len(lines) != 1 {
		t.Fatalf("expected a single warning line, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "static.yaml[1]") {
		t.Fatalf("expected warning to name the first offender, got %q", lines[0])
	}
}

// TestSanitizeRejectionRules verifies each rejection rule fires on its own category.
func TestSanitizeRejectionRules(t *testing.T) {
	cases := []struct {
		name   string
		value  any
		reason RejectReason
	}{
		{"not a record", "just a string", RejectText},
		{"missing text", map[string]any{"ground_truth": "x"}, RejectText},
		{"non-string text", map[string]any{"text": 7}, RejectText},
		{"whitespace text", map[string]any{"text": "   "}, RejectText},
		{"non-string ground truth", map[string]any{"text": "q", "ground_truth": 3.5}, RejectGroundTruth},
		{"null ground truth", map[string]any{"text": "q", "ground_truth": nil}, RejectGroundTruth},
		{"bad valid_from", map[string]any{"text": "q", "valid_from": "yesterday"}, RejectValidFrom},
		{"null valid_from", map[string]any{"text": "q", "valid_from": nil}, RejectValidFrom},
		{"bad valid_until", map[string]any{"text": "q", "valid_until": "soon"}, RejectValidUntil},
		{"inverted window", map[string]any{
			"text":        "q",
			"valid_from":  "2025-02-01T00:00:00Z",
			"valid_until": "2025-01-01T00:00:00Z",
		}, RejectWindow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			queries, report := Sanitize(rawEntries(tc.value))
			if len(queries) != 0 {
				t.Fatalf("expected entry to be dropped, kept %d", len(queries))
			}
			if report.Count(tc.reason) != 1 {
				t.Fatalf("expected rejection under %q, report: %v", tc.reason, report.Summary())
			}
		})
	}
}

// TestSanitizeAcceptsExplicitNullValidUntil verifies null valid_until keeps the window open.
func TestSanitizeAcceptsExplicitNullValidUntil(t *testing.T) {
	entries := rawEntries(map[string]any{
		"text":        "q",
		"valid_from":  "2025-01-28T23:00:00Z",
		"valid_until": nil,
	})
	queries, report := Sanitize(entries)
	if report.Dropped() != 0 {
		t.Fatalf("explicit null valid_until must not reject: %v", report.Summary())
	}
	if len(queries) != 1 || queries[0].ValidUntil != nil {
		t.Fatalf("expected open upper bound, got %+v", queries)
	}
	if !Runnable(queries[0], ts(t, "2999-01-01T00:00:00Z")) {
		t.Fatalf("expected open window to run far in the future")
	}
}

// TestSanitizeAcceptsNativeTimestamps verifies timestamps already decoded by YAML pass through.
func TestSanitizeAcceptsNativeTimestamps(t *testing.T) {
	from := time.Date(2025, 1, 28, 23, 0, 0, 0, time.UTC)
	queries, report := Sanitize(rawEntries(map[string]any{"text": "q", "valid_from": from}))
	if report.Dropped() != 0 {
		t.Fatalf("unexpected rejections: %v", report.Summary())
	}
	if queries[0].ValidFrom == nil || !queries[0].ValidFrom.Equal(from) {
		t.Fatalf("unexpected valid_from: %v", queries[0].ValidFrom)
	}
}

// TestReportSummaryGroupsByCategory verifies one line per category regardless of count.
func TestReportSummaryGroupsByCategory(t *testing.T) {
	entries := rawEntries(
		map[string]any{"text": ""},
		map[string]any{"text": ""},
		map[string]any{"text": ""},
		map[string]any{"text": "q", "valid_from": "nope"},
	)
	_, report := Sanitize(entries)
	lines := report.Summary()
	if len(lines) != 2 {
		t.Fatalf("expected 2 category lines, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "dropped 3") {
		t.Fatalf("expected aggregated count in %q", lines[0])
	}
}
