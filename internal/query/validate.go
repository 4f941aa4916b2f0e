package query

import (
	"fmt"
	"strings"
	"time"
)

// RejectReason categorizes why Sanitize dropped an entry.
type RejectReason string

const (
	// RejectText marks entries that are not mappings or have a
	// missing, empty, or non-string text field.
	RejectText RejectReason = "missing or invalid text"
	// RejectGroundTruth marks entries whose ground_truth is present
	// but not a string.
	RejectGroundTruth RejectReason = "ground_truth is not a string"
	// RejectValidFrom marks entries whose valid_from is present but
	// not a parseable timestamp.
	RejectValidFrom RejectReason = "valid_from is not a timestamp"
	// RejectValidUntil marks entries whose valid_until is present,
	// non-null, and not a parseable timestamp.
	RejectValidUntil RejectReason = "valid_until is not a timestamp"
	// RejectWindow marks entries whose valid_from is chronologically
	// after their valid_until.
	RejectWindow RejectReason = "valid_from is after valid_until"
)

// reasonOrder fixes the rendering order of report categories.
var reasonOrder = []RejectReason{
	RejectText,
	RejectGroundTruth,
	RejectValidFrom,
	RejectValidUntil,
	RejectWindow,
}

type rejectionRef struct {
	source string
	index  int
}

// Report aggregates Sanitize rejections grouped by reason so diagnostics
// print once per category rather than once per offending entry.
type Report struct {
	Total    int
	Kept     int
	rejected map[RejectReason][]rejectionRef
}

// Dropped returns how many entries Sanitize rejected.
func (r *Report) Dropped() int {
	return r.Total - r.Kept
}

// Count returns how many entries were rejected for a reason.
func (r *Report) Count(reason RejectReason) int {
	return len(r.rejected[reason])
}

// Summary returns one warning line per rejection category, naming the first
// offending entry of each.
func (r *Report) Summary() []string {
	var lines []string
	for _, reason := range reasonOrder {
		refs := r.rejected[reason]
		if len(refs) == 0 {
			continue
		}
		first := refs[0]
		lines = append(lines, fmt.Sprintf("dropped %d query entr%s: %s (first at %s[%d])",
			len(refs), plural(len(refs)), reason, first.source, first.index))
	}
	return lines
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

func (r *Report) reject(reason RejectReason, entry RawEntry) {
	if r.rejected == nil {
		r.rejected = map[RejectReason][]rejectionRef{}
	}
	r.rejected[reason] = append(r.rejected[reason], rejectionRef{source: entry.Source, index: entry.Index})
}

// Sanitize filters raw entries down to structurally valid queries. Each rule
// is checked in order and the first match rejects the entry; rejection never
// fails the run, it only shrinks the runnable set and surfaces in the report.
func Sanitize(entries []RawEntry) ([]Query, *Report) {
	report := &Report{Total: len(entries)}
	queries := make([]Query, 0, len(entries))
	for _, entry := range entries {
		q, reason, ok := sanitizeEntry(entry.Value)
		if !ok {
			report.reject(reason, entry)
			continue
		}
		queries = append(queries, q)
	}
	report.Kept = len(queries)
	return queries, report
}

func sanitizeEntry(value any) (Query, RejectReason, bool) {
	record, ok := value.(map[string]any)
	if !ok {
		return Query{}, RejectText, false
	}

	text, ok := record["text"].(string)
	text = strings.TrimSpace(text)
	if !ok || text == "" {
		return Query{}, RejectText, false
	}
	q := Query{Text: text}

	if raw, present := record["ground_truth"]; present {
		truth, ok := raw.(string)
		if !ok {
			return Query{}, RejectGroundTruth, false
		}
		q.GroundTruth = strings.TrimSpace(truth)
	}

	if raw, present := record["valid_from"]; present {
		from, ok := parseTimestamp(raw)
		if !ok {
			return Query{}, RejectValidFrom, false
		}
		q.ValidFrom = from
	}

	if raw, present := record["valid_until"]; present && raw != nil {
		// An explicit null means "currently true, no known expiry" and
		// keeps the upper bound open, same as leaving the field out.
		until, ok := parseTimestamp(raw)
		if !ok {
			return Query{}, RejectValidUntil, false
		}
		q.ValidUntil = until
	}

	if q.ValidFrom != nil && q.ValidUntil != nil && q.ValidFrom.After(*q.ValidUntil) {
		return Query{}, RejectWindow, false
	}

	return q, "", true
}

// parseTimestamp accepts a native timestamp (YAML resolves them during
// decoding) or an RFC 3339 string, with a date-only fallback.
func parseTimestamp(value any) (*time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		t := v.UTC()
		return &t, true
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			t = t.UTC()
			return &t, true
		}
		if t, err := time.Parse("2006-01-02", v); err == nil {
			t = t.UTC()
			return &t, true
		}
		return nil, false
	default:
		return nil, false
	}
}
