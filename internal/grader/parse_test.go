package grader

import "testing"

// TestClassifyValidArray verifies well-formed output parses into records.
func TestClassifyValidArray(t *testing.T) {
	outcome, records := Classify(`[
  {"config_id":"c1","query":"q1","score":9,"reasoning":"found it"},
  {"config_id":"c2","query":"q1","score":3}
]`)
	if outcome != ParsedValid {
		t.Fatalf("unexpected outcome %s", outcome)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ConfigID != "c1" || records[0].Score != 9 || records[0].Reasoning != "found it" {
		t.Fatalf("unexpected first record %+v", records[0])
	}
	if records[1].Reasoning != "" {
		t.Fatalf("reasoning should be optional, got %+v", records[1])
	}
}

// TestClassifyFencedOutput verifies markdown fences are tolerated.
func TestClassifyFencedOutput(t *testing.T) {
	outcome, records := Classify("```json\n[{\"config_id\":\"c1\",\"query\":\"q\",\"score\":5}]\n```")
	if outcome != ParsedValid || len(records) != 1 {
		t.Fatalf("unexpected result: %s, %d records", outcome, len(records))
	}
}

// TestClassifyEmptyArray verifies an empty grade list is valid.
func TestClassifyEmptyArray(t *testing.T) {
	outcome, records := Classify("[]")
	if outcome != ParsedValid || len(records) != 0 {
		t.Fatalf("unexpected result: %s, %d records", outcome, len(records))
	}
}

// TestClassifyWrongShape verifies valid JSON with the wrong structure.
func TestClassifyWrongShape(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{name: "object instead of array", raw: `{"score":5}`},
		{name: "array of scalars", raw: `[5, 6]`},
		{name: "missing config_id", raw: `[{"query":"q","score":5}]`},
		{name: "missing score", raw: `[{"config_id":"c1","query":"q"}]`},
		{name: "score above range", raw: `[{"config_id":"c1","query":"q","score":11}]`},
		{name: "score below range", raw: `[{"config_id":"c1","query":"q","score":-1}]`},
		{name: "string score", raw: `[{"config_id":"c1","query":"q","score":"high"}]`},
	}
	for _, tc := range cases {
		outcome, records := Classify(tc.raw)
		if outcome != ParsedWrongShape {
			t.Fatalf("%s: expected wrong shape, got %s", tc.name, outcome)
		}
		if records != nil {
			t.Fatalf("%s: expected nil records, got %v", tc.name, records)
		}
	}
}

// TestClassifyFractionalScore verifies in-range fractional scores pass.
func TestClassifyFractionalScore(t *testing.T) {
	outcome, records := Classify(`[{"config_id":"c1","query":"q","score":7.5}]`)
	if outcome != ParsedValid || records[0].Score != 7.5 {
		t.Fatalf("unexpected result: %s, %+v", outcome, records)
	}
}

// TestClassifyUnparsable verifies non-JSON output.
func TestClassifyUnparsable(t *testing.T) {
	for _, raw := range []string{"I cannot grade this.", "", "```\nnot json\n```"} {
		outcome, records := Classify(raw)
		if outcome != Unparsable || records != nil {
			t.Fatalf("expected unparsable for %q, got %s", raw, outcome)
		}
	}
}
