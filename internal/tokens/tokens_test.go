package tokens

import "testing"

// TestEstimate verifies the four-characters-per-token heuristic.
func TestEstimate(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 0},
		{"abcd", 1},
		{"hello world, this is a payload", 7},
	}
	for _, tc := range cases {
		if got := Estimate([]byte(tc.in)); got != tc.want {
			t.Fatalf("Estimate(%q) = %d, want %d", tc.in, got, tc.want)
		}
		if got := EstimateString(tc.in); got != tc.want {
			t.Fatalf("EstimateString(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
