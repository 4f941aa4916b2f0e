package query

import "time"

// Query is one search question with optional expected-answer text and
// an optional temporal validity window.
type Query struct {
	Text        string     `json:"text" yaml:"text"`
	GroundTruth string     `json:"ground_truth,omitempty" yaml:"ground_truth,omitempty"`
	ValidFrom   *time.Time `json:"valid_from,omitempty" yaml:"valid_from,omitempty"`
	ValidUntil  *time.Time `json:"valid_until,omitempty" yaml:"valid_until,omitempty"`
}

// Gradable reports whether the query carries ground truth to grade against.
func (q Query) Gradable() bool {
	return q.GroundTruth != ""
}

// Temporal reports whether the query has any validity bound.
func (q Query) Temporal() bool {
	return q.ValidFrom != nil || q.ValidUntil != nil
}
