package runner

import (
	"io"
	"time"

	"serpbench/internal/provider"
)

// ResultRecord captures one query/config dispatch with enough context
// to grade it without consulting the query or config files again.
type ResultRecord struct {
	QueryText   string            `json:"query_text"`
	GroundTruth string            `json:"ground_truth,omitempty"`
	ValidFrom   *time.Time        `json:"valid_from,omitempty"`
	ValidUntil  *time.Time        `json:"valid_until,omitempty"`
	ConfigID    string            `json:"config_id"`
	Provider    string            `json:"provider"`
	Params      provider.Params   `json:"params,omitempty"`
	ExecutedAt  time.Time         `json:"executed_at"`
	Response    provider.Response `json:"response"`
	HasError    bool              `json:"has_error"`
}

// Gradable reports whether the record qualifies for the grading pass.
func (r ResultRecord) Gradable() bool {
	return r.GroundTruth != "" && !r.HasError
}

// SkippedConfig records a provider config excluded from a run.
type SkippedConfig struct {
	ConfigID string `json:"config_id"`
	Provider string `json:"provider"`
	Reason   string `json:"reason"`
}

// Artifact is the self-contained output of one run.
type Artifact struct {
	RunID      string          `json:"run_id"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Results    []ResultRecord  `json:"results"`
	Skipped    []SkippedConfig `json:"skipped_configs,omitempty"`
	Summary    Summary         `json:"summary"`
}

// HasFailures reports whether any record in the artifact failed.
func (a Artifact) HasFailures() bool {
	for _, record := range a.Results {
		if record.HasError {
			return true
		}
	}
	return false
}

// Dependencies allows injecting the registry, clocks, and environment
// for a run.
type Dependencies struct {
	Registry  *provider.Registry
	RunID     func() (string, error)
	Now       func() time.Time
	LookupEnv func(key string) (string, bool)
	Observer  RunObserver
}

// RunParams configures a run invocation. Workers above 1 are clamped:
// the single-slot gate is the intentional backpressure against
// provider rate limits and keeps artifact order deterministic.
type RunParams struct {
	BaseDir   string
	OutputDir string
	Workers   int
	Warnings  io.Writer
	Deps      Dependencies
}
