package grader

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"serpbench/internal/artifact"
	"serpbench/internal/runner"
	"serpbench/internal/tokens"
)

// GradingArtifact is the persisted outcome of one grading pass. The
// model's raw output is kept verbatim; Records holds the parsed grades
// when the output decoded cleanly. Outcome is empty when no model call
// was made because nothing qualified for grading.
type GradingArtifact struct {
	RunID     string       `json:"run_id"`
	Model     string       `json:"model"`
	GradedAt  time.Time    `json:"graded_at"`
	Gradable  int          `json:"gradable_records"`
	RawOutput string       `json:"raw_output"`
	Outcome   ParseOutcome `json:"parse_outcome,omitempty"`
	Records   []Record     `json:"records,omitempty"`
}

// Grader scores run artifacts with an external model. Re-grading a run
// replaces its previous grading artifact.
type Grader struct {
	Store            artifact.Store
	Chat             Chat
	Model            string
	InstructionsPath string
	Now              func() time.Time
	Out              io.Writer
}

// Grade loads a run artifact, sends its gradable records to the model
// in one call, and persists the grading artifact. Records without
// ground truth and records that failed are excluded before the call.
func (g Grader) Grade(ctx context.Context, runID string) (GradingArtifact, error) {
	out := g.Out
	if out == nil {
		out = io.Discard
	}
	now := g.Now
	if now == nil {
		now = time.Now
	}
	if strings.TrimSpace(g.Model) == "" {
		return GradingArtifact{}, fmt.Errorf("grader model is required")
	}
	if g.Chat == nil {
		return GradingArtifact{}, fmt.Errorf("grader chat client is required")
	}

	var art runner.Artifact
	if err := g.Store.LoadRun(runID, &art); err != nil {
		return GradingArtifact{}, fmt.Errorf("load run %s: %w", runID, err)
	}
	instructions, err := os.ReadFile(g.InstructionsPath)
	if err != nil {
		return GradingArtifact{}, fmt.Errorf("read grading instructions: %w", err)
	}

	items := gradableItems(art.Results)
	grading := GradingArtifact{
		RunID:    runID,
		Model:    g.Model,
		GradedAt: now().UTC(),
		Gradable: len(items),
	}
	if len(items) == 0 {
		fmt.Fprintf(out, "no gradable records in run %s\n", runID)
		if err := g.Store.SaveGrading(runID, grading); err != nil {
			return GradingArtifact{}, fmt.Errorf("write grading artifact: %w", err)
		}
		return grading, nil
	}

	prompt, err := BuildPrompt(string(instructions), items)
	if err != nil {
		return GradingArtifact{}, err
	}
	fmt.Fprintf(out, "grading %d records (~%d tokens) with %s\n", len(items), tokens.EstimateString(prompt), g.Model)

	raw, err := g.Chat.Complete(ctx, g.Model, prompt)
	if err != nil {
		return GradingArtifact{}, fmt.Errorf("grade run %s: %w", runID, err)
	}
	grading.RawOutput = raw
	outcome, records := Classify(raw)
	grading.Outcome = outcome
	grading.Records = records
	switch outcome {
	case ParsedValid:
		fmt.Fprintf(out, "parsed %d grades\n", len(records))
	case ParsedWrongShape:
		fmt.Fprintln(out, "warning: grader output parsed but does not match the expected shape")
	case Unparsable:
		fmt.Fprintln(out, "warning: grader output is not valid JSON; raw output persisted")
	}

	if err := g.Store.SaveGrading(runID, grading); err != nil {
		return GradingArtifact{}, fmt.Errorf("write grading artifact: %w", err)
	}
	return grading, nil
}

// gradableItems filters records down to those with ground truth and a
// clean response.
func gradableItems(records []runner.ResultRecord) []PromptItem {
	items := make([]PromptItem, 0, len(records))
	for _, record := range records {
		if !record.Gradable() {
			continue
		}
		items = append(items, PromptItem{
			ConfigID:    record.ConfigID,
			Provider:    record.Provider,
			Query:       record.QueryText,
			GroundTruth: record.GroundTruth,
			Response:    record.Response.Raw,
		})
	}
	return items
}
