package cli

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"serpbench/internal/artifact"
	"serpbench/internal/config"
	"serpbench/internal/provider"
	"serpbench/internal/runner"
)

// scaffoldWorkspace writes a starter config tree into a temp dir and
// returns the dir and config path.
func scaffoldWorkspace(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	configPath := filepath.Join(dir, config.ConfigFileName)
	if err := config.Scaffold(configPath); err != nil {
		t.Fatalf("scaffold workspace: %v", err)
	}
	return dir, configPath
}

// writeRunArtifact stores a one-record run artifact under the
// workspace's default output dir.
func writeRunArtifact(t *testing.T, dir, runID string, failed bool) runner.Artifact {
	t.Helper()
	executed := time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC)
	record := runner.ResultRecord{
		QueryText:   "capital of France",
		GroundTruth: "Paris",
		ConfigID:    "brave-default",
		Provider:    "brave",
		ExecutedAt:  executed,
		Response:    provider.Response{Raw: []byte(`{"ok":true}`), LatencyMS: 120, TokenCount: 40},
	}
	if failed {
		record.Response = provider.Response{Err: "search brave: status 429"}
		record.HasError = true
	}
	art := runner.Artifact{
		RunID:      runID,
		StartedAt:  executed,
		FinishedAt: executed.Add(time.Second),
		Results:    []runner.ResultRecord{record},
		Summary: runner.Summary{
			QueriesTotal:    1,
			QueriesRunnable: 1,
			ConfigsTotal:    1,
			ResultsTotal:    1,
			ResultsOK:       1,
			PerConfig: []runner.ConfigSummary{
				{ConfigID: "brave-default", Provider: "brave", OK: 1},
			},
		},
	}
	if failed {
		art.Summary.ResultsOK = 0
		art.Summary.ResultsFailed = 1
		art.Summary.PerConfig[0] = runner.ConfigSummary{ConfigID: "brave-default", Provider: "brave", Failed: 1}
	}
	store := artifact.Store{Dir: filepath.Join(dir, "results")}
	if err := store.SaveRun(runID, art); err != nil {
		t.Fatalf("write run artifact: %v", err)
	}
	return art
}

// stubChat returns a canned grader reply.
type stubChat struct {
	reply string
	err   error
	calls int
}

func (s *stubChat) Complete(ctx context.Context, model, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}
