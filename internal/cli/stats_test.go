package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"serpbench/internal/artifact"
	"serpbench/internal/grader"
)

// TestStatsCommandIngestsAndReports verifies artifacts land in DuckDB with aggregates.
func TestStatsCommandIngestsAndReports(t *testing.T) {
	dir, configPath := scaffoldWorkspace(t)
	writeRunArtifact(t, dir, "20250129T000000Z", true)
	writeRunArtifact(t, dir, "20250130T000000Z", false)
	store := artifact.Store{Dir: filepath.Join(dir, "results")}
	grading := grader.GradingArtifact{
		RunID:    "20250130T000000Z",
		Model:    "gpt-4o-mini",
		GradedAt: time.Date(2025, 1, 30, 1, 0, 0, 0, time.UTC),
		Gradable: 1,
		Outcome:  grader.ParsedValid,
		Records: []grader.Record{
			{ConfigID: "brave-default", Query: "capital of France", Score: 7.5},
		},
	}
	if err := store.SaveGrading(grading.RunID, grading); err != nil {
		t.Fatalf("write grading artifact: %v", err)
	}

	dbPath := filepath.Join(t.TempDir(), "stats.duckdb")
	var stdout, stderr bytes.Buffer
	code := Run([]string{"stats", "--config", configPath, "--db", dbPath}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("unexpected exit: %d, stderr: %s", code, stderr.String())
	}
	output := stdout.String()
	if !strings.Contains(output, "Ingested 2 runs (1 graded)") {
		t.Fatalf("expected ingest summary, got %q", output)
	}
	if !strings.Contains(output, "20250129T000000Z") || !strings.Contains(output, "20250130T000000Z") {
		t.Fatalf("expected both runs listed, got %q", output)
	}
	if !strings.Contains(output, "brave-default") {
		t.Fatalf("expected config aggregates, got %q", output)
	}
	if !strings.Contains(output, "7.50") {
		t.Fatalf("expected average score, got %q", output)
	}
}

// TestStatsCommandScopesToRun verifies the --run filter narrows aggregates.
func TestStatsCommandScopesToRun(t *testing.T) {
	dir, configPath := scaffoldWorkspace(t)
	writeRunArtifact(t, dir, "20250129T000000Z", true)
	writeRunArtifact(t, dir, "20250130T000000Z", false)

	dbPath := filepath.Join(t.TempDir(), "stats.duckdb")
	var stdout, stderr bytes.Buffer
	code := Run([]string{"stats", "--config", configPath, "--db", dbPath, "--run", "20250130T000000Z"}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("unexpected exit: %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Per config (run 20250130T000000Z):") {
		t.Fatalf("expected scoped heading, got %q", stdout.String())
	}
}

// TestStatsCommandWithoutArtifacts verifies an empty store is not an error.
func TestStatsCommandWithoutArtifacts(t *testing.T) {
	_, configPath := scaffoldWorkspace(t)
	var stdout, stderr bytes.Buffer
	code := Run([]string{"stats", "--config", configPath}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("unexpected exit: %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "No run artifacts") {
		t.Fatalf("expected empty-store notice, got %q", stdout.String())
	}
}
