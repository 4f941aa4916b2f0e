package duckdb_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	duckdbtesting "serpbench/internal/duckdb/testing"
	"serpbench/internal/grader"
	"serpbench/internal/provider"
	"serpbench/internal/runner"
	"serpbench/internal/testutil"
)

const (
	testTimeout = 2 * time.Second
	testRunID   = "20250130T000000Z"
)

// openTestDB opens an in-memory DuckDB instance with the schema applied.
func openTestDB(t *testing.T) (*sql.DB, context.Context) {
	t.Helper()
	ctx := testutil.Context(t, testTimeout)
	db := duckdbtesting.Open(t)
	return db, ctx
}

// queryInt returns a single integer value from the database.
func queryInt(t *testing.T, ctx context.Context, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var out int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&out); err != nil {
		t.Fatalf("query int failed: %v", err)
	}
	return out
}

// queryFloat returns a single float value from the database.
func queryFloat(t *testing.T, ctx context.Context, db *sql.DB, query string, args ...any) float64 {
	t.Helper()
	var out float64
	if err := db.QueryRowContext(ctx, query, args...).Scan(&out); err != nil {
		t.Fatalf("query float failed: %v", err)
	}
	return out
}

// queryString returns a single string value from the database.
func queryString(t *testing.T, ctx context.Context, db *sql.DB, query string, args ...any) string {
	t.Helper()
	var out string
	if err := db.QueryRowContext(ctx, query, args...).Scan(&out); err != nil {
		t.Fatalf("query string failed: %v", err)
	}
	return out
}

// sampleArtifact builds a three-result run across two configs: one
// success with ground truth, one failure, and one success on the
// second config.
func sampleArtifact(runID string) runner.Artifact {
	started := time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC)
	return runner.Artifact{
		RunID:      runID,
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		Results: []runner.ResultRecord{
			{
				QueryText:   "capital of France",
				GroundTruth: "Paris",
				ConfigID:    "brave-default",
				Provider:    "brave",
				ExecutedAt:  started,
				Response:    provider.Response{LatencyMS: 120, TokenCount: 40},
			},
			{
				QueryText:  "tallest mountain",
				ConfigID:   "brave-default",
				Provider:   "brave",
				ExecutedAt: started.Add(time.Second),
				Response:   provider.Response{Err: "search brave: status 429"},
				HasError:   true,
			},
			{
				QueryText:   "capital of France",
				GroundTruth: "Paris",
				ConfigID:    "tavily-advanced",
				Provider:    "tavily",
				Params:      provider.Params{"search_depth": "advanced", "max_results": 5},
				ExecutedAt:  started.Add(2 * time.Second),
				Response:    provider.Response{LatencyMS: 300, TokenCount: 80},
			},
		},
		Summary: runner.Summary{
			QueriesTotal:    2,
			QueriesRunnable: 2,
			ConfigsTotal:    2,
			ResultsTotal:    3,
			ResultsOK:       2,
			ResultsFailed:   1,
		},
	}
}

// sampleGrading builds grades for the two gradable sample results.
func sampleGrading(runID string) grader.GradingArtifact {
	return grader.GradingArtifact{
		RunID:    runID,
		Model:    "gpt-4o-mini",
		GradedAt: time.Date(2025, 1, 30, 1, 0, 0, 0, time.UTC),
		Gradable: 2,
		Outcome:  grader.ParsedValid,
		Records: []grader.Record{
			{ConfigID: "brave-default", Query: "capital of France", Score: 7.5, Reasoning: "correct, buried"},
			{ConfigID: "tavily-advanced", Query: "capital of France", Score: 9},
		},
	}
}
