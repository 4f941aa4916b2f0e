package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"serpbench/internal/artifact"
	"serpbench/internal/grader"
	"serpbench/internal/runner"

	"github.com/google/uuid"
)

// ResultKey returns a deterministic fingerprint identifying one result
// row. A query/config pair appears at most once per run, so the run id,
// config id, and query text pin the row.
func ResultKey(runID, configID, queryText string) (string, error) {
	return artifact.Fingerprint(map[string]any{
		"run_id":     runID,
		"config_id":  configID,
		"query_text": queryText,
	})
}

// GradeKey returns a deterministic fingerprint identifying one grade row.
func GradeKey(runID, configID, query string) (string, error) {
	return artifact.Fingerprint(map[string]any{
		"run_id":    runID,
		"config_id": configID,
		"query":     query,
	})
}

// IngestRun stores a run artifact into the database and returns the run
// row id. Ingestion is idempotent: the run row is keyed by run id and
// result rows by fingerprint, so re-ingesting the same artifact changes
// nothing. Each statement tolerates conflicts on its own, which lets a
// retry heal a partially ingested run.
func IngestRun(ctx context.Context, db *sql.DB, art runner.Artifact) (string, error) {
	if ctx == nil {
		return "", errors.New("duckdb: context is nil")
	}
	if db == nil {
		return "", errors.New("duckdb: db is nil")
	}
	if art.RunID == "" {
		return "", errors.New("duckdb: run id is required")
	}
	rowID := uuid.NewString()
	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO runs (
		  row_id, run_id, started_at, finished_at,
		  queries_total, queries_runnable, configs_total, configs_skipped,
		  ingested_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, now())
		ON CONFLICT (run_id) DO NOTHING`,
		rowID,
		art.RunID,
		art.StartedAt.UTC(),
		art.FinishedAt.UTC(),
		art.Summary.QueriesTotal,
		art.Summary.QueriesRunnable,
		art.Summary.ConfigsTotal,
		art.Summary.ConfigsSkipped,
	); err != nil {
		return "", fmt.Errorf("upsert run %s: %w", art.RunID, err)
	}
	for _, record := range art.Results {
		if err := insertResult(ctx, db, art.RunID, record); err != nil {
			return "", err
		}
	}
	outID, err := lookupID(ctx, db, "runs", "row_id", "run_id", art.RunID)
	if err != nil {
		return "", fmt.Errorf("lookup run row: %w", err)
	}
	return outID, nil
}

func insertResult(ctx context.Context, db *sql.DB, runID string, record runner.ResultRecord) error {
	key, err := ResultKey(runID, record.ConfigID, record.QueryText)
	if err != nil {
		return fmt.Errorf("result key: %w", err)
	}
	var params any
	if len(record.Params) > 0 {
		canonical, err := artifact.Canonical(record.Params)
		if err != nil {
			return fmt.Errorf("canonicalize params: %w", err)
		}
		params = string(canonical)
	}
	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO results (
		  result_id, result_key, run_id, config_id, provider,
		  query_text, ground_truth, params, executed_at,
		  latency_ms, token_count, has_error, error, ingested_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, now())
		ON CONFLICT (result_key) DO NOTHING`,
		uuid.NewString(),
		key,
		runID,
		record.ConfigID,
		record.Provider,
		record.QueryText,
		nullableString(record.GroundTruth),
		params,
		record.ExecutedAt.UTC(),
		record.Response.LatencyMS,
		record.Response.TokenCount,
		record.HasError,
		nullableString(record.Response.Err),
	); err != nil {
		return fmt.Errorf("insert result %s/%s: %w", record.ConfigID, record.QueryText, err)
	}
	return nil
}

// IngestGrading replaces the stored grades for the grading artifact's
// run and returns the number of grade rows written. Replacement keeps
// the database in step with re-grading, which overwrites the grading
// artifact; an artifact with no parsed records clears the run's grades.
func IngestGrading(ctx context.Context, db *sql.DB, grading grader.GradingArtifact) (int, error) {
	if ctx == nil {
		return 0, errors.New("duckdb: context is nil")
	}
	if db == nil {
		return 0, errors.New("duckdb: db is nil")
	}
	if grading.RunID == "" {
		return 0, errors.New("duckdb: run id is required")
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin grades tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM grades WHERE run_id = ?`, grading.RunID); err != nil {
		return 0, fmt.Errorf("clear grades for %s: %w", grading.RunID, err)
	}
	written := 0
	for _, record := range grading.Records {
		key, err := GradeKey(grading.RunID, record.ConfigID, record.Query)
		if err != nil {
			return 0, fmt.Errorf("grade key: %w", err)
		}
		// The model may emit the same config/query pair twice; the
		// conflict clause keeps the first occurrence.
		res, err := tx.ExecContext(
			ctx,
			`INSERT INTO grades (
			  grade_id, grade_key, run_id, config_id, query_text,
			  score, reasoning, model, graded_at, ingested_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, now())
			ON CONFLICT (grade_key) DO NOTHING`,
			uuid.NewString(),
			key,
			grading.RunID,
			record.ConfigID,
			record.Query,
			record.Score,
			nullableString(record.Reasoning),
			grading.Model,
			grading.GradedAt.UTC(),
		)
		if err != nil {
			return 0, fmt.Errorf("insert grade %s/%s: %w", record.ConfigID, record.Query, err)
		}
		if affected, err := res.RowsAffected(); err == nil {
			written += int(affected)
		} else {
			written++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit grades: %w", err)
	}
	return written, nil
}
