package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ConfigStats aggregates ingested results for one provider config.
// AvgScore is nil until grades for the config have been ingested.
type ConfigStats struct {
	ConfigID     string
	Provider     string
	Results      int
	Errors       int
	AvgLatencyMS float64
	Graded       int
	AvgScore     *float64
}

// ErrorRate returns the fraction of the config's results that failed.
func (s ConfigStats) ErrorRate() float64 {
	if s.Results == 0 {
		return 0
	}
	return float64(s.Errors) / float64(s.Results)
}

// QueryConfigStats aggregates results per config, joined with any
// ingested grades. An empty runID aggregates across all ingested runs.
func QueryConfigStats(ctx context.Context, db *sql.DB, runID string) ([]ConfigStats, error) {
	if db == nil {
		return nil, errors.New("duckdb: db is nil")
	}
	query := `SELECT r.config_id,
	       r.provider,
	       COUNT(*) AS results,
	       SUM(CASE WHEN r.has_error THEN 1 ELSE 0 END) AS errors,
	       AVG(r.latency_ms) AS avg_latency_ms,
	       COUNT(g.score) AS graded,
	       AVG(g.score) AS avg_score
	FROM results r
	LEFT JOIN grades g
	  ON g.run_id = r.run_id
	 AND g.config_id = r.config_id
	 AND g.query_text = r.query_text`
	args := []any{}
	if runID != "" {
		query += "\n\tWHERE r.run_id = ?"
		args = append(args, runID)
	}
	query += "\n\tGROUP BY r.config_id, r.provider\n\tORDER BY r.config_id"
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query config stats: %w", err)
	}
	defer rows.Close()
	var out []ConfigStats
	for rows.Next() {
		var stats ConfigStats
		var avgScore sql.NullFloat64
		if err := rows.Scan(
			&stats.ConfigID,
			&stats.Provider,
			&stats.Results,
			&stats.Errors,
			&stats.AvgLatencyMS,
			&stats.Graded,
			&avgScore,
		); err != nil {
			return nil, fmt.Errorf("scan config stats: %w", err)
		}
		if avgScore.Valid {
			score := avgScore.Float64
			stats.AvgScore = &score
		}
		out = append(out, stats)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read config stats: %w", err)
	}
	return out, nil
}

// RunRow summarizes one ingested run.
type RunRow struct {
	RunID     string
	StartedAt time.Time
	Results   int
	Failures  int
	Graded    int
}

// ListRuns returns ingested runs in chronological order. Run ids embed
// their start time, so ordering by id orders by time.
func ListRuns(ctx context.Context, db *sql.DB) ([]RunRow, error) {
	if db == nil {
		return nil, errors.New("duckdb: db is nil")
	}
	rows, err := db.QueryContext(ctx, `SELECT r.run_id,
	       r.started_at,
	       COUNT(res.result_id) AS results,
	       COALESCE(SUM(CASE WHEN res.has_error THEN 1 ELSE 0 END), 0) AS failures,
	       (SELECT COUNT(*) FROM grades g WHERE g.run_id = r.run_id) AS graded
	FROM runs r
	LEFT JOIN results res ON res.run_id = r.run_id
	GROUP BY r.run_id, r.started_at
	ORDER BY r.run_id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()
	var out []RunRow
	for rows.Next() {
		var row RunRow
		if err := rows.Scan(&row.RunID, &row.StartedAt, &row.Results, &row.Failures, &row.Graded); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read runs: %w", err)
	}
	return out, nil
}
