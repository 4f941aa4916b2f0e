// Command generate_fixture fabricates a populated serpbench DuckDB file
// for developing the stats command against realistic row counts.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"serpbench/internal/duckdb"
)

// fixtureConfig defines the JSON config for generating a DuckDB fixture.
type fixtureConfig struct {
	Name    string `json:"name"`
	Runs    int    `json:"runs"`
	Configs int    `json:"configs"`
	Queries int    `json:"queries"`
}

func main() {
	configPath := flag.String("config", "", "path to fixture config JSON")
	outPath := flag.String("out", "", "output duckdb file path")
	flag.Parse()
	if *configPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: generate_fixture --config <path> --out <duckdb file>")
		os.Exit(2)
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := resetFixture(*outPath); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := generateFixture(ctx, *outPath, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "generate fixture: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (fixtureConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fixtureConfig{}, err
	}
	var cfg fixtureConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fixtureConfig{}, err
	}
	if cfg.Runs <= 0 || cfg.Configs <= 0 || cfg.Queries <= 0 {
		return fixtureConfig{}, fmt.Errorf("runs, configs, and queries must be positive")
	}
	return cfg, nil
}

var fixtureProviders = []string{"brave", "tavily", "exa", "serper"}

func generateFixture(ctx context.Context, path string, cfg fixtureConfig) error {
	db, err := duckdb.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	configIDs := make([]string, cfg.Configs)
	providers := make([]string, cfg.Configs)
	for i := range configIDs {
		providers[i] = fixtureProviders[i%len(fixtureProviders)]
		configIDs[i] = fmt.Sprintf("%s-%02d", providers[i], i)
	}
	queries := make([]string, cfg.Queries)
	for i := range queries {
		queries[i] = fmt.Sprintf("%s fixture query %03d", cfg.Name, i)
	}

	startTime := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ingestedAt := startTime
	runIDs := make([]string, cfg.Runs)
	for i := range runIDs {
		startedAt := startTime.Add(time.Duration(i) * time.Hour)
		runIDs[i] = startedAt.Format("20060102T150405Z")
		if _, err := db.ExecContext(ctx,
			`INSERT INTO runs (row_id, run_id, started_at, finished_at,
			   queries_total, queries_runnable, configs_total, configs_skipped, ingested_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rowID("run", i), runIDs[i], startedAt, startedAt.Add(2*time.Minute),
			cfg.Queries, cfg.Queries, cfg.Configs, 0, ingestedAt,
		); err != nil {
			return fmt.Errorf("insert run %s: %w", runIDs[i], err)
		}
	}

	appender, err := openResultsAppender(ctx, db)
	if err != nil {
		return err
	}

	row := 0
	for i, runID := range runIDs {
		executedAt := startTime.Add(time.Duration(i) * time.Hour)
		for q, queryText := range queries {
			for c, configID := range configIDs {
				key, err := duckdb.ResultKey(runID, configID, queryText)
				if err != nil {
					return err
				}
				var groundTruth any
				if q%2 == 0 {
					groundTruth = fmt.Sprintf("answer %03d", q)
				}
				hasError := row%7 == 6
				var errText any
				latency := int64(40 + (row%9)*35)
				tokens := int32(200 + (row%5)*80)
				if hasError {
					errText = fmt.Sprintf("search %s: status 429", providers[c])
					latency = 0
					tokens = 0
				}
				if err := appender.AppendRow(
					rowID("result", row), key, runID, configID, providers[c],
					queryText, groundTruth, nil, executedAt, latency, tokens,
					hasError, errText, ingestedAt,
				); err != nil {
					return fmt.Errorf("append result row %d: %w", row, err)
				}
				row++
			}
		}
	}
	if err := appender.Close(); err != nil {
		return fmt.Errorf("flush results: %w", err)
	}

	return insertGrades(ctx, db, runIDs, configIDs, queries, ingestedAt)
}

// insertGrades grades every other run, covering the rows a grading pass
// would: ground truth present and no error.
func insertGrades(ctx context.Context, db *sql.DB, runIDs, configIDs, queries []string, ingestedAt time.Time) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO grades (grade_id, grade_key, run_id, config_id, query_text,
		   score, reasoning, model, graded_at, ingested_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	grade := 0
	row := 0
	for i, runID := range runIDs {
		for q, queryText := range queries {
			for c, configID := range configIDs {
				hasError := row%7 == 6
				row++
				if i%2 != 0 || q%2 != 0 || hasError {
					continue
				}
				key, err := duckdb.GradeKey(runID, configID, queryText)
				if err != nil {
					return err
				}
				score := float64((q + c) % 11)
				if _, err := stmt.ExecContext(ctx,
					rowID("grade", grade), key, runID, configID, queryText,
					score, nil, "gpt-4o-mini", ingestedAt, ingestedAt,
				); err != nil {
					return fmt.Errorf("insert grade %d: %w", grade, err)
				}
				grade++
			}
		}
	}
	return tx.Commit()
}
