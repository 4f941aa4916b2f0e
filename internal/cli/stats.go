package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"serpbench/internal/duckdb"
	"serpbench/internal/grader"
	"serpbench/internal/runner"
)

// newStatsCommand ingests run artifacts into DuckDB and prints aggregates.
func newStatsCommand() *Command {
	cmd := &Command{
		Name:    "stats",
		Summary: "Ingest run artifacts into DuckDB and print aggregates",
		Usage:   []string{"serpbench stats [--config <path>] [--db <path>] [--run <run-id>]"},
	}
	cmd.Run = func(args []string, stdout, stderr io.Writer) int {
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := flags.String("config", "", "Path to serpbench.yaml (default: search upward)")
		outputDir := flags.String("output", "", "Override output directory")
		dbPath := flags.String("db", "", "DuckDB path (default: <output>/serpbench.duckdb)")
		runID := flags.String("run", "", "Limit aggregates to one run id")
		if code, ok := cmd.parse(flags, args, 0, stdout, stderr); !ok {
			return code
		}

		ws, err := loadWorkspace(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Stats failed: %v\n", err)
			return ExitError
		}

		store := ws.store(*outputDir)
		runIDs, err := store.RunIDs()
		if err != nil {
			fmt.Fprintf(stderr, "Stats failed: %v\n", err)
			return ExitError
		}
		if len(runIDs) == 0 {
			fmt.Fprintf(stdout, "No run artifacts in %s\n", store.RunsDir())
			return ExitOK
		}

		target := *dbPath
		if strings.TrimSpace(target) == "" {
			target = filepath.Join(store.Dir, "serpbench.duckdb")
		}
		db, err := duckdb.Open(target)
		if err != nil {
			fmt.Fprintf(stderr, "Stats failed: %v\n", err)
			return ExitError
		}
		defer db.Close()

		ctx := context.Background()
		graded := 0
		for _, id := range runIDs {
			var art runner.Artifact
			if err := store.LoadRun(id, &art); err != nil {
				fmt.Fprintf(stderr, "Stats failed: %v\n", err)
				return ExitError
			}
			if _, err := duckdb.IngestRun(ctx, db, art); err != nil {
				fmt.Fprintf(stderr, "Stats failed: %v\n", err)
				return ExitError
			}
			var grading grader.GradingArtifact
			err := store.LoadGrading(id, &grading)
			if os.IsNotExist(err) {
				continue
			}
			if err != nil {
				fmt.Fprintf(stderr, "Stats failed: %v\n", err)
				return ExitError
			}
			if _, err := duckdb.IngestGrading(ctx, db, grading); err != nil {
				fmt.Fprintf(stderr, "Stats failed: %v\n", err)
				return ExitError
			}
			graded++
		}
		fmt.Fprintf(stdout, "Ingested %d runs (%d graded) into %s\n", len(runIDs), graded, target)

		if err := writeStatsReport(ctx, db, *runID, stdout); err != nil {
			fmt.Fprintf(stderr, "Stats failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
	return cmd
}

// writeStatsReport prints the run listing and per-config aggregates.
func writeStatsReport(ctx context.Context, db *sql.DB, runID string, stdout io.Writer) error {
	runs, err := duckdb.ListRuns(ctx, db)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "\n%-17s %-21s %8s %8s %8s\n", "RUN", "STARTED", "RESULTS", "FAILED", "GRADED")
	for _, row := range runs {
		fmt.Fprintf(stdout, "%-17s %-21s %8d %8d %8d\n",
			row.RunID, row.StartedAt.UTC().Format("2006-01-02 15:04:05"), row.Results, row.Failures, row.Graded)
	}

	stats, err := duckdb.QueryConfigStats(ctx, db, runID)
	if err != nil {
		return err
	}
	scope := "all runs"
	if runID != "" {
		scope = "run " + runID
	}
	fmt.Fprintf(stdout, "\nPer config (%s):\n", scope)
	fmt.Fprintf(stdout, "%-20s %-10s %8s %8s %10s %10s %10s\n",
		"CONFIG", "PROVIDER", "RESULTS", "ERRORS", "ERR RATE", "AVG MS", "AVG SCORE")
	for _, entry := range stats {
		score := "-"
		if entry.AvgScore != nil {
			score = fmt.Sprintf("%.2f", *entry.AvgScore)
		}
		fmt.Fprintf(stdout, "%-20s %-10s %8d %8d %9.0f%% %10.0f %10s\n",
			entry.ConfigID, entry.Provider, entry.Results, entry.Errors,
			entry.ErrorRate()*100, entry.AvgLatencyMS, score)
	}
	return nil
}
