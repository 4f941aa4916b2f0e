package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"serpbench/internal/runner"
	"serpbench/internal/ui/live"
)

var runAndWrite = runner.RunAndWrite

// newRunCommand dispatches every runnable query against every eligible config.
func newRunCommand() *Command {
	cmd := &Command{
		Name:    "run",
		Summary: "Dispatch every runnable query against every eligible config",
		Usage: []string{
			"serpbench run [--config <path>] [--output <dir>] [--ui auto|live|plain] [--grade]",
		},
	}
	cmd.Run = func(args []string, stdout, stderr io.Writer) int {
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := flags.String("config", "", "Path to serpbench.yaml (default: search upward)")
		outputDir := flags.String("output", "", "Override output directory")
		workers := flags.Int("workers", 1, "Dispatch concurrency (values above 1 are clamped)")
		uiMode := flags.String("ui", "auto", "UI mode: auto, live, or plain")
		grade := flags.Bool("grade", false, "Grade the artifact right after the run")
		if code, ok := cmd.parse(flags, args, 0, stdout, stderr); !ok {
			return code
		}

		ws, err := loadWorkspace(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}

		decision, err := resolveUIMode(*uiMode, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		params := runner.RunParams{
			BaseDir:   ws.baseDir,
			OutputDir: *outputDir,
			Workers:   *workers,
			Warnings:  stderr,
		}
		var controller *live.Controller
		if decision.useLive {
			controller = live.Start(stdout, live.Options{})
			params.Deps.Observer = controller
		} else {
			params.Deps.Observer = plainObserver{out: stdout}
		}

		art, path, err := runAndWrite(context.Background(), ws.cfg, params)
		if controller != nil {
			controller.Close()
			controller.Wait()
		}
		if err != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", err)
			return ExitError
		}

		writeRunReport(stdout, art, path)

		if *grade {
			if err := gradeArtifact(context.Background(), ws, *outputDir, art.RunID, stdout); err != nil {
				fmt.Fprintf(stderr, "Grading failed: %v\n", err)
				return ExitError
			}
		}

		if art.HasFailures() {
			return ExitError
		}
		return ExitOK
	}
	return cmd
}

// writeRunReport prints the run summary once, after the artifact is on disk.
func writeRunReport(stdout io.Writer, art runner.Artifact, path string) {
	duration := art.FinishedAt.Sub(art.StartedAt).Round(time.Millisecond)
	fmt.Fprintf(stdout, "Run %s completed in %s\n", art.RunID, duration)
	fmt.Fprintf(stdout, "Artifact: %s\n", path)
	s := art.Summary
	fmt.Fprintf(stdout, "Queries: %d runnable of %d; configs: %d dispatched, %d skipped\n",
		s.QueriesRunnable, s.QueriesTotal, s.ConfigsTotal-s.ConfigsSkipped, s.ConfigsSkipped)
	fmt.Fprintf(stdout, "Results: %d total, %d ok, %d failed\n", s.ResultsTotal, s.ResultsOK, s.ResultsFailed)
	for _, pc := range s.PerConfig {
		fmt.Fprintf(stdout, "  %-20s %-8s %d ok, %d failed\n", pc.ConfigID, pc.Provider, pc.OK, pc.Failed)
	}
	if len(s.PerProvider) > 0 {
		fmt.Fprintln(stdout, "By provider:")
		for _, pp := range s.PerProvider {
			fmt.Fprintf(stdout, "  %-20s %d ok, %d failed\n", pp.Provider, pp.OK, pp.Failed)
		}
	}
}
