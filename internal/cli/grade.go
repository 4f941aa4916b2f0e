package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"serpbench/internal/grader"
)

// newGraderChat builds the LLM client; tests swap in a fake.
var newGraderChat = func(baseURL string) (grader.Chat, error) {
	return grader.ChatFromEnv(baseURL, nil)
}

// newGradeCommand grades a stored run artifact, defaulting to the latest run.
func newGradeCommand() *Command {
	cmd := &Command{
		Name:    "grade",
		Summary: "Grade a run artifact with the configured model",
		Usage:   []string{"serpbench grade [--config <path>] [--output <dir>] [run-id]"},
	}
	cmd.Run = func(args []string, stdout, stderr io.Writer) int {
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := flags.String("config", "", "Path to serpbench.yaml (default: search upward)")
		outputDir := flags.String("output", "", "Override output directory")
		if code, ok := cmd.parse(flags, args, 1, stdout, stderr); !ok {
			return code
		}

		ws, err := loadWorkspace(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}

		store := ws.store(*outputDir)
		runID := flags.Arg(0)
		if runID == "" {
			latest, err := store.LatestRunID()
			if err != nil {
				fmt.Fprintf(stderr, "Grading failed: %v\n", err)
				return ExitError
			}
			runID = latest
		}

		if err := gradeArtifact(context.Background(), ws, *outputDir, runID, stdout); err != nil {
			fmt.Fprintf(stderr, "Grading failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Grades: %s\n", store.GradingPath(runID))
		return ExitOK
	}
	return cmd
}

// gradeArtifact runs the grading pass for one run artifact.
func gradeArtifact(ctx context.Context, ws workspace, outputOverride, runID string, stdout io.Writer) error {
	chat, err := newGraderChat(ws.cfg.Grader.BaseURL)
	if err != nil {
		return err
	}
	g := grader.Grader{
		Store:            ws.store(outputOverride),
		Chat:             chat,
		Model:            ws.cfg.Grader.Model,
		InstructionsPath: ws.resolve(ws.cfg.Grader.Instructions),
		Out:              stdout,
	}
	_, err = g.Grade(ctx, runID)
	return err
}
