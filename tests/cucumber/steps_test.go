package cucumber

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"serpbench/internal/cli"
	"serpbench/internal/config"
	"serpbench/internal/query"

	"github.com/cucumber/godog"
)

type featureState struct {
	workspaceDir string
	configPath   string
	previousWD   string
	stdout       bytes.Buffer
	stderr       bytes.Buffer
	exitCode     int
	initialized  bool

	windowQueries []query.Query
	runAt         time.Time
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^a scaffolded workspace$`, state.aScaffoldedWorkspace)
	ctx.Step(`^the config declares an unsupported version$`, state.theConfigDeclaresUnsupportedVersion)
	ctx.Step(`^the static query set contains an entry without text$`, state.theStaticSetContainsEntryWithoutText)
	ctx.Step(`^I run "([^"]+)"$`, state.iRunCommand)
	ctx.Step(`^the output lists these commands:$`, state.theOutputListsCommands)
	ctx.Step(`^the exit code is zero$`, state.theExitCodeIsZero)
	ctx.Step(`^the exit code is non-zero$`, state.theExitCodeIsNonZero)
	ctx.Step(`^the error message points to the invalid field$`, state.theErrorMessagePointsToInvalidField)
	ctx.Step(`^the output reports (\d+) usable and (\d+) rejected queries$`, state.theOutputReportsQueryCounts)
	ctx.Step(`^the rejection summary is printed on stderr$`, state.theRejectionSummaryIsPrinted)

	ctx.Step(`^a query valid from "([^"]*)" until "([^"]*)"$`, state.aQueryValidBetween)
	ctx.Step(`^the run timestamp is "([^"]+)"$`, state.theRunTimestampIs)
	ctx.Step(`^the query is (runnable|skipped)$`, state.theQueryIs)
	ctx.Step(`^(\d+) of the queries remains runnable$`, state.queriesRemainRunnable)
}

func (s *featureState) reset() {
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = 0
	s.initialized = false
	s.windowQueries = nil
	s.runAt = time.Time{}
}

func (s *featureState) cleanup() {
	if s.previousWD != "" {
		_ = os.Chdir(s.previousWD)
		s.previousWD = ""
	}
	if s.workspaceDir != "" {
		_ = os.RemoveAll(s.workspaceDir)
		s.workspaceDir = ""
	}
}

func (s *featureState) aScaffoldedWorkspace() error {
	if s.initialized {
		return nil
	}
	dir, err := os.MkdirTemp("", "serpbench-feature-*")
	if err != nil {
		return fmt.Errorf("create temp workspace: %w", err)
	}
	s.workspaceDir = dir
	s.configPath = filepath.Join(dir, config.ConfigFileName)
	if err := config.Scaffold(s.configPath); err != nil {
		return fmt.Errorf("scaffold workspace: %w", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working dir: %w", err)
	}
	s.previousWD = wd
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("chdir: %w", err)
	}
	s.initialized = true
	return nil
}

func (s *featureState) theConfigDeclaresUnsupportedVersion() error {
	data, err := os.ReadFile(s.configPath)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	broken := strings.Replace(string(data), "version: 1", "version: 99", 1)
	if broken == string(data) {
		return fmt.Errorf("config has no version line to break")
	}
	if err := os.WriteFile(s.configPath, []byte(broken), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (s *featureState) theStaticSetContainsEntryWithoutText() error {
	path := filepath.Join(s.workspaceDir, config.DefaultStaticQueries)
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open static query set: %w", err)
	}
	defer file.Close()
	if _, err := file.WriteString("- ground_truth: \"orphaned\"\n"); err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	return nil
}

func (s *featureState) iRunCommand(command string) error {
	args := strings.Fields(command)
	if len(args) == 0 {
		return fmt.Errorf("command is empty")
	}
	if args[0] == "serpbench" {
		args = args[1:]
	}
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(args, &s.stdout, &s.stderr)
	return nil
}

func (s *featureState) theOutputListsCommands(table *godog.Table) error {
	output := s.stdout.String()
	for _, row := range table.Rows {
		for _, cell := range row.Cells {
			command := strings.TrimSpace(cell.Value)
			if command == "" {
				continue
			}
			if !strings.Contains(output, command) {
				return fmt.Errorf("expected command %q in output", command)
			}
		}
	}
	return nil
}

func (s *featureState) theExitCodeIsZero() error {
	if s.exitCode != 0 {
		return fmt.Errorf("expected exit code 0, got %d (stderr: %s)", s.exitCode, s.stderr.String())
	}
	return nil
}

func (s *featureState) theExitCodeIsNonZero() error {
	if s.exitCode == 0 {
		return fmt.Errorf("expected non-zero exit code")
	}
	return nil
}

func (s *featureState) theErrorMessagePointsToInvalidField() error {
	errOutput := s.stderr.String()
	if !strings.Contains(errOutput, "version") {
		return fmt.Errorf("expected error to mention version, got %q", errOutput)
	}
	return nil
}

func (s *featureState) theOutputReportsQueryCounts(usable, rejected int) error {
	want := fmt.Sprintf("Queries: %d usable, %d rejected", usable, rejected)
	if !strings.Contains(s.stdout.String(), want) {
		return fmt.Errorf("expected %q in output, got %q", want, s.stdout.String())
	}
	return nil
}

func (s *featureState) theRejectionSummaryIsPrinted() error {
	if strings.TrimSpace(s.stderr.String()) == "" {
		return fmt.Errorf("expected rejection summary on stderr")
	}
	return nil
}
