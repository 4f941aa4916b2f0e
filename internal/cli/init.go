package cli

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"serpbench/internal/config"
)

// newInitCommand scaffolds a fresh workspace in the target directory.
func newInitCommand() *Command {
	cmd := &Command{
		Name:    "init",
		Summary: "Scaffold serpbench.yaml, query files, and grading instructions",
		Usage:   []string{"serpbench init [--dir <path>]"},
	}
	cmd.Run = func(args []string, stdout, stderr io.Writer) int {
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		dir := flags.String("dir", ".", "Directory to scaffold into")
		if code, ok := cmd.parse(flags, args, 0, stdout, stderr); !ok {
			return code
		}

		configPath := filepath.Join(*dir, config.ConfigFileName)
		if err := config.Scaffold(configPath); err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Wrote %s\n", configPath)
		for _, rel := range []string{
			config.DefaultStaticQueries,
			config.DefaultTemporalQueries,
			config.DefaultInstructions,
		} {
			fmt.Fprintf(stdout, "Wrote %s\n", filepath.Join(*dir, rel))
		}
		fmt.Fprintln(stdout, "Set provider API keys (for example BRAVE_API_KEY) and run \"serpbench run\".")
		return ExitOK
	}
	return cmd
}
