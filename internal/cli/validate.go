package cli

import (
	"flag"
	"fmt"
	"io"

	"serpbench/internal/query"
)

// newValidateCommand checks the config and query files without dispatching.
func newValidateCommand() *Command {
	cmd := &Command{
		Name:    "validate",
		Summary: "Validate serpbench.yaml and the query files",
		Usage:   []string{"serpbench validate [--config <path>]"},
	}
	cmd.Run = func(args []string, stdout, stderr io.Writer) int {
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := flags.String("config", "", "Path to serpbench.yaml (default: search upward)")
		if code, ok := cmd.parse(flags, args, 0, stdout, stderr); !ok {
			return code
		}

		ws, err := loadWorkspace(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}

		entries, err := query.LoadSets(
			ws.resolve(ws.cfg.Queries.Static),
			ws.resolve(ws.cfg.Queries.Temporal),
		)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		queries, report := query.Sanitize(entries)
		for _, line := range report.Summary() {
			fmt.Fprintln(stderr, line)
		}

		fmt.Fprintln(stdout, "Config OK")
		fmt.Fprintf(stdout, "Queries: %d usable, %d rejected\n", len(queries), report.Dropped())
		fmt.Fprintf(stdout, "Configs: %d\n", len(ws.cfg.Configs))
		return ExitOK
	}
	return cmd
}
