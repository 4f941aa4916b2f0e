package cli

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Exit codes returned by Run. ExitUsage signals a malformed invocation.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Command is one subcommand of the serpbench binary. Each command file
// constructs its own Command so the metadata lives next to the handler.
type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

var commands = []*Command{
	newInitCommand(),
	newValidateCommand(),
	newRunCommand(),
	newGradeCommand(),
	newProvidersCommand(),
	newStatsCommand(),
}

// Run dispatches args to the matching command and returns its exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	name := args[0]
	if name == "help" || isHelpFlag(name) {
		printUsage(stdout)
		return ExitOK
	}
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd.Run(args[1:], stdout, stderr)
		}
	}
	fmt.Fprintf(stderr, "Unknown command: %s\n\n", name)
	printUsage(stderr)
	return ExitUsage
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help"
}

// wantsHelp reports whether any argument asks for help. Commands check it
// before flag parsing so help wins over invalid flag combinations.
func wantsHelp(args []string) bool {
	return slices.ContainsFunc(args, isHelpFlag)
}

func printUsage(w io.Writer) {
	width := 0
	for _, cmd := range commands {
		width = max(width, len(cmd.Name))
	}
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  serpbench <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-*s  %s\n", width, cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"serpbench <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	if cmd.Summary != "" {
		fmt.Fprintf(w, "%s\n\n", cmd.Summary)
	}
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

// parse runs the flag set over args, handling help requests and bad
// arguments uniformly. When ok is false the handler returns code as is.
// maxPositional caps how many non-flag arguments the command accepts.
func (cmd *Command) parse(flags *flag.FlagSet, args []string, maxPositional int, stdout, stderr io.Writer) (code int, ok bool) {
	if wantsHelp(args) {
		printCommandUsage(cmd, stdout)
		return ExitOK, false
	}
	flags.SetOutput(stderr)
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			printCommandUsage(cmd, stdout)
			return ExitOK, false
		}
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	if flags.NArg() > maxPositional {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args()[maxPositional:], " "))
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	return ExitOK, true
}
