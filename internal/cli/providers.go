package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"serpbench/internal/provider"
)

// lookupEnv is swapped by tests to control credential visibility.
var lookupEnv = os.LookupEnv

// newProvidersCommand lists registered providers and credential status.
func newProvidersCommand() *Command {
	cmd := &Command{
		Name:    "providers",
		Summary: "List registered providers and credential status",
		Usage:   []string{"serpbench providers"},
	}
	cmd.Run = func(args []string, stdout, stderr io.Writer) int {
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		if code, ok := cmd.parse(flags, args, 0, stdout, stderr); !ok {
			return code
		}

		registry := provider.DefaultRegistry(nil)
		fmt.Fprintf(stdout, "%-10s %-20s %s\n", "PROVIDER", "CREDENTIAL", "STATUS")
		for _, name := range registry.Names() {
			resolved, err := registry.Resolve(name)
			if err != nil {
				fmt.Fprintf(stderr, "resolve %s: %v\n", name, err)
				return ExitError
			}
			env := resolved.CredentialEnv()
			status := "set"
			if _, ok := lookupEnv(env); !ok {
				status = "missing"
			}
			fmt.Fprintf(stdout, "%-10s %-20s %s\n", name, env, status)
		}
		return ExitOK
	}
	return cmd
}
