package cli

import (
	"bytes"
	"strings"
	"testing"
)

// TestProvidersCommandListsCredentialStatus verifies the provider table.
func TestProvidersCommandListsCredentialStatus(t *testing.T) {
	orig := lookupEnv
	lookupEnv = func(key string) (string, bool) {
		if key == "BRAVE_API_KEY" {
			return "token", true
		}
		return "", false
	}
	t.Cleanup(func() { lookupEnv = orig })

	var stdout, stderr bytes.Buffer
	code := Run([]string{"providers"}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("unexpected exit: %d, stderr: %s", code, stderr.String())
	}
	output := stdout.String()
	for _, name := range []string{"brave", "exa", "serper", "tavily"} {
		if !strings.Contains(output, name) {
			t.Fatalf("expected provider %s in output, got %q", name, output)
		}
	}
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for _, line := range lines[1:] {
		switch {
		case strings.HasPrefix(line, "brave"):
			if !strings.Contains(line, "set") {
				t.Fatalf("expected brave credential set, got %q", line)
			}
		default:
			if !strings.Contains(line, "missing") {
				t.Fatalf("expected missing credential, got %q", line)
			}
		}
	}
}

// TestProvidersCommandRejectsArgs verifies stray arguments fail fast.
func TestProvidersCommandRejectsArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"providers", "brave"}, &stdout, &stderr)
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
}
