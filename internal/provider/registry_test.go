package provider

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type staticProvider struct {
	name string
	env  string
}

func (p staticProvider) Name() string          { return p.name }
func (p staticProvider) CredentialEnv() string { return p.env }
func (p staticProvider) Search(context.Context, string, Params) Response {
	return Response{}
}

// TestRegistryResolve verifies lookup of a registered provider.
func TestRegistryResolve(t *testing.T) {
	reg := NewRegistry(staticProvider{name: "alpha"}, staticProvider{name: "beta"})
	p, err := reg.Resolve("beta")
	if err != nil {
		t.Fatalf("resolve beta: %v", err)
	}
	if p.Name() != "beta" {
		t.Fatalf("unexpected provider %q", p.Name())
	}
}

// TestRegistryResolveUnknown verifies the error names the key and the known set.
func TestRegistryResolveUnknown(t *testing.T) {
	reg := NewRegistry(staticProvider{name: "beta"}, staticProvider{name: "alpha"})
	_, err := reg.Resolve("gamma")
	if err == nil {
		t.Fatalf("expected error for unknown provider")
	}
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T", err)
	}
	if notFound.Name != "gamma" {
		t.Fatalf("unexpected name %q", notFound.Name)
	}
	if !strings.Contains(err.Error(), "alpha, beta") {
		t.Fatalf("expected sorted known names in error, got %q", err.Error())
	}
}

// TestRegistryNamesSorted verifies Names returns a sorted copy.
func TestRegistryNamesSorted(t *testing.T) {
	reg := NewRegistry(staticProvider{name: "serper"}, staticProvider{name: "brave"}, staticProvider{name: "exa"})
	names := reg.Names()
	want := []string{"brave", "exa", "serper"}
	if len(names) != len(want) {
		t.Fatalf("unexpected names %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("unexpected names %v", names)
		}
	}
	names[0] = "mutated"
	if reg.Names()[0] != "brave" {
		t.Fatalf("Names must return a copy")
	}
}

// TestDefaultRegistryProviders verifies the built-in provider set.
func TestDefaultRegistryProviders(t *testing.T) {
	reg := DefaultRegistry(nil)
	for _, name := range []string{"brave", "exa", "serper", "tavily"} {
		if _, err := reg.Resolve(name); err != nil {
			t.Fatalf("resolve %s: %v", name, err)
		}
	}
}
