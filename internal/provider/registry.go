package provider

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

// NotFoundError reports a lookup for a provider name nobody registered.
type NotFoundError struct {
	Name  string
	Known []string
}

// Error names the requested key and enumerates the valid ones.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown provider %q (registered: %s)", e.Name, strings.Join(e.Known, ", "))
}

// Registry is a name-keyed lookup of provider capabilities. Registration
// happens at construction and the registry is read-only afterwards, which is
// the dependency-injection seam keeping the orchestrator free of
// provider-specific imports.
type Registry struct {
	providers map[string]Provider
	names     []string
}

// NewRegistry builds a registry over the given providers. A later provider
// with a duplicate name replaces the earlier one.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	r.names = make([]string, 0, len(r.providers))
	for name := range r.providers {
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r
}

// Resolve returns the capability registered under name.
func (r *Registry) Resolve(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, &NotFoundError{Name: name, Known: r.Names()}
	}
	return p, nil
}

// Names returns the registered provider names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// DefaultRegistry wires every built-in provider with a shared HTTP client.
// Passing nil uses a client with a conservative per-call timeout; tests pass
// a fake so no process-global state needs mutating.
func DefaultRegistry(client HTTPDoer) *Registry {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return NewRegistry(
		NewBrave(client),
		NewTavily(client),
		NewExa(client),
		NewSerper(client),
	)
}
