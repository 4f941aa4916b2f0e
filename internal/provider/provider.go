package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// HTTPDoer abstracts HTTP clients used by providers.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Params is the generic parameter bag a configuration supplies for one
// provider call. Shapes are checked against the provider's schema at config
// load time, so by the time Search runs the bag is structurally valid.
type Params map[string]any

// Response is the outcome of one provider call. Raw carries the provider's
// unmodified payload; the harness never normalizes or interprets it because
// the provider itself is the object under test.
type Response struct {
	Raw        json.RawMessage `json:"raw,omitempty"`
	LatencyMS  int64           `json:"latency_ms"`
	TokenCount int             `json:"token_count"`
	RequestID  string          `json:"request_id,omitempty"`
	Err        string          `json:"error,omitempty"`
}

// Failed reports whether the call ended in an error.
func (r Response) Failed() bool {
	return r.Err != ""
}

// Provider is the single-operation capability every search integration
// satisfies. Search must capture expected provider-side failures into
// Response.Err rather than panicking; the orchestrator additionally guards
// against implementations that do neither.
type Provider interface {
	// Name returns the registry key for this provider.
	Name() string
	// CredentialEnv names the environment variable holding this
	// provider's API credential.
	CredentialEnv() string
	// Search runs one query with the supplied parameter bag.
	Search(ctx context.Context, query string, params Params) Response
}

// errorResponse builds a Response for a call that failed before or during
// the HTTP exchange.
func errorResponse(latency time.Duration, err error) Response {
	return Response{
		LatencyMS: latency.Milliseconds(),
		Err:       err.Error(),
	}
}
