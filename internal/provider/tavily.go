package provider

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
)

// defaultTavilyBaseURL is the default Tavily API base URL.
const defaultTavilyBaseURL = "https://api.tavily.com"

// Tavily translates the generic parameter bag into Tavily search calls.
type Tavily struct {
	APIKey  string
	BaseURL string
	Client  HTTPDoer
}

// NewTavily constructs the Tavily capability over an injected HTTP client.
func NewTavily(client HTTPDoer) *Tavily {
	return &Tavily{BaseURL: defaultTavilyBaseURL, Client: client}
}

func (t *Tavily) Name() string { return "tavily" }

func (t *Tavily) CredentialEnv() string { return "TAVILY_API_KEY" }

// Search posts the bag as the JSON request body with the query under
// "query".
func (t *Tavily) Search(ctx context.Context, query string, params Params) Response {
	key := t.APIKey
	if key == "" {
		key = os.Getenv(t.CredentialEnv())
	}
	if key == "" {
		return Response{Err: t.CredentialEnv() + " is not set"}
	}

	payload, err := jsonBody(params, "query", query)
	if err != nil {
		return errorResponse(0, fmt.Errorf("marshal request: %w", err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.BaseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return errorResponse(0, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Content-Type", "application/json")

	return fetch(t.Client, req)
}
