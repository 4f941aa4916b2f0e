package provider

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
)

// defaultExaBaseURL is the default Exa API base URL.
const defaultExaBaseURL = "https://api.exa.ai"

// Exa translates the generic parameter bag into Exa search calls.
type Exa struct {
	APIKey  string
	BaseURL string
	Client  HTTPDoer
}

// NewExa constructs the Exa capability over an injected HTTP client.
func NewExa(client HTTPDoer) *Exa {
	return &Exa{BaseURL: defaultExaBaseURL, Client: client}
}

func (e *Exa) Name() string { return "exa" }

func (e *Exa) CredentialEnv() string { return "EXA_API_KEY" }

// Search posts the bag as the JSON request body with the query under
// "query".
func (e *Exa) Search(ctx context.Context, query string, params Params) Response {
	key := e.APIKey
	if key == "" {
		key = os.Getenv(e.CredentialEnv())
	}
	if key == "" {
		return Response{Err: e.CredentialEnv() + " is not set"}
	}

	payload, err := jsonBody(params, "query", query)
	if err != nil {
		return errorResponse(0, fmt.Errorf("marshal request: %w", err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.BaseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return errorResponse(0, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("x-api-key", key)
	req.Header.Set("Content-Type", "application/json")

	return fetch(e.Client, req)
}
