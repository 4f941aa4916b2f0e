package provider

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
)

// defaultSerperBaseURL is the default Serper.dev API base URL.
const defaultSerperBaseURL = "https://google.serper.dev"

// Serper translates the generic parameter bag into Serper.dev SERP calls.
type Serper struct {
	APIKey  string
	BaseURL string
	Client  HTTPDoer
}

// NewSerper constructs the Serper capability over an injected HTTP client.
func NewSerper(client HTTPDoer) *Serper {
	return &Serper{BaseURL: defaultSerperBaseURL, Client: client}
}

func (s *Serper) Name() string { return "serper" }

func (s *Serper) CredentialEnv() string { return "SERPER_API_KEY" }

// Search posts the bag as the JSON request body with the query under "q".
func (s *Serper) Search(ctx context.Context, query string, params Params) Response {
	key := s.APIKey
	if key == "" {
		key = os.Getenv(s.CredentialEnv())
	}
	if key == "" {
		return Response{Err: s.CredentialEnv() + " is not set"}
	}

	payload, err := jsonBody(params, "q", query)
	if err != nil {
		return errorResponse(0, fmt.Errorf("marshal request: %w", err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return errorResponse(0, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("X-API-KEY", key)
	req.Header.Set("Content-Type", "application/json")

	return fetch(s.Client, req)
}
