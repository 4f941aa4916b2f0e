package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
)

// defaultBraveBaseURL is the default Brave Search API base URL.
const defaultBraveBaseURL = "https://api.search.brave.com/res/v1"

// Brave translates the generic parameter bag into Brave Search API calls.
type Brave struct {
	APIKey  string
	BaseURL string
	Client  HTTPDoer
}

// NewBrave constructs the Brave capability over an injected HTTP client.
func NewBrave(client HTTPDoer) *Brave {
	return &Brave{BaseURL: defaultBraveBaseURL, Client: client}
}

func (b *Brave) Name() string { return "brave" }

func (b *Brave) CredentialEnv() string { return "BRAVE_API_KEY" }

// Search issues a web-search GET with the bag mapped onto query-string
// parameters.
func (b *Brave) Search(ctx context.Context, query string, params Params) Response {
	key := b.APIKey
	if key == "" {
		key = os.Getenv(b.CredentialEnv())
	}
	if key == "" {
		return Response{Err: b.CredentialEnv() + " is not set"}
	}

	values := url.Values{}
	values.Set("q", query)
	for name, value := range params {
		values.Set(name, fmt.Sprintf("%v", value))
	}
	endpoint := b.BaseURL + "/web/search?" + values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errorResponse(0, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", key)

	return fetch(b.Client, req)
}
