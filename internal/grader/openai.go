package grader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"serpbench/internal/provider"
)

// defaultOpenAIBaseURL is the default OpenAI-compatible API base URL.
const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// BaseURLEnv overrides the grader endpoint, for OpenAI-compatible
// gateways and local models.
const BaseURLEnv = "SERPBENCH_GRADER_BASE_URL"

// APIKeyEnv names the credential consulted for the grading model.
const APIKeyEnv = "OPENAI_API_KEY"

// Chat sends one prompt to a model and returns its text reply.
type Chat interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// OpenAIChat implements Chat against an OpenAI-compatible API.
type OpenAIChat struct {
	APIKey  string
	BaseURL string
	Client  provider.HTTPDoer
}

// ChatFromEnv builds a chat client from environment configuration.
// An explicit baseURL wins over the environment override.
func ChatFromEnv(baseURL string, client provider.HTTPDoer) (*OpenAIChat, error) {
	apiKey := strings.TrimSpace(os.Getenv(APIKeyEnv))
	if apiKey == "" {
		return nil, fmt.Errorf("%s is required", APIKeyEnv)
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = strings.TrimSpace(os.Getenv(BaseURLEnv))
	}
	return NewOpenAIChat(apiKey, baseURL, client)
}

// NewOpenAIChat constructs a chat client with explicit settings.
func NewOpenAIChat(apiKey, baseURL string, client provider.HTTPDoer) (*OpenAIChat, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenAIChat{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends one prompt and returns the first choice's content.
func (c *OpenAIChat) Complete(ctx context.Context, model, prompt string) (string, error) {
	if strings.TrimSpace(model) == "" {
		return "", fmt.Errorf("model is required")
	}
	payload, err := json.Marshal(chatRequest{
		Model:    model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("grader error: %s", strings.TrimSpace(string(body)))
	}
	var decoded chatResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("grader returned no choices")
	}
	return decoded.Choices[0].Message.Content, nil
}
