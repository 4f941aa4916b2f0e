package grader

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PromptItem is one result record rendered for the grading prompt.
type PromptItem struct {
	ConfigID    string          `json:"config_id"`
	Provider    string          `json:"provider"`
	Query       string          `json:"query"`
	GroundTruth string          `json:"ground_truth"`
	Response    json.RawMessage `json:"response"`
}

// BuildPrompt renders the grading instructions followed by the records
// to grade as a JSON array.
func BuildPrompt(instructions string, items []PromptItem) (string, error) {
	payload, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal grading items: %w", err)
	}
	var builder strings.Builder
	builder.WriteString(strings.TrimRight(instructions, "\n"))
	builder.WriteString("\n\n")
	builder.Write(payload)
	builder.WriteString("\n")
	return builder.String(), nil
}
