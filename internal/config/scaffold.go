package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1

queries:
  static: "queries/static.yaml"
  temporal: "queries/temporal.yaml"

output:
  dir: "results"

configs:
  - id: brave-default
    provider: brave
    params:
      count: 10
  - id: tavily-advanced
    provider: tavily
    params:
      search_depth: advanced
      max_results: 10

grader:
  model: "gpt-4o-mini"
  instructions: "grading/instructions.md"
`

const defaultStaticQueries = `- text: "What is the capital of France?"
  ground_truth: "Paris"
- text: "Who wrote The Master and Margarita?"
  ground_truth: "Mikhail Bulgakov"
- text: "golang context cancellation patterns"
`

const defaultTemporalQueries = `# Temporal queries carry a validity window. A query runs only while the
# run timestamp falls inside [valid_from, valid_until]; either bound may
# be omitted. An explicit "valid_until: null" means the answer is
# currently true with no known expiry.
- text: "Who is the current UN Secretary-General?"
  ground_truth: "Antonio Guterres"
  valid_from: "2017-01-01T00:00:00Z"
  valid_until: null
- text: "Who won Super Bowl LIX?"
  ground_truth: "Philadelphia Eagles"
  valid_from: "2025-02-09T23:00:00Z"
`

const defaultInstructions = `You are grading web search results against known correct answers.

For each result below, score how well the returned documents answer the
query on a 0-10 scale:
- 10: the correct answer appears prominently in the top results.
- 5-9: the correct answer is present but buried or partial.
- 1-4: results are on-topic but do not contain the answer.
- 0: results are off-topic, empty, or wrong.

Respond with a JSON array, one object per result:
[{"config_id": "...", "query": "...", "score": 7, "reasoning": "..."}]

Return only the JSON array, no surrounding prose.
`

// Scaffold writes a starter config, sample query sets, and grading
// instructions. It refuses to overwrite an existing config.
func Scaffold(configPath string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		return fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	baseDir := filepath.Dir(configPath)
	files := []struct {
		path    string
		content string
	}{
		{filepath.Join(baseDir, DefaultStaticQueries), defaultStaticQueries},
		{filepath.Join(baseDir, DefaultTemporalQueries), defaultTemporalQueries},
		{filepath.Join(baseDir, DefaultInstructions), defaultInstructions},
	}
	for _, file := range files {
		if info, err := os.Stat(file.path); err == nil {
			if info.IsDir() {
				return fmt.Errorf("path %q is a directory", file.path)
			}
			return fmt.Errorf("file already exists at %q", file.path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("stat %q: %w", file.path, err)
		}
	}

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	for _, file := range files {
		if err := os.MkdirAll(filepath.Dir(file.path), 0o755); err != nil {
			return fmt.Errorf("create %q: %w", filepath.Dir(file.path), err)
		}
		if err := os.WriteFile(file.path, []byte(file.content), 0o644); err != nil {
			return fmt.Errorf("write %q: %w", file.path, err)
		}
	}
	return nil
}
