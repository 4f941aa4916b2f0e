package query

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// RawEntry is one undecoded query entry together with its origin, kept loose
// so malformed authoring data survives parsing and reaches Sanitize.
type RawEntry struct {
	Source string
	Index  int
	Value  any
}

// LoadSets reads the static and temporal query collections and concatenates
// them in order, static first. Either file being unreadable is fatal to the
// run; per-entry problems are not detected here.
func LoadSets(staticPath, temporalPath string) ([]RawEntry, error) {
	static, err := loadSet(staticPath)
	if err != nil {
		return nil, err
	}
	temporal, err := loadSet(temporalPath)
	if err != nil {
		return nil, err
	}
	return append(static, temporal...), nil
}

func loadSet(path string) ([]RawEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read query set: %w", err)
	}
	values, err := parseEntries(data, path)
	if err != nil {
		return nil, err
	}
	source := filepath.Base(path)
	entries := make([]RawEntry, 0, len(values))
	for i, value := range values {
		entries = append(entries, RawEntry{Source: source, Index: i, Value: value})
	}
	return entries, nil
}

func parseEntries(data []byte, path string) ([]any, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		return parseJSONEntries(data, path)
	}
	return parseYAMLEntries(data, path)
}

func parseJSONEntries(data []byte, path string) ([]any, error) {
	var values []any
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&values); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse %s: multiple documents are not supported", filepath.Base(path))
		}
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return values, nil
}

func parseYAMLEntries(data []byte, path string) ([]any, error) {
	var values []any
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&values); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse %s: multiple documents are not supported", filepath.Base(path))
		}
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return values, nil
}
