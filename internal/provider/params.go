package provider

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Parameter bags are schema-checked when configurations load, so malformed
// parameters fail before any provider call instead of inside one.
//
//go:embed schemas/*.schema.json
var schemaFS embed.FS

var (
	schemaOnce sync.Once
	schemaSet  map[string]*jsonschema.Schema
	schemaErr  error
)

func compiledSchemas() (map[string]*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		entries, err := schemaFS.ReadDir("schemas")
		if err != nil {
			schemaErr = fmt.Errorf("read param schemas: %w", err)
			return
		}
		set := make(map[string]*jsonschema.Schema, len(entries))
		for _, entry := range entries {
			name := entry.Name()
			data, err := schemaFS.ReadFile("schemas/" + name)
			if err != nil {
				schemaErr = fmt.Errorf("read param schema %s: %w", name, err)
				return
			}
			compiler := jsonschema.NewCompiler()
			if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
				schemaErr = fmt.Errorf("add param schema %s: %w", name, err)
				return
			}
			schema, err := compiler.Compile(name)
			if err != nil {
				schemaErr = fmt.Errorf("compile param schema %s: %w", name, err)
				return
			}
			provider := name[:len(name)-len(".schema.json")]
			set[provider] = schema
		}
		schemaSet = set
	})
	return schemaSet, schemaErr
}

// ValidateParams checks a parameter bag against the named provider's schema.
// Providers without an embedded schema accept any bag.
func ValidateParams(providerName string, params Params) error {
	schemas, err := compiledSchemas()
	if err != nil {
		return err
	}
	schema, ok := schemas[providerName]
	if !ok {
		return nil
	}
	// Round-trip through JSON so YAML-decoded values validate the same way
	// the provider call will serialize them.
	encoded, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("params for %s: %w", providerName, err)
	}
	var doc any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return fmt.Errorf("params for %s: %w", providerName, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("params for %s: %w", providerName, err)
	}
	return nil
}
