package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseConfig decodes serpbench.yaml. Unknown fields and trailing YAML
// documents are errors so typos fail loudly instead of being ignored.
func ParseConfig(data []byte) (Config, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := ensureSingleDocument(decoder); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ensureSingleDocument fails when the stream holds more than one document.
func ensureSingleDocument(decoder *yaml.Decoder) error {
	switch err := decoder.Decode(&struct{}{}); {
	case err == nil:
		return errors.New("multiple YAML documents are not supported")
	case errors.Is(err, io.EOF):
		return nil
	default:
		return err
	}
}
