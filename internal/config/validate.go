package config

import (
	"fmt"
	"strings"

	"serpbench/internal/provider"
)

// Validate checks a config for correctness. Provider names are not
// resolved here: an unknown provider surfaces as a per-record error at
// dispatch time, not as a config failure.
func Validate(cfg *Config) error {
	collector := &issueCollector{}

	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if strings.TrimSpace(cfg.Queries.Static) == "" {
		collector.add("queries.static", "is required")
	}
	if strings.TrimSpace(cfg.Queries.Temporal) == "" {
		collector.add("queries.temporal", "is required")
	}
	if strings.TrimSpace(cfg.Output.Dir) == "" {
		collector.add("output.dir", "is required")
	}

	validateConfigs(cfg, collector.add)

	return collector.result()
}

// validateConfigs checks provider config entries for identity and
// param correctness.
func validateConfigs(cfg *Config, add func(field, message string)) {
	if len(cfg.Configs) == 0 {
		add("configs", "at least one provider config is required")
	}
	configIDs := map[string]struct{}{}
	for i, pc := range cfg.Configs {
		fieldPrefix := fmt.Sprintf("configs[%d]", i)
		id := strings.TrimSpace(pc.ID)
		if id == "" {
			add(fieldPrefix+".id", "is required")
		} else if _, exists := configIDs[id]; exists {
			add("configs.id", fmt.Sprintf("duplicate id %q", id))
		} else {
			configIDs[id] = struct{}{}
		}
		if strings.TrimSpace(pc.Provider) == "" {
			add(fieldPrefix+".provider", "is required")
			continue
		}
		if err := provider.ValidateParams(pc.Provider, pc.Params); err != nil {
			add(fieldPrefix+".params", err.Error())
		}
	}
}
