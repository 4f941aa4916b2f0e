package config

// Default locations used when the config file leaves paths unset.
const (
	DefaultStaticQueries   = "queries/static.yaml"
	DefaultTemporalQueries = "queries/temporal.yaml"
	DefaultOutputDir       = "results"
	DefaultInstructions    = "grading/instructions.md"
)

// Normalize fills unset fields with their defaults.
func Normalize(cfg *Config) {
	if cfg.Queries.Static == "" {
		cfg.Queries.Static = DefaultStaticQueries
	}
	if cfg.Queries.Temporal == "" {
		cfg.Queries.Temporal = DefaultTemporalQueries
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = DefaultOutputDir
	}
	if cfg.Grader.Instructions == "" {
		cfg.Grader.Instructions = DefaultInstructions
	}
}
