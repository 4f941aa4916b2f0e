package config

import "serpbench/internal/provider"

type Config struct {
	Version int              `yaml:"version"`
	Queries QueriesConfig    `yaml:"queries"`
	Output  OutputConfig     `yaml:"output"`
	Configs []ProviderConfig `yaml:"configs"`
	Grader  GraderConfig     `yaml:"grader"`
}

type QueriesConfig struct {
	Static   string `yaml:"static"`
	Temporal string `yaml:"temporal"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

type ProviderConfig struct {
	ID       string          `yaml:"id"`
	Provider string          `yaml:"provider"`
	Params   provider.Params `yaml:"params"`
}

type GraderConfig struct {
	Model        string `yaml:"model"`
	Instructions string `yaml:"instructions"`
	BaseURL      string `yaml:"base_url"`
}
