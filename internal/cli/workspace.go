package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"serpbench/internal/artifact"
	"serpbench/internal/config"
)

// workspace couples a loaded configuration with the directory that
// config-relative paths resolve against. Every command that touches
// the config goes through loadWorkspace so path handling stays in
// one place.
type workspace struct {
	configPath string
	baseDir    string
	cfg        config.Config
}

// loadWorkspace locates serpbench.yaml and loads it. An empty flag value
// searches upward from the working directory; anything else is taken as
// a path to the file itself.
func loadWorkspace(flagValue string) (workspace, error) {
	path := strings.TrimSpace(flagValue)
	if path == "" {
		found, err := config.FindConfigPath("")
		if err != nil {
			return workspace{}, err
		}
		path = found
	} else {
		abs, err := filepath.Abs(path)
		if err != nil {
			return workspace{}, fmt.Errorf("resolve config path: %w", err)
		}
		path = abs
	}
	cfg, err := config.Load(path)
	if err != nil {
		return workspace{}, err
	}
	return workspace{
		configPath: path,
		baseDir:    config.BaseDirFromConfigPath(path),
		cfg:        cfg,
	}, nil
}

// resolve maps a config-relative path onto the workspace base directory.
func (w workspace) resolve(path string) string {
	return config.ResolvePath(w.baseDir, path)
}

// store returns the artifact store for this workspace. A non-empty
// override (the --output flag) wins over the configured directory.
func (w workspace) store(override string) artifact.Store {
	dir := strings.TrimSpace(override)
	if dir == "" {
		dir = w.cfg.Output.Dir
	}
	return artifact.Store{Dir: w.resolve(dir)}
}
