package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ConfigFileName is the config file searched for by the CLI.
const ConfigFileName = "serpbench.yaml"

// ConfigPath returns the full config file path under a workspace root.
func ConfigPath(root string) string {
	return filepath.Join(root, ConfigFileName)
}

// BaseDirFromConfigPath derives the workspace root from a config file
// path. Relative paths inside the config resolve against it.
func BaseDirFromConfigPath(configPath string) string {
	return filepath.Dir(configPath)
}

// ResolvePath resolves a config-relative path against the workspace
// root. Absolute paths pass through unchanged.
func ResolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// FindConfigPath walks from startDir toward the filesystem root looking
// for serpbench.yaml. An empty startDir means the working directory.
func FindConfigPath(startDir string) (string, error) {
	start := strings.TrimSpace(startDir)
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		start = wd
	}
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}

	for dir := abs; ; dir = filepath.Dir(dir) {
		candidate := ConfigPath(dir)
		switch info, err := os.Stat(candidate); {
		case err == nil && info.IsDir():
			return "", fmt.Errorf("%s is a directory", candidate)
		case err == nil:
			return candidate, nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		if filepath.Dir(dir) == dir {
			return "", fmt.Errorf("no %s found in %s or any parent", ConfigFileName, abs)
		}
	}
}
