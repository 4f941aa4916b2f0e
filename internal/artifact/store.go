package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const artifactExt = ".json"

// Store resolves where run and grading artifacts live on disk. Run
// artifacts land under <Dir>/runs and grading artifacts under
// <Dir>/grades, both keyed by run ID.
type Store struct {
	Dir string
}

// RunsDir returns the directory holding run artifacts.
func (s Store) RunsDir() string { return filepath.Join(s.Dir, "runs") }

// GradesDir returns the directory holding grading artifacts.
func (s Store) GradesDir() string { return filepath.Join(s.Dir, "grades") }

// RunPath returns the artifact path for a run ID.
func (s Store) RunPath(runID string) string {
	return filepath.Join(s.RunsDir(), runID+artifactExt)
}

// GradingPath returns the grading artifact path for a run ID.
func (s Store) GradingPath(runID string) string {
	return filepath.Join(s.GradesDir(), runID+artifactExt)
}

// SaveRun persists a run artifact using an atomic rename.
func (s Store) SaveRun(runID string, value any) error {
	if strings.TrimSpace(runID) == "" {
		return fmt.Errorf("run id is required")
	}
	return writeJSON(s.RunPath(runID), value)
}

// LoadRun reads a run artifact into value.
func (s Store) LoadRun(runID string, value any) error {
	data, err := os.ReadFile(s.RunPath(runID))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, value); err != nil {
		return fmt.Errorf("decode run %s: %w", runID, err)
	}
	return nil
}

// SaveGrading persists a grading artifact, replacing any previous
// grades for the run.
func (s Store) SaveGrading(runID string, value any) error {
	if strings.TrimSpace(runID) == "" {
		return fmt.Errorf("run id is required")
	}
	return writeJSON(s.GradingPath(runID), value)
}

// LoadGrading reads a grading artifact into value.
func (s Store) LoadGrading(runID string, value any) error {
	data, err := os.ReadFile(s.GradingPath(runID))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, value); err != nil {
		return fmt.Errorf("decode grading %s: %w", runID, err)
	}
	return nil
}

// RunIDs lists stored run IDs in ascending lexicographic order.
func (s Store) RunIDs() ([]string, error) {
	entries, err := os.ReadDir(s.RunsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), artifactExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), artifactExt))
	}
	sort.Strings(ids)
	return ids, nil
}

// LatestRunID returns the newest stored run ID. Run IDs encode their
// start instant, so lexicographic order matches chronological order.
func (s Store) LatestRunID() (string, error) {
	ids, err := s.RunIDs()
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("no runs found in %s", s.RunsDir())
	}
	return ids[len(ids)-1], nil
}

func writeJSON(path string, value any) error {
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmpPath := path + ".tmp"
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	_, writeErr := file.Write(payload)
	syncErr := file.Sync()
	closeErr := file.Close()
	if writeErr != nil {
		_ = os.Remove(tmpPath)
		return writeErr
	}
	if syncErr != nil {
		_ = os.Remove(tmpPath)
		return syncErr
	}
	if closeErr != nil {
		_ = os.Remove(tmpPath)
		return closeErr
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
