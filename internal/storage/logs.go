package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LogStore saves step output to files under a base directory, one
// subdirectory per run and job instance. Logs are private to a run;
// nothing reads them back across runs.
type LogStore struct {
	BaseDir string
}

// NewLogStore creates a log store rooted at baseDir.
func NewLogStore(baseDir string) *LogStore {
	return &LogStore{BaseDir: baseDir}
}

// Save writes the output of one step and returns the file path.
func (s *LogStore) Save(runID, job, step, output string) (string, error) {
	dir := filepath.Join(s.BaseDir, sanitize(runID), sanitize(job))
	if err := os.MkdirAll(dir, 0o775); err != nil {
		return "", err
	}

	// timestamp keeps repeated step names unique
	timestamp := time.Now().UTC().Format("20060102_150405.000000")
	filename := fmt.Sprintf("%s_%s.log", sanitize(step), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// sanitize removes special characters from names used in file paths.
func sanitize(name string) string {
	clean := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			clean = append(clean, r)
		default:
			clean = append(clean, '_')
		}
	}
	if len(clean) == 0 {
		return "step"
	}
	return string(clean)
}
