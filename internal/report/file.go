package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hamed0406/synccheck/internal/domain"
)

const filePrefix = "synccheck_results_"

// FileName returns the results file name for a run started at t,
// e.g. synccheck_results_20261016_093000.json.
func FileName(t time.Time) string {
	return filePrefix + t.Format("20060102_150405") + ".json"
}

// WriteFile writes results as an indented JSON array into dir and returns the path.
func WriteFile(dir string, results []domain.ProbeResult, t time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if results == nil {
		results = []domain.ProbeResult{}
	}
	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode results: %w", err)
	}
	path := filepath.Join(dir, FileName(t))
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write results: %w", err)
	}
	return path, nil
}

// ReadFile loads a results file written by WriteFile, order preserved.
func ReadFile(path string) ([]domain.ProbeResult, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	var results []domain.ProbeResult
	if err := json.Unmarshal(b, &results); err != nil {
		return nil, fmt.Errorf("decode results %s: %w", path, err)
	}
	return results, nil
}
