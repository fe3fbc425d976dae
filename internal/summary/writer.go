package summary

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Write writes a summary to a YAML file
func Write(s *Summary, path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Read reads a summary from a YAML file
func Read(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Summary
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}

	return &s, nil
}

// Path creates a timestamped summary filename in dir for the given source
// document.
func Path(dir, source string) string {
	base := filepath.Base(source)
	name := strings.ReplaceAll(strings.TrimSuffix(base, filepath.Ext(base)), " ", "_")
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.yaml", name, timestamp))
}

// FindLatest finds the most recent summary file in dir
func FindLatest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read summary directory: %w", err)
	}

	var summaries []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".yaml") {
			summaries = append(summaries, filepath.Join(dir, entry.Name()))
		}
	}

	if len(summaries) == 0 {
		return "", fmt.Errorf("no summary files found in %s", dir)
	}

	// Sort by modification time (newest first)
	sort.Slice(summaries, func(i, j int) bool {
		infoI, _ := os.Stat(summaries[i])
		infoJ, _ := os.Stat(summaries[j])
		return infoI.ModTime().After(infoJ.ModTime())
	})

	return summaries[0], nil
}
