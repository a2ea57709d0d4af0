package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"inferoute/pkg/schedule"
)

// fileLayout is the serialized journal shape.
type fileLayout struct {
	Report     schedule.Report    `json:"report"`
	Statistics Statistics         `json:"statistics"`
	Fulfilled  map[string][]Entry `json:"fulfilled"`
	Errored    map[string][]Entry `json:"errored"`
}

// Save persists the journal to a JSON file using an atomic rename.
func (j *Journal) Save(path string) error {
	if path == "" {
		return fmt.Errorf("journal path is required")
	}
	stats := j.Statistics()
	j.mu.Lock()
	layout := fileLayout{
		Report:     j.report,
		Statistics: stats,
		Fulfilled:  j.fulfilled,
		Errored:    j.errored,
	}
	payload, err := json.MarshalIndent(layout, "", "  ")
	j.mu.Unlock()
	if err != nil {
		return err
	}
	tmpPath := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
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
