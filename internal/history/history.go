// Package history keeps an append-only JSON log of results the user chose
// to save.
package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Entry is one saved result.
type Entry struct {
	ID             string          `json:"id"`
	CreatedAt      time.Time       `json:"createdAt"`
	Input          string          `json:"input"`
	Output         string          `json:"output"`
	OptionsApplied map[string]bool `json:"optionsApplied"`
}

// NewEntry stamps a fresh entry with an ID and the current time.
func NewEntry(input, output string, applied map[string]bool) Entry {
	copied := make(map[string]bool, len(applied))
	for k, v := range applied {
		copied[k] = v
	}
	return Entry{
		ID:             uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
		Input:          input,
		Output:         output,
		OptionsApplied: copied,
	}
}

// Append adds entries to the history file, creating it if necessary.
func Append(path string, entries ...Entry) error {
	if len(entries) == 0 {
		return nil
	}
	if path == "" {
		return errors.New("history file not configured")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	existing, err := Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	existing = append(existing, entries...)
	return write(path, existing)
}

// Load returns every saved entry in file order.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func write(path string, entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
