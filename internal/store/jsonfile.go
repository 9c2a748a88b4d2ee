// Package store reads and writes the flat JSON record collections that back
// every repository. Writes replace the whole file; callers serialize their
// read-modify-write sequences with their own mutex.
package store

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load decodes the JSON collection at path into v.
func Load(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("store: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("store: decode %s: %w", path, err)
	}
	return nil
}

// Save replaces the collection file at path with v encoded as indented JSON.
func Save(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	return nil
}
