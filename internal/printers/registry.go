package printers

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// registryFile is the on-disk shape of the printer configuration.
type registryFile struct {
	Printers []Target `json:"printers"`
}

// Registry persists printer targets in a JSON file. A missing file is an
// empty registry, not an error.
type Registry struct {
	path string
}

// NewRegistry returns a Registry backed by the given file path.
func NewRegistry(path string) *Registry {
	return &Registry{path: path}
}

// Load reads all configured targets. Returns an empty slice if the file
// does not exist yet.
func (r *Registry) Load() ([]Target, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read printer config: %w", err)
	}
	var f registryFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse printer config: %w", err)
	}
	return f.Printers, nil
}

// Save writes the full target list, creating the parent directory when
// needed.
func (r *Registry) Save(targets []Target) error {
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	b, err := json.MarshalIndent(registryFile{Printers: targets}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal printer config: %w", err)
	}
	if err := os.WriteFile(r.path, b, 0o644); err != nil {
		return fmt.Errorf("write printer config: %w", err)
	}
	return nil
}

// ForCategory returns the enabled targets that serve the category.
func (r *Registry) ForCategory(category string) ([]Target, error) {
	targets, err := r.Load()
	if err != nil {
		return nil, err
	}
	var out []Target
	for _, t := range targets {
		if t.ServesCategory(category) {
			out = append(out, t)
		}
	}
	return out, nil
}

// ByID looks up a target by its id, or by its list index when ids are
// not assigned.
func (r *Registry) ByID(id string) (Target, bool, error) {
	targets, err := r.Load()
	if err != nil {
		return Target{}, false, err
	}
	for i, t := range targets {
		if t.ID == id || fmt.Sprintf("%d", i) == id {
			return t, true, nil
		}
	}
	return Target{}, false, nil
}
