package editor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Cache is the local fallback store: a single JSON file holding the
// last-known-good project collection. It is overwritten on every debounce
// fire and read back only when the remote list is unreachable at startup.
// It is never authoritative while the remote store is reachable.
type Cache struct {
	path string
}

func NewCache(path string) *Cache {
	return &Cache{path: path}
}

// Write replaces the cached collection. A temp-file rename keeps a crash
// mid-write from corrupting the previous snapshot.
func (c *Cache) Write(projects []Project) error {
	data, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("marshal projects: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replace cache: %w", err)
	}
	return nil
}

// Load reads the last-known-good collection.
func (c *Cache) Load() ([]Project, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read cache: %w", err)
	}

	var projects []Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("decode cache: %w", err)
	}
	return projects, nil
}
