package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// MergeColliders appends colliders from a JSON file to the inline ones.
// Inline colliders take precedence when names collide.
func (w *World) MergeColliders() error {
	if w.FromFile == "" {
		return nil
	}

	data, err := os.ReadFile(w.FromFile)
	if err != nil {
		return fmt.Errorf("reading colliders file: %w", err)
	}

	var fileColliders []Collider
	if err := json.Unmarshal(data, &fileColliders); err != nil {
		return fmt.Errorf("parsing colliders file: %w", err)
	}

	for _, c := range fileColliders {
		if !w.HasCollider(c.Name) {
			w.Colliders = append(w.Colliders, c)
		}
	}

	return nil
}

// Helper method to check if an inline collider with this name exists
func (w *World) HasCollider(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range w.Colliders {
		if c.Name == name {
			return true
		}
	}
	return false
}

// LoadAndMerge loads all external files and merges their contents
func (c *ExperimentConfig) LoadAndMerge() error {
	if err := c.World.MergeColliders(); err != nil {
		return fmt.Errorf("merging colliders: %w", err)
	}
	return nil
}
