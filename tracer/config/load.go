package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadOptions configures the behavior of config loading
type LoadOptions struct {
	ValidateImmediately bool
	ResolvePaths        bool
	MergeFiles          bool
}

// LoadFromFile loads an ExperimentConfig from a YAML file
func LoadFromFile(path string, opts LoadOptions) (*ExperimentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	baseDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolving config directory: %w", err)
	}
	return Load(data, baseDir, opts)
}

// Load parses a config. Relative paths resolve against baseDir.
func Load(data []byte, baseDir string, opts LoadOptions) (*ExperimentConfig, error) {
	config := &ExperimentConfig{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	config.ApplyDefaults()

	if opts.ResolvePaths {
		if err := config.ResolvePaths(NewPathResolver(baseDir)); err != nil {
			return nil, fmt.Errorf("resolving paths: %w", err)
		}
	}

	if opts.MergeFiles {
		if err := config.LoadAndMerge(); err != nil {
			return nil, fmt.Errorf("merging external files: %w", err)
		}
	}

	if opts.ValidateImmediately {
		if errs := config.Validate(); len(errs) > 0 {
			return nil, fmt.Errorf("validation errors: %v", errs)
		}
	}

	return config, nil
}

// SaveToFile saves an ExperimentConfig to a YAML file
func SaveToFile(config *ExperimentConfig, path string) error {
	// Update metadata before saving
	NewMetadataCollector().PopulateMetadata(config)

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// ResolvePaths resolves all relative paths in the config to absolute paths
func (c *ExperimentConfig) ResolvePaths(resolver *PathResolver) error {
	if c.World.FromFile != "" {
		c.World.FromFile = resolver.ResolvePath(c.World.FromFile)
	}
	if c.World.Mesh != nil && c.World.Mesh.Path != "" {
		c.World.Mesh.Path = resolver.ResolvePath(c.World.Mesh.Path)
	}
	return nil
}
