// Package config provides configuration loading and management for the
// shaclex translator.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete shaclex configuration
type Config struct {
	Translate TranslateConfig `yaml:"translate"`
	Batch     BatchConfig     `yaml:"batch"`
}

// TranslateConfig configures the translation pipeline
type TranslateConfig struct {
	// ShapeBase is the namespace minted SHACL shape IRIs are placed under
	ShapeBase string `yaml:"shape_base"`
	// Prefixes adds extra prefix bindings to the output prefix table
	Prefixes map[string]string `yaml:"prefixes"`
}

// BatchConfig configures batch directory translation
type BatchConfig struct {
	// Patterns are doublestar globs selecting input files (default: **/*.ttl, **/*.shex)
	Patterns []string `yaml:"patterns"`
	// OutputDir is where translated files are written (default: alongside inputs)
	OutputDir string `yaml:"output_dir"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Translate: TranslateConfig{
			ShapeBase: "http://shaclshapes.org/",
			Prefixes:  map[string]string{},
		},
		Batch: BatchConfig{
			Patterns: []string{"**/*.ttl", "**/*.shex"},
		},
	}
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &config, nil
}

// SaveToFile writes the configuration to a YAML file, creating parent
// directories as needed
func (c *Config) SaveToFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Merge overlays non-zero fields from other onto c
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Translate.ShapeBase != "" {
		c.Translate.ShapeBase = other.Translate.ShapeBase
	}
	for name, iri := range other.Translate.Prefixes {
		if c.Translate.Prefixes == nil {
			c.Translate.Prefixes = map[string]string{}
		}
		c.Translate.Prefixes[name] = iri
	}
	if len(other.Batch.Patterns) > 0 {
		c.Batch.Patterns = other.Batch.Patterns
	}
	if other.Batch.OutputDir != "" {
		c.Batch.OutputDir = other.Batch.OutputDir
	}
}

// Validate checks the configuration for inconsistencies
func (c *Config) Validate() error {
	if c.Translate.ShapeBase != "" && !strings.Contains(c.Translate.ShapeBase, "://") {
		return fmt.Errorf("translate.shape_base %q is not an absolute IRI", c.Translate.ShapeBase)
	}
	for name, iri := range c.Translate.Prefixes {
		if !strings.Contains(iri, "://") && !strings.HasPrefix(iri, "urn:") {
			return fmt.Errorf("prefix %q binds invalid namespace %q", name, iri)
		}
	}
	return nil
}
