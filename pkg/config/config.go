package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for fathom.
type Config struct {
	// File exclusion patterns applied by the scanner
	Exclude ExcludeConfig `koanf:"exclude"`

	// External exact-tier analysis tools
	Tools ToolsConfig `koanf:"tools"`

	// Output settings
	Output OutputConfig `koanf:"output"`
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns  []string `koanf:"patterns"`
	Dirs      []string `koanf:"dirs"`
	Gitignore bool     `koanf:"gitignore"`
}

// ToolsConfig controls the external-tool exact tier. Disabling it forces
// the heuristic tier for every language.
type ToolsConfig struct {
	Enabled bool `koanf:"enabled"`
	// TimeoutSeconds bounds each subprocess invocation. On expiry the
	// language degrades to the heuristic tier.
	TimeoutSeconds int `koanf:"timeout_seconds"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*.min.js",
				"*.min.css",
			},
			Dirs: []string{
				"node_modules",
				"__pycache__",
				"vendor",
				"build",
				"dist",
				"target",
				"bin",
				"obj",
				"deps",
				"_build",
				".git",
				".svn",
			},
			Gitignore: true,
		},
		Tools: ToolsConfig{
			Enabled:        true,
			TimeoutSeconds: 120,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns
// defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"fathom.toml",
		"fathom.yaml",
		"fathom.yml",
		"fathom.json",
		".fathom.toml",
		".fathom.yaml",
		".fathom.yml",
		".fathom.json",
	}

	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			cfg, err := Load(name)
			if err == nil {
				return cfg
			}
		}
	}

	return DefaultConfig()
}
