// Package config loads navigator settings from savan.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "savan.yaml"

// Config is the content of savan.yaml. Every field can be overridden by CLI flags.
type Config struct {
	// Files are logic program files, concatenated in order.
	Files []string `mapstructure:"files"`
	// Args are passed verbatim to the solving engine.
	Args []string `mapstructure:"args"`
	// Backend is "gini" (default) or "clingo".
	Backend string       `mapstructure:"backend"`
	Clingo  ClingoConfig `mapstructure:"clingo"`
	// Route is the initial route of interactive navigation.
	Route    []string `mapstructure:"route"`
	Weight   string   `mapstructure:"weight"`
	LogLevel string   `mapstructure:"log_level"`
}

// ClingoConfig configures the clingo backend.
type ClingoConfig struct {
	Command string `mapstructure:"command"`
	Dir     string `mapstructure:"dir"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Backend:  "gini",
		Weight:   "facets",
		LogLevel: "info",
		Clingo:   ClingoConfig{Command: "clingo"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
// Scalars are weakly typed, so `args: [0, --project]` becomes ["0", "--project"].
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filepath.Base(path), err)
	}

	// relative program files are resolved against the config file
	base := filepath.Dir(path)
	for i, f := range cfg.Files {
		if !filepath.IsAbs(f) {
			cfg.Files[i] = filepath.Join(base, f)
		}
	}
	return cfg, cfg.Validate()
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Backend) {
	case "gini", "clingo":
	default:
		return fmt.Errorf("unknown backend %q (want gini or clingo)", c.Backend)
	}
	return nil
}

// ReadProgram concatenates the program files.
func ReadProgram(files []string) (string, error) {
	var b strings.Builder
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return "", fmt.Errorf("failed to read program: %w", err)
		}
		b.Write(data)
		b.WriteByte('\n')
	}
	return b.String(), nil
}
