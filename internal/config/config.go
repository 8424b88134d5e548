package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/okra-platform/elemgen/internal/codegen"
	"github.com/okra-platform/elemgen/internal/codegen/typemap"
	"github.com/okra-platform/elemgen/internal/schema"
)

// FileNames are the config file names searched for, in order of preference
var FileNames = []string{"elemgen.json", "elemgen.yaml", "elemgen.yml"}

// Manifest orderings
const (
	OrderSorted     = "sorted"
	OrderCompletion = "completion"
)

// Config represents the elemgen configuration file
type Config struct {
	InputDir      string            `json:"input_dir" yaml:"input_dir"`
	Pattern       string            `json:"pattern" yaml:"pattern"`
	OutputDir     string            `json:"output_dir" yaml:"output_dir"`
	Language      string            `json:"language" yaml:"language"`
	Dialect       string            `json:"dialect" yaml:"dialect"`
	ManifestOrder string            `json:"manifest_order" yaml:"manifest_order"`
	Concurrency   int               `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
	Types         map[string]string `json:"types,omitempty" yaml:"types,omitempty"`
	Watch         WatchConfig       `json:"watch" yaml:"watch"`
}

// WatchConfig contains watch mode configuration
type WatchConfig struct {
	// Debounce is a Go duration string, e.g. "200ms"
	Debounce string `json:"debounce" yaml:"debounce"`
}

// Default returns a configuration with every field set to its default
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.InputDir == "" {
		c.InputDir = "idl"
	}
	if c.Pattern == "" {
		c.Pattern = "HTML*Element.idl"
	}
	if c.OutputDir == "" {
		c.OutputDir = "src/elements"
	}
	if c.Language == "" {
		c.Language = "rust"
	}
	if c.Dialect == "" {
		c.Dialect = schema.DialectWebIDL
	}
	if c.ManifestOrder == "" {
		c.ManifestOrder = OrderSorted
	}
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = "200ms"
	}
}

// LoadConfig loads the configuration from the current directory or a parent directory.
// Without a config file, defaults rooted at the current directory are returned.
func LoadConfig() (*Config, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to get current directory")
	}

	return loadConfigFromDir(dir)
}

// LoadConfigFromPath loads a configuration file, choosing the decoder by extension
func LoadConfigFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var config Config
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config file %s", path)
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config file %s", path)
		}
	}

	config.applyDefaults()
	return &config, nil
}

// Encode renders the configuration as indented JSON
func Encode(cfg *Config) ([]byte, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode config")
	}
	return append(data, '\n'), nil
}

// Validate checks that every field holds a supported value
func (c *Config) Validate() error {
	if !codegen.DefaultRegistry.Has(c.Language) {
		return errors.WithHintf(errors.Newf("unsupported language: %s", c.Language),
			"supported languages: %v", codegen.DefaultRegistry.Languages())
	}
	if _, err := schema.NewParser(c.Dialect); err != nil {
		return err
	}
	if _, err := filepath.Match(c.Pattern, ""); err != nil {
		return errors.Wrapf(err, "invalid pattern %q", c.Pattern)
	}
	switch c.ManifestOrder {
	case OrderSorted, OrderCompletion:
	default:
		return errors.WithHintf(errors.Newf("invalid manifest_order: %s", c.ManifestOrder),
			"use %q or %q", OrderSorted, OrderCompletion)
	}
	if c.Concurrency < 0 {
		return errors.Newf("concurrency must not be negative: %d", c.Concurrency)
	}
	if err := typemap.TypeMap(c.Types).Validate(); err != nil {
		return errors.WithHint(err, "a mapped type must not itself be remapped to something else")
	}
	if _, err := c.DebounceDuration(); err != nil {
		return err
	}
	return nil
}

// DebounceDuration parses the watch debounce interval
func (c *Config) DebounceDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid watch.debounce %q", c.Watch.Debounce)
	}
	if d < 0 {
		return 0, errors.Newf("watch.debounce must not be negative: %s", c.Watch.Debounce)
	}
	return d, nil
}

// Resolve returns path joined onto root unless it is already absolute
func Resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// loadConfigFromDir searches for a config file in the given directory and its parents
func loadConfigFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		for _, name := range FileNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				config, err := LoadConfigFromPath(configPath)
				if err != nil {
					return nil, "", err
				}
				return config, dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return Default(), startDir, nil
}
