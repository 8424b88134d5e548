package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	// Test: Defaults reproduce the stock layout
	cfg := Default()

	assert.Equal(t, "idl", cfg.InputDir)
	assert.Equal(t, "HTML*Element.idl", cfg.Pattern)
	assert.Equal(t, "src/elements", cfg.OutputDir)
	assert.Equal(t, "rust", cfg.Language)
	assert.Equal(t, "webidl", cfg.Dialect)
	assert.Equal(t, OrderSorted, cfg.ManifestOrder)
	assert.Equal(t, 0, cfg.Concurrency)
	assert.Equal(t, "200ms", cfg.Watch.Debounce)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFromPath(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		content     string
		want        func(t *testing.T, cfg *Config)
		errContains string
	}{
		{
			name: "json with all fields",
			file: "elemgen.json",
			content: `{
  "input_dir": "webidl",
  "pattern": "*.idl",
  "output_dir": "gen",
  "language": "typescript",
  "dialect": "webidl",
  "manifest_order": "completion",
  "concurrency": 4,
  "types": {"Node": "NodeRef"},
  "watch": {"debounce": "1s"}
}`,
			want: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "webidl", cfg.InputDir)
				assert.Equal(t, "*.idl", cfg.Pattern)
				assert.Equal(t, "gen", cfg.OutputDir)
				assert.Equal(t, "typescript", cfg.Language)
				assert.Equal(t, OrderCompletion, cfg.ManifestOrder)
				assert.Equal(t, 4, cfg.Concurrency)
				assert.Equal(t, map[string]string{"Node": "NodeRef"}, cfg.Types)
				assert.Equal(t, "1s", cfg.Watch.Debounce)
			},
		},
		{
			name:    "json with defaults",
			file:    "elemgen.json",
			content: `{"language": "protobuf"}`,
			want: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "protobuf", cfg.Language)
				assert.Equal(t, "idl", cfg.InputDir)
				assert.Equal(t, "src/elements", cfg.OutputDir)
			},
		},
		{
			name: "yaml",
			file: "elemgen.yaml",
			content: `input_dir: schemas
dialect: graphql
pattern: "*.graphql"
types:
  String: String
`,
			want: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "schemas", cfg.InputDir)
				assert.Equal(t, "graphql", cfg.Dialect)
				assert.Equal(t, "*.graphql", cfg.Pattern)
				assert.Equal(t, "rust", cfg.Language)
				assert.Equal(t, "String", cfg.Types["String"])
			},
		},
		{
			name:        "invalid json",
			file:        "elemgen.json",
			content:     `{"language": `,
			errContains: "failed to parse config file",
		},
		{
			name:        "invalid yaml",
			file:        "elemgen.yml",
			content:     "types: [unclosed",
			errContains: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(configPath, []byte(tt.content), 0644))

			got, err := LoadConfigFromPath(configPath)

			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			tt.want(t, got)
		})
	}
}

func TestLoadConfigFromPath_Missing(t *testing.T) {
	// Test: Missing file is an error
	_, err := LoadConfigFromPath(filepath.Join(t.TempDir(), "elemgen.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfigFromDir(t *testing.T) {
	// Test: Config is found in a parent directory
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "elemgen.yaml"), []byte("language: typescript\n"), 0644))

	cfg, dir, err := loadConfigFromDir(nested)
	require.NoError(t, err)
	assert.Equal(t, root, dir)
	assert.Equal(t, "typescript", cfg.Language)
}

func TestLoadConfigFromDir_PrefersJSON(t *testing.T) {
	// Test: JSON wins over YAML in the same directory
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "elemgen.json"), []byte(`{"language": "protobuf"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "elemgen.yaml"), []byte("language: typescript\n"), 0644))

	cfg, _, err := loadConfigFromDir(root)
	require.NoError(t, err)
	assert.Equal(t, "protobuf", cfg.Language)
}

func TestLoadConfigFromDir_NoFile(t *testing.T) {
	// Test: Without a config file defaults are rooted at the start directory
	root := t.TempDir()

	cfg, dir, err := loadConfigFromDir(root)
	require.NoError(t, err)
	assert.Equal(t, root, dir)
	assert.Equal(t, Default(), cfg)
}

func TestEncode(t *testing.T) {
	// Test: Encoded config loads back unchanged
	path := filepath.Join(t.TempDir(), "elemgen.json")
	cfg := Default()
	cfg.Language = "typescript"
	cfg.Types = map[string]string{"Node": "NodeRef"}

	data, err := Encode(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"input_dir": "idl"`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	got, err := LoadConfigFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(cfg *Config)
		errContains string
	}{
		{"defaults", func(cfg *Config) {}, ""},
		{"typescript alias", func(cfg *Config) { cfg.Language = "ts" }, ""},
		{"graphql dialect", func(cfg *Config) { cfg.Dialect = "graphql" }, ""},
		{"unknown language", func(cfg *Config) { cfg.Language = "cobol" }, "unsupported language: cobol"},
		{"unknown dialect", func(cfg *Config) { cfg.Dialect = "thrift" }, "unsupported schema dialect"},
		{"bad pattern", func(cfg *Config) { cfg.Pattern = "HTML[" }, "invalid pattern"},
		{"bad order", func(cfg *Config) { cfg.ManifestOrder = "random" }, "invalid manifest_order"},
		{"negative concurrency", func(cfg *Config) { cfg.Concurrency = -1 }, "concurrency must not be negative"},
		{"chained types", func(cfg *Config) { cfg.Types = map[string]string{"a": "b", "b": "c"} }, "not idempotent"},
		{"bad debounce", func(cfg *Config) { cfg.Watch.Debounce = "soon" }, "invalid watch.debounce"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestDebounceDuration(t *testing.T) {
	// Test: Debounce strings parse as durations
	cfg := Default()
	d, err := cfg.DebounceDuration()
	require.NoError(t, err)
	assert.Equal(t, 200*time.Millisecond, d)

	cfg.Watch.Debounce = "-1s"
	_, err = cfg.DebounceDuration()
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	// Test: Relative paths are rooted, absolute paths are kept
	assert.Equal(t, filepath.Join("/proj", "idl"), Resolve("/proj", "idl"))
	assert.Equal(t, "/abs/idl", Resolve("/proj", "/abs/idl"))
}
