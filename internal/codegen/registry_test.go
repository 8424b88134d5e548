package codegen

import (
	"testing"

	"github.com/okra-platform/elemgen/internal/codegen/typemap"
	"github.com/okra-platform/elemgen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockGenerator is a test generator
type mockGenerator struct {
	lang  string
	types typemap.TypeMap
}

func (m *mockGenerator) Generate(iface *schema.Interface) ([]byte, error) {
	return []byte("mock output"), nil
}

func (m *mockGenerator) Manifest(ids []string) []byte {
	return nil
}

func (m *mockGenerator) Language() string {
	return m.lang
}

func (m *mockGenerator) FileExtension() string {
	return ".mock"
}

func (m *mockGenerator) ManifestFile() string {
	return "mod.mock"
}

func (m *mockGenerator) Types() typemap.TypeMap {
	return m.types
}

func mockFactory(lang string) Factory {
	return func(types typemap.TypeMap) Generator {
		return &mockGenerator{lang: lang, types: types}
	}
}

func TestRegistry_NewRegistry(t *testing.T) {
	// Test: New registry is empty by default
	r := NewRegistry()
	assert.NotNil(t, r)

	// Should error on unknown language
	_, err := r.Get("unknown", nil)
	assert.Error(t, err)
}

func TestRegistry_Register(t *testing.T) {
	// Test: Register custom generator
	r := NewRegistry()

	r.Register("mock", typemap.TypeMap{"DOMString": "Str"}, mockFactory("mock"))

	gen, err := r.Get("mock", nil)
	require.NoError(t, err)
	assert.NotNil(t, gen)
	assert.Equal(t, "mock", gen.Language())
	assert.Equal(t, "Str", gen.Types().Map("DOMString"))
	assert.True(t, r.Has("mock"))
}

func TestRegistry_Overrides(t *testing.T) {
	// Test: Overrides are layered on defaults and validated
	r := NewRegistry()
	defaults := typemap.TypeMap{"DOMString": "Str", "long": "i32"}
	r.Register("mock", defaults, mockFactory("mock"))

	gen, err := r.Get("mock", map[string]string{"long": "i64"})
	require.NoError(t, err)
	assert.Equal(t, "i64", gen.Types().Map("long"))
	assert.Equal(t, "Str", gen.Types().Map("DOMString"))
	assert.Equal(t, "i32", defaults.Map("long"))

	_, err = r.Get("mock", map[string]string{"Str": "String"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid type overrides for mock")
}

func TestRegistry_UnsupportedLanguage(t *testing.T) {
	// Test: Error for unsupported language
	r := NewRegistry()

	gen, err := r.Get("unknown", nil)
	assert.Error(t, err)
	assert.Nil(t, gen)
	assert.Contains(t, err.Error(), "unsupported language: unknown")
	assert.False(t, r.Has("unknown"))
}

func TestRegistry_Languages(t *testing.T) {
	// Test: List of supported languages, sorted
	r := NewRegistry()

	assert.Empty(t, r.Languages())

	r.Register("typescript", nil, mockFactory("typescript"))
	r.Register("rust", nil, mockFactory("rust"))
	r.Register("protobuf", nil, mockFactory("protobuf"))

	assert.Equal(t, []string{"protobuf", "rust", "typescript"}, r.Languages())
}

func TestDefaultRegistry(t *testing.T) {
	// Test: Built-in targets are registered with their file layout
	tests := []struct {
		language string
		ext      string
		manifest string
	}{
		{"rust", ".rs", "mod.rs"},
		{"typescript", ".ts", "index.ts"},
		{"ts", ".ts", "index.ts"},
		{"protobuf", ".proto", "mod.proto"},
	}

	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			gen, err := DefaultRegistry.Get(tt.language, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.ext, gen.FileExtension())
			assert.Equal(t, tt.manifest, gen.ManifestFile())
			require.NoError(t, gen.Types().Validate())
		})
	}
}
