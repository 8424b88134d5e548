package commands

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/elemgen/internal/config"
	"github.com/okra-platform/elemgen/internal/schema"
)

// Test plan:
// 1. Existing config file is rejected
// 2. Successful creation writes a valid elemgen.json
// 3. Invalid answers and write failures are reported
// 4. Pattern validation used by the form
// 5. Form input with tea.WithInput

type mockFileSystem struct {
	wd       string
	wdErr    error
	files    map[string]bool
	writeErr error
	written  map[string][]byte
}

func (m *mockFileSystem) Stat(name string) (os.FileInfo, error) {
	if m.files != nil && m.files[name] {
		return nil, nil
	}
	return nil, os.ErrNotExist
}

func (m *mockFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	if m.written == nil {
		m.written = map[string][]byte{}
	}
	m.written[name] = data
	return nil
}

func (m *mockFileSystem) Getwd() (string, error) {
	return m.wd, m.wdErr
}

func testInitOptions() *InitOptions {
	return &InitOptions{
		Language:  "typescript",
		InputDir:  "schemas",
		Pattern:   "*.idl",
		OutputDir: "gen",
	}
}

func TestInitCommand_Run_ConfigExists(t *testing.T) {
	// Test: an existing elemgen.json is never overwritten
	mockFS := &mockFileSystem{
		wd:    "/project",
		files: map[string]bool{"/project/elemgen.json": true},
	}
	output := &mockOutput{}
	cmd := &InitCommand{filesystem: mockFS, output: output, testOptions: testInitOptions()}

	err := cmd.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Empty(t, mockFS.written)
	assert.Contains(t, output.String(), "❌ /project/elemgen.json already exists")
	assert.Contains(t, output.String(), "💡 edit the existing file or remove it first")
}

func TestInitCommand_Run_FullFlow(t *testing.T) {
	// Test: answers are written as a loadable config
	mockFS := &mockFileSystem{wd: "/project"}
	output := &mockOutput{}
	cmd := &InitCommand{filesystem: mockFS, output: output, testOptions: testInitOptions()}

	err := cmd.Run(context.Background())
	require.NoError(t, err)

	data, ok := mockFS.written["/project/elemgen.json"]
	require.True(t, ok)

	var cfg config.Config
	require.NoError(t, json.Unmarshal(data, &cfg))
	assert.Equal(t, "typescript", cfg.Language)
	assert.Equal(t, "schemas", cfg.InputDir)
	assert.Equal(t, "*.idl", cfg.Pattern)
	assert.Equal(t, "gen", cfg.OutputDir)
	assert.Equal(t, schema.DialectWebIDL, cfg.Dialect)
	assert.Contains(t, output.String(), "✅ Created /project/elemgen.json for typescript output")
}

func TestInitCommand_Run_Errors(t *testing.T) {
	// Test: working directory, validation and write failures
	t.Run("getwd", func(t *testing.T) {
		cmd := &InitCommand{
			filesystem:  &mockFileSystem{wdErr: errors.New("no cwd")},
			output:      &mockOutput{},
			testOptions: testInitOptions(),
		}
		err := cmd.Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get current directory")
	})

	t.Run("invalid language", func(t *testing.T) {
		opts := testInitOptions()
		opts.Language = "cobol"
		mockFS := &mockFileSystem{wd: "/project"}
		cmd := &InitCommand{filesystem: mockFS, output: &mockOutput{}, testOptions: opts}

		err := cmd.Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cobol")
		assert.Empty(t, mockFS.written)
	})

	t.Run("write", func(t *testing.T) {
		cmd := &InitCommand{
			filesystem:  &mockFileSystem{wd: "/project", writeErr: errors.New("read-only")},
			output:      &mockOutput{},
			testOptions: testInitOptions(),
		}
		err := cmd.Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to write /project/elemgen.json")
		assert.Contains(t, err.Error(), "read-only")
	})
}

func TestValidatePattern(t *testing.T) {
	// Test: patterns must be non-empty valid globs
	assert.NoError(t, validatePattern("HTML*Element.idl"))
	assert.NoError(t, validatePattern("*.graphql"))
	assert.Error(t, validatePattern(""))
	assert.Error(t, validatePattern("[unclosed"))
}

func TestInitCommand_createInitForm(t *testing.T) {
	// Test: the form is built around the given options
	cmd := NewInitCommand()
	form := cmd.createInitForm(testInitOptions())
	require.NotNil(t, form)
}

// Integration test for the form - skip in CI but useful for local development
func TestInitCommand_promptInitOptions_Interactive(t *testing.T) {
	// Always skip this test in automated runs to prevent deadlocks
	if os.Getenv("INTERACTIVE_TEST") != "true" {
		t.Skip("Skipping interactive test. Set INTERACTIVE_TEST=true to run")
	}

	// Test: form accepts input via tea.WithInput
	cmd := &InitCommand{filesystem: &mockFileSystem{}, output: &mockOutput{}}

	// Arrow down to typescript, then accept the default directories and pattern
	input := strings.NewReader("\x1b[B\n\n\n\n")

	options, err := cmd.promptInitOptions(
		tea.WithInput(input),
		tea.WithoutRenderer(),
	)
	require.NoError(t, err)
	assert.Equal(t, "typescript", options.Language)
	assert.Equal(t, "idl", options.InputDir)
}
