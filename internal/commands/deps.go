package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/cockroachdb/errors"
	"github.com/mattn/go-isatty"

	"github.com/okra-platform/elemgen/internal/build"
	"github.com/okra-platform/elemgen/internal/config"
)

// ConfigLoader finds and reads the project configuration
type ConfigLoader interface {
	LoadConfig() (*config.Config, string, error)
	LoadConfigFromPath(path string) (*config.Config, error)
}

// Output prints operator-facing progress lines
type Output interface {
	Printf(format string, args ...any)
	Println(args ...any)
}

// SignalNotifier abstracts os/signal for tests
type SignalNotifier interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Stop(c chan<- os.Signal)
}

// Renderer turns a markdown document into terminal output
type Renderer func(markdown string) string

type defaultConfigLoader struct{}

func (l *defaultConfigLoader) LoadConfig() (*config.Config, string, error) {
	return config.LoadConfig()
}

func (l *defaultConfigLoader) LoadConfigFromPath(path string) (*config.Config, error) {
	return config.LoadConfigFromPath(path)
}

type defaultOutput struct {
	w io.Writer
}

func (o *defaultOutput) Printf(format string, args ...any) {
	fmt.Fprintf(o.writer(), format, args...)
}

func (o *defaultOutput) Println(args ...any) {
	fmt.Fprintln(o.writer(), args...)
}

func (o *defaultOutput) writer() io.Writer {
	if o.w == nil {
		return os.Stdout
	}
	return o.w
}

type defaultSignalNotifier struct{}

func (n *defaultSignalNotifier) Notify(c chan<- os.Signal, sig ...os.Signal) {
	signal.Notify(c, sig...)
}

func (n *defaultSignalNotifier) Stop(c chan<- os.Signal) {
	signal.Stop(c)
}

// renderMarkdown renders with glamour when stdout is a terminal and returns the
// markdown unchanged otherwise
func renderMarkdown(markdown string) string {
	if isTTY(os.Stdout) {
		r, err := glamour.NewTermRenderer(
			glamour.WithEnvironmentConfig(),
			glamour.WithWordWrap(100),
		)
		if err == nil {
			if s, err := r.Render(markdown); err == nil {
				return s
			}
		}
	}
	return markdown
}

func isTTY(v any) bool {
	if f, ok := v.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// loadProjectConfig loads the config file (explicit path or discovered), applies flag
// overrides and validates the result
func loadProjectConfig(loader ConfigLoader, flags *Flags) (*config.Config, string, error) {
	if flags == nil {
		flags = &Flags{}
	}

	var (
		cfg  *config.Config
		root string
		err  error
	)
	if flags.Config != "" {
		cfg, err = loader.LoadConfigFromPath(flags.Config)
		if err != nil {
			return nil, "", errors.Wrap(err, "failed to load project config")
		}
		root, err = filepath.Abs(filepath.Dir(flags.Config))
		if err != nil {
			return nil, "", errors.Wrap(err, "failed to resolve project root")
		}
	} else {
		cfg, root, err = loader.LoadConfig()
		if err != nil {
			return nil, "", errors.Wrap(err, "failed to load project config")
		}
	}

	if flags.Input != "" {
		cfg.InputDir = flags.Input
	}
	if flags.Pattern != "" {
		cfg.Pattern = flags.Pattern
	}
	if flags.Output != "" {
		cfg.OutputDir = flags.Output
	}
	if flags.Language != "" {
		cfg.Language = flags.Language
	}
	if flags.Dialect != "" {
		cfg.Dialect = flags.Dialect
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", errors.Wrap(err, "invalid configuration")
	}
	return cfg, root, nil
}

// taskLine formats one progress line for a finished task
func taskLine(res build.TaskResult, root string) string {
	name := filepath.Base(res.File)
	if res.State == build.StateSucceeded {
		return fmt.Sprintf("✅ %s → %s", name, relPath(root, res.OutputPath))
	}
	return fmt.Sprintf("❌ %s: %s: %v", name, res.Kind, errors.UnwrapOnce(res.Err))
}

// printError reports a command failure with any hints attached to it
func printError(out Output, err error) {
	out.Printf("❌ %v\n", err)
	for _, hint := range errors.GetAllHints(err) {
		out.Printf("   💡 %s\n", hint)
	}
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
