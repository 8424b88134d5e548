package commands

import (
	"context"
	"os"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/okra-platform/elemgen/internal/build"
	"github.com/okra-platform/elemgen/internal/config"
	"github.com/okra-platform/elemgen/internal/watch"
)

// WatchDependencies for the watch command
type WatchDependencies struct {
	ConfigLoader   ConfigLoader
	SessionFactory SessionFactory
	SignalNotifier SignalNotifier
	Output         Output
	Logger         zerolog.Logger
}

// SessionFactory creates watch sessions
type SessionFactory interface {
	NewSession(cfg *config.Config, projectRoot string, output Output, logger zerolog.Logger) (Session, error)
}

// Session is a running watch loop
type Session interface {
	Start(ctx context.Context) error
}

type defaultSessionFactory struct{}

func (f *defaultSessionFactory) NewSession(cfg *config.Config, projectRoot string, output Output, logger zerolog.Logger) (Session, error) {
	builder, err := build.NewBuilder(cfg, projectRoot, logger)
	if err != nil {
		return nil, err
	}
	debounce, err := cfg.DebounceDuration()
	if err != nil {
		return nil, err
	}

	builder.OnTaskDone(func(res build.TaskResult) {
		output.Println(taskLine(res, projectRoot))
	})

	session := watch.NewSession(builder, builder.InputDir(), builder.Pattern(), debounce, logger).
		OnRun(func(report *build.Report, err error) {
			switch {
			case err != nil:
				output.Printf("❌ Generation failed: %v\n", err)
			case report != nil:
				output.Printf("📦 Wrote %s (%d entities, %d failed)\n",
					relPath(projectRoot, report.Manifest), len(report.Entries), len(report.Failed()))
			}
			output.Println("👀 Watching for changes...")
		})
	return session, nil
}

// WatchCommand encapsulates the watch logic with injected dependencies
type WatchCommand struct {
	flags *Flags
	deps  WatchDependencies
}

// NewWatchCommand creates a new watch command with default dependencies
func NewWatchCommand(flags *Flags) *WatchCommand {
	return &WatchCommand{
		flags: flags,
		deps: WatchDependencies{
			ConfigLoader:   &defaultConfigLoader{},
			SessionFactory: &defaultSessionFactory{},
			SignalNotifier: &defaultSignalNotifier{},
			Output:         &defaultOutput{},
			Logger:         log.Logger,
		},
	}
}

// WithDependencies allows injecting custom dependencies for testing
func (wc *WatchCommand) WithDependencies(deps WatchDependencies) *WatchCommand {
	wc.deps = deps
	return wc
}

// Execute runs the watch command until interrupted
func (wc *WatchCommand) Execute(ctx context.Context) error {
	if err := wc.execute(ctx); err != nil {
		printError(wc.deps.Output, err)
		return err
	}
	return nil
}

func (wc *WatchCommand) execute(ctx context.Context) error {
	cfg, projectRoot, err := loadProjectConfig(wc.deps.ConfigLoader, wc.flags)
	if err != nil {
		return err
	}

	wc.deps.Output.Printf("🚀 Watching %s for %s changes\n", config.Resolve(projectRoot, cfg.InputDir), cfg.Pattern)
	wc.deps.Output.Printf("🔧 Language: %s\n", cfg.Language)

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	wc.deps.SignalNotifier.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer wc.deps.SignalNotifier.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			wc.deps.Output.Println("\n👋 Stopping watch...")
			cancel()
		case <-ctx.Done():
		}
	}()

	session, err := wc.deps.SessionFactory.NewSession(cfg, projectRoot, wc.deps.Output, wc.deps.Logger)
	if err != nil {
		return err
	}
	if err := session.Start(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return errors.Wrap(err, "watch failed")
	}
	return nil
}
