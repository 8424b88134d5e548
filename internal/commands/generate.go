package commands

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/okra-platform/elemgen/internal/build"
)

// GenerateDependencies for the generate command
type GenerateDependencies struct {
	ConfigLoader ConfigLoader
	Output       Output
	Render       Renderer
	Logger       zerolog.Logger
}

// GenerateCommand runs one full generation pass
type GenerateCommand struct {
	flags *Flags
	deps  GenerateDependencies
}

// NewGenerateCommand creates a new generate command with default dependencies
func NewGenerateCommand(flags *Flags) *GenerateCommand {
	return &GenerateCommand{
		flags: flags,
		deps: GenerateDependencies{
			ConfigLoader: &defaultConfigLoader{},
			Output:       &defaultOutput{},
			Render:       renderMarkdown,
			Logger:       log.Logger,
		},
	}
}

// WithDependencies allows injecting custom dependencies for testing
func (gc *GenerateCommand) WithDependencies(deps GenerateDependencies) *GenerateCommand {
	gc.deps = deps
	return gc
}

// Execute runs the generate command
func (gc *GenerateCommand) Execute(ctx context.Context) error {
	if err := gc.execute(ctx); err != nil {
		printError(gc.deps.Output, err)
		return err
	}
	return nil
}

func (gc *GenerateCommand) execute(ctx context.Context) error {
	cfg, projectRoot, err := loadProjectConfig(gc.deps.ConfigLoader, gc.flags)
	if err != nil {
		return err
	}

	builder, err := build.NewBuilder(cfg, projectRoot, gc.deps.Logger)
	if err != nil {
		return err
	}

	out := gc.deps.Output
	out.Printf("🔧 Generating %s from %s/%s\n", cfg.Language, relPath(projectRoot, builder.InputDir()), cfg.Pattern)
	builder.OnTaskDone(func(res build.TaskResult) {
		out.Println(taskLine(res, projectRoot))
	})

	report, err := builder.Run(ctx)
	if err != nil {
		if report != nil {
			gc.printSummary(report)
		}
		return err
	}

	out.Printf("📦 Wrote %s (%d entities)\n", relPath(projectRoot, report.Manifest), len(report.Entries))
	gc.printSummary(report)

	if failed := report.Failed(); len(failed) > 0 && gc.flags != nil && gc.flags.Strict {
		return errors.WithHint(errors.Newf("%d of %d documents failed to generate", len(failed), len(report.Tasks)),
			"see the log lines above for the failing documents")
	}
	return nil
}

func (gc *GenerateCommand) printSummary(report *build.Report) {
	if gc.deps.Render == nil {
		return
	}
	gc.deps.Output.Println(gc.deps.Render(report.Markdown()))
}
