package commands

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/okra-platform/elemgen/internal/build"
)

// CheckDependencies for the check command
type CheckDependencies struct {
	ConfigLoader ConfigLoader
	Output       Output
	Logger       zerolog.Logger
}

// CheckCommand verifies the output directory matches a fresh generation
type CheckCommand struct {
	flags *Flags
	deps  CheckDependencies
}

// NewCheckCommand creates a new check command with default dependencies
func NewCheckCommand(flags *Flags) *CheckCommand {
	return &CheckCommand{
		flags: flags,
		deps: CheckDependencies{
			ConfigLoader: &defaultConfigLoader{},
			Output:       &defaultOutput{},
			Logger:       log.Logger,
		},
	}
}

// WithDependencies allows injecting custom dependencies for testing
func (cc *CheckCommand) WithDependencies(deps CheckDependencies) *CheckCommand {
	cc.deps = deps
	return cc
}

// Execute runs the check command. Stale output is an error.
func (cc *CheckCommand) Execute(ctx context.Context) error {
	if err := cc.execute(ctx); err != nil {
		printError(cc.deps.Output, err)
		return err
	}
	return nil
}

func (cc *CheckCommand) execute(ctx context.Context) error {
	cfg, projectRoot, err := loadProjectConfig(cc.deps.ConfigLoader, cc.flags)
	if err != nil {
		return err
	}

	builder, err := build.NewBuilder(cfg, projectRoot, cc.deps.Logger)
	if err != nil {
		return err
	}

	result, err := builder.Check(ctx)
	if err != nil {
		return err
	}

	for _, res := range result.Report.Failed() {
		cc.deps.Output.Println(taskLine(res, projectRoot))
	}

	if result.UpToDate() {
		cc.deps.Output.Printf("✅ %s is up to date (%d entities)\n",
			relPath(projectRoot, builder.OutputDir()), len(result.Report.Entries))
		return nil
	}

	for _, diff := range result.Differences {
		cc.deps.Output.Printf("❌ %s: %s\n", relPath(projectRoot, diff.Path), diff.Reason)
	}
	return errors.WithHint(errors.Newf("%d generated files are out of date", len(result.Differences)),
		"run `elemgen generate` to regenerate them")
}
