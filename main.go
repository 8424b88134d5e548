package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/okra-platform/elemgen/internal/commands"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	ctrl := &commands.Controller{
		Flags: &commands.Flags{},
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := &cli.Command{
		Name:    "elemgen",
		Usage:   `Generate Rust, TypeScript or protobuf structs from one-entity-per-file WebIDL and GraphQL schemas.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (trace, debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("ELEMGEN_LOG_LEVEL"),
				Value:   "panic",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to elemgen.json or elemgen.yaml (default: searched upwards from the working directory)",
			},
			&cli.StringFlag{
				Name:  "input",
				Usage: "directory holding schema documents",
			},
			&cli.StringFlag{
				Name:  "pattern",
				Usage: "glob selecting schema documents inside the input directory",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "directory receiving generated files and the manifest",
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: "target language (rust, typescript, protobuf)",
			},
			&cli.StringFlag{
				Name:  "dialect",
				Usage: "schema dialect (webidl, graphql)",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "exit non-zero when any document fails to generate",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			log.Logger = log.Level(level)

			ctrl.Flags.LogLevel = c.String("log-level")
			ctrl.Flags.Config = c.String("config")
			ctrl.Flags.Input = c.String("input")
			ctrl.Flags.Pattern = c.String("pattern")
			ctrl.Flags.Output = c.String("output")
			ctrl.Flags.Language = c.String("lang")
			ctrl.Flags.Dialect = c.String("dialect")
			ctrl.Flags.Strict = c.Bool("strict")

			return ctx, nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return ctrl.Generate(ctx)
		},
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Generate structs and the manifest once",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Generate(ctx)
				},
			},
			{
				Name:  "watch",
				Usage: "Regenerate whenever schema documents change",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Watch(ctx)
				},
			},
			{
				Name:  "check",
				Usage: "Verify generated files are up to date without writing them",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Check(ctx)
				},
			},
			{
				Name:  "init",
				Usage: "Create an elemgen.json in the current directory",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Init(ctx)
				},
			},
		},
	}

	ctx := context.Background()

	// Commands print their own failures, so this line only adds detail at verbose levels
	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run elemgen")
	}
}
