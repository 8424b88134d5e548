// Package build runs a generation pass: it discovers schema documents, generates one
// struct file per document concurrently and writes the manifest once every task is done.
package build

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/okra-platform/elemgen/internal/codegen"
	"github.com/okra-platform/elemgen/internal/config"
	"github.com/okra-platform/elemgen/internal/schema"
)

// Builder generates struct files and the manifest for one configuration
type Builder struct {
	inputDir      string
	pattern       string
	outputDir     string
	manifestOrder string
	concurrency   int

	parser schema.Parser
	gen    codegen.Generator
	fs     FileSystem
	logger zerolog.Logger

	onTaskDone func(TaskResult)
}

// NewBuilder creates a builder for cfg with paths resolved against projectRoot
func NewBuilder(cfg *config.Config, projectRoot string, logger zerolog.Logger) (*Builder, error) {
	parser, err := schema.NewParser(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	gen, err := codegen.DefaultRegistry.Get(cfg.Language, cfg.Types)
	if err != nil {
		return nil, err
	}

	return &Builder{
		inputDir:      config.Resolve(projectRoot, cfg.InputDir),
		pattern:       cfg.Pattern,
		outputDir:     config.Resolve(projectRoot, cfg.OutputDir),
		manifestOrder: cfg.ManifestOrder,
		concurrency:   cfg.Concurrency,
		parser:        parser,
		gen:           gen,
		fs:            OSFileSystem{},
		logger:        logger.With().Str("component", "builder").Logger(),
	}, nil
}

// WithFileSystem replaces the file system used for reads and writes
func (b *Builder) WithFileSystem(fs FileSystem) *Builder {
	b.fs = fs
	return b
}

// WithParser replaces the schema parser
func (b *Builder) WithParser(p schema.Parser) *Builder {
	b.parser = p
	return b
}

// WithOutputDir redirects generated files to dir
func (b *Builder) WithOutputDir(dir string) *Builder {
	b.outputDir = dir
	return b
}

// OnTaskDone registers a callback run once per task as it reaches a terminal state.
// Calls are serialized.
func (b *Builder) OnTaskDone(fn func(TaskResult)) *Builder {
	b.onTaskDone = fn
	return b
}

// InputDir returns the resolved input directory
func (b *Builder) InputDir() string { return b.inputDir }

// OutputDir returns the resolved output directory
func (b *Builder) OutputDir() string { return b.outputDir }

// Pattern returns the file name pattern for schema documents
func (b *Builder) Pattern() string { return b.pattern }

// Generator returns the target language generator
func (b *Builder) Generator() codegen.Generator { return b.gen }

// Run performs one full generation pass.
// Task failures are recorded in the report and never abort sibling tasks. A non-nil error
// means discovery failed, the context was cancelled before the manifest, or the manifest
// could not be written.
func (b *Builder) Run(ctx context.Context) (*Report, error) {
	start := time.Now()

	files, err := b.discover()
	if err != nil {
		return nil, err
	}
	b.logger.Debug().Str("dir", b.inputDir).Int("files", len(files)).Msg("discovered schema documents")

	report := &Report{
		Language:  b.gen.Language(),
		InputDir:  b.inputDir,
		OutputDir: b.outputDir,
		Tasks:     make([]TaskResult, len(files)),
	}

	var (
		mu        sync.Mutex
		completed []string
		g         errgroup.Group
	)
	if b.concurrency > 0 {
		g.SetLimit(b.concurrency)
	}

	for i, file := range files {
		i, file := i, file
		report.Tasks[i] = TaskResult{File: file, State: StatePending}
		g.Go(func() error {
			res := b.runTask(ctx, file)
			report.Tasks[i] = res

			mu.Lock()
			defer mu.Unlock()
			if res.State == StateSucceeded {
				completed = append(completed, res.ID)
			}
			if b.onTaskDone != nil {
				b.onTaskDone(res)
			}
			// Failures are carried in the result so the join never short-circuits
			return nil
		})
	}
	_ = g.Wait()
	report.Duration = time.Since(start)

	if err := ctx.Err(); err != nil {
		b.logger.Warn().Err(err).Msg("run cancelled, manifest not written")
		return report, err
	}

	ids := b.manifestEntries(completed)
	manifestPath := filepath.Join(b.outputDir, b.gen.ManifestFile())
	if err := b.fs.WriteFile(manifestPath, b.gen.Manifest(ids)); err != nil {
		b.logger.Error().Str("path", manifestPath).Err(err).Msg("manifest write failed")
		return report, newManifestWriteError(manifestPath, err)
	}
	report.Manifest = manifestPath
	report.Entries = ids
	report.Duration = time.Since(start)

	b.logger.Debug().Str("path", manifestPath).Int("entries", len(ids)).Msg("wrote manifest")
	return report, nil
}

// discover lists input files whose base name matches the pattern, in name order
func (b *Builder) discover() ([]string, error) {
	entries, err := b.fs.ReadDir(b.inputDir)
	if err != nil {
		return nil, newDiscoveryError(b.inputDir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		matched, err := filepath.Match(b.pattern, entry.Name())
		if err != nil {
			return nil, newDiscoveryError(b.inputDir, err)
		}
		if matched {
			files = append(files, filepath.Join(b.inputDir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// manifestEntries orders the successful identifiers and drops repeats, keeping the first
func (b *Builder) manifestEntries(completed []string) []string {
	ids := make([]string, 0, len(completed))
	seen := make(map[string]bool, len(completed))
	for _, id := range completed {
		if seen[id] {
			b.logger.Warn().Str("entity", id).Msg("entity generated by more than one document")
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if b.manifestOrder != config.OrderCompletion {
		sort.Strings(ids)
	}
	return ids
}
