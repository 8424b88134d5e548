package build

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// TaskState is a step of a per-file generation task. States only move forward.
type TaskState string

const (
	StatePending    TaskState = "Pending"
	StateReading    TaskState = "Reading"
	StateParsing    TaskState = "Parsing"
	StateProjecting TaskState = "Projecting"
	StateWriting    TaskState = "Writing"
	StateSucceeded  TaskState = "Succeeded"
	StateFailed     TaskState = "Failed"
)

// Canceled marks a task stopped by context cancellation before it wrote anything
const Canceled ErrorKind = "Canceled"

// TaskResult records the outcome of one file's generation task
type TaskResult struct {
	File   string
	Entity string
	// ID is the lower-cased entity name used as file stem and manifest entry
	ID         string
	OutputPath string
	State      TaskState
	Kind       ErrorKind
	Err        error
	// Passthrough lists declared types the type table did not map
	Passthrough []string
	Duration    time.Duration
}

// Terminal reports whether the task has finished
func (r TaskResult) Terminal() bool {
	return r.State == StateSucceeded || r.State == StateFailed
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// runTask reads, parses, projects and writes one schema document
func (b *Builder) runTask(ctx context.Context, path string) (res TaskResult) {
	res = TaskResult{File: path, State: StatePending}
	start := time.Now()
	defer func() {
		res.Duration = time.Since(start)
	}()

	log := b.logger.With().Str("file", filepath.Base(path)).Logger()

	if err := ctx.Err(); err != nil {
		return b.fail(log, res, Canceled, err)
	}

	b.transition(log, &res, StateReading)
	content, err := b.fs.ReadFile(path)
	if err != nil {
		return b.fail(log, res, ReadError, err)
	}
	log.Debug().Int("size", len(content)).Msg("read schema document")

	b.transition(log, &res, StateParsing)
	iface, err := b.parser.Parse(string(content))
	if err != nil {
		return b.fail(log, res, ParseError, err)
	}
	if !identPattern.MatchString(iface.Name) {
		return b.fail(log, res, ParseError, errors.Wrapf(ErrInvalidIdentifier, "%q", iface.Name))
	}
	res.Entity = iface.Name
	res.ID = strings.ToLower(iface.Name)

	b.transition(log, &res, StateProjecting)
	types := b.gen.Types()
	for _, attr := range iface.Attributes() {
		if _, ok := types.Lookup(attr.Type); !ok {
			res.Passthrough = append(res.Passthrough, attr.Type)
			log.Debug().Str("member", attr.Name).Str("type", attr.Type).Msg("type passed through unmapped")
		}
	}
	code, err := b.gen.Generate(iface)
	if err != nil {
		// Generators only fail on models they cannot represent
		return b.fail(log, res, ParseError, err)
	}

	if err := ctx.Err(); err != nil {
		return b.fail(log, res, Canceled, err)
	}

	b.transition(log, &res, StateWriting)
	res.OutputPath = filepath.Join(b.outputDir, res.ID+b.gen.FileExtension())
	if err := b.fs.WriteFile(res.OutputPath, code); err != nil {
		return b.fail(log, res, WriteError, err)
	}

	res.State = StateSucceeded
	log.Debug().Str("entity", res.Entity).Str("output", res.OutputPath).Msg("generated")
	return res
}

func (b *Builder) transition(log zerolog.Logger, res *TaskResult, next TaskState) {
	log.Trace().Str("from", string(res.State)).Str("to", string(next)).Msg("task state")
	res.State = next
}

func (b *Builder) fail(log zerolog.Logger, res TaskResult, kind ErrorKind, err error) TaskResult {
	res.Err = &TaskError{Kind: kind, File: res.File, Err: err}
	res.Kind = kind
	res.State = StateFailed
	if kind == Canceled {
		log.Debug().Msg("task canceled")
	} else {
		log.Error().Str("kind", string(kind)).Err(err).Msg("generation task failed")
	}
	return res
}
