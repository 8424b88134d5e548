package build

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/okra-platform/elemgen/internal/config"
)

// Difference describes one file that does not match a fresh generation
type Difference struct {
	Path   string
	Reason string
}

const (
	ReasonMissing = "missing"
	ReasonStale   = "stale"
	ReasonExtra   = "not generated"
)

// CheckResult is the outcome of comparing the output directory to a fresh generation
type CheckResult struct {
	Report      *Report
	Differences []Difference
}

// UpToDate reports whether the output directory matches a fresh generation
func (c *CheckResult) UpToDate() bool {
	return len(c.Differences) == 0
}

// Check regenerates into a scratch directory and compares the result with the output directory.
// The output directory is never modified.
func (b *Builder) Check(ctx context.Context) (*CheckResult, error) {
	scratch, err := os.MkdirTemp("", "elemgen-check-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create scratch directory")
	}
	defer os.RemoveAll(scratch)

	fresh := *b
	fresh.outputDir = scratch
	fresh.onTaskDone = nil

	report, err := fresh.Run(ctx)
	if err != nil {
		return nil, err
	}

	diffs, err := CompareDirectories(scratch, b.outputDir, b.gen.FileExtension(), b.gen.ManifestFile(),
		b.manifestOrder == config.OrderCompletion)
	if err != nil {
		return nil, err
	}
	return &CheckResult{Report: report, Differences: diffs}, nil
}

// CompareDirectories compares generated files in want with those in got. Only files with
// the struct extension or named like the manifest are considered. When unorderedManifest
// is set, manifest lines are compared as a set.
func CompareDirectories(want, got, ext, manifest string, unorderedManifest bool) ([]Difference, error) {
	wantFiles, err := generatedFiles(want, ext, manifest)
	if err != nil {
		return nil, err
	}
	gotFiles, err := generatedFiles(got, ext, manifest)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	var diffs []Difference
	for name := range wantFiles {
		path := filepath.Join(got, name)
		if !gotFiles[name] {
			diffs = append(diffs, Difference{Path: path, Reason: ReasonMissing})
			continue
		}
		wantData, err := os.ReadFile(filepath.Join(want, name))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", name)
		}
		gotData, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", path)
		}
		same := bytes.Equal(wantData, gotData)
		if !same && name == manifest && unorderedManifest {
			same = sameLines(wantData, gotData)
		}
		if !same {
			diffs = append(diffs, Difference{Path: path, Reason: ReasonStale})
		}
	}
	for name := range gotFiles {
		if !wantFiles[name] {
			diffs = append(diffs, Difference{Path: filepath.Join(got, name), Reason: ReasonExtra})
		}
	}

	sort.Slice(diffs, func(i, j int) bool { return diffs[i].Path < diffs[j].Path })
	return diffs, nil
}

func generatedFiles(dir, ext, manifest string) (map[string]bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", dir)
	}
	files := make(map[string]bool)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if e.Name() == manifest || filepath.Ext(e.Name()) == ext {
			files[e.Name()] = true
		}
	}
	return files, nil
}

func sameLines(a, b []byte) bool {
	la := strings.Split(string(a), "\n")
	lb := strings.Split(string(b), "\n")
	sort.Strings(la)
	sort.Strings(lb)
	return strings.Join(la, "\n") == strings.Join(lb, "\n")
}
