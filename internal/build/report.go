package build

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Report summarizes one generation pass
type Report struct {
	Language  string
	InputDir  string
	OutputDir string
	// Tasks are in discovery order
	Tasks []TaskResult
	// Manifest is the manifest path, empty when it was not written
	Manifest string
	Entries  []string
	Duration time.Duration
}

// Succeeded returns the tasks that wrote a struct file
func (r *Report) Succeeded() []TaskResult {
	return r.filter(StateSucceeded)
}

// Failed returns the tasks that did not write a struct file
func (r *Report) Failed() []TaskResult {
	return r.filter(StateFailed)
}

func (r *Report) filter(state TaskState) []TaskResult {
	var out []TaskResult
	for _, t := range r.Tasks {
		if t.State == state {
			out = append(out, t)
		}
	}
	return out
}

// Markdown renders the report as a markdown table
func (r *Report) Markdown() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "## elemgen: %d generated, %d failed\n\n", len(r.Succeeded()), len(r.Failed()))
	sb.WriteString("| File | Entity | State | Detail |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, t := range r.Tasks {
		detail := ""
		switch t.State {
		case StateSucceeded:
			detail = relTo(r.OutputDir, t.OutputPath)
			if len(t.Passthrough) > 0 {
				detail += fmt.Sprintf(" (unmapped: %s)", strings.Join(t.Passthrough, ", "))
			}
		case StateFailed:
			detail = string(t.Kind)
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
			escapeCell(filepath.Base(t.File)), escapeCell(t.Entity), t.State, escapeCell(detail))
	}

	sb.WriteString("\n")
	if r.Manifest != "" {
		fmt.Fprintf(&sb, "Manifest `%s` lists %d entities. ", filepath.Base(r.Manifest), len(r.Entries))
	} else {
		sb.WriteString("Manifest not written. ")
	}
	fmt.Fprintf(&sb, "Took %s.\n", r.Duration.Round(time.Millisecond))
	return sb.String()
}

func relTo(dir, path string) string {
	if rel, err := filepath.Rel(dir, path); err == nil {
		return rel
	}
	return path
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
