// Package diagnostic provides the writer's best-effort logging collaborator.
//
// Source-content misses never fail a write; they surface here instead.
// The sink is injected so tests can observe diagnostics deterministically
// instead of capturing process output.
package diagnostic

import (
	"fmt"
	"io"
	"os"
)

// Severity is the level of a diagnostic line.
type Severity int

const (
	SeverityLog Severity = iota
	SeverityWarning
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityLog:
		return "log"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Sink receives diagnostic lines.
type Sink interface {
	Logf(format string, args ...any)
	Warnf(format string, args ...any)
}

// Console writes diagnostics to a stream, one line each.
type Console struct {
	Out io.Writer
}

// NewConsole returns a Console writing to stderr.
func NewConsole() *Console {
	return &Console{Out: os.Stderr}
}

func (c *Console) Logf(format string, args ...any) {
	fmt.Fprintf(c.Out, format+"\n", args...)
}

func (c *Console) Warnf(format string, args ...any) {
	fmt.Fprintf(c.Out, "warning: "+format+"\n", args...)
}

// Entry is a single recorded diagnostic.
type Entry struct {
	Severity Severity
	Message  string
}

// Recorder collects diagnostics in order for inspection.
type Recorder struct {
	Entries []Entry
}

func (r *Recorder) Logf(format string, args ...any) {
	r.Entries = append(r.Entries, Entry{SeverityLog, fmt.Sprintf(format, args...)})
}

func (r *Recorder) Warnf(format string, args ...any) {
	r.Entries = append(r.Entries, Entry{SeverityWarning, fmt.Sprintf(format, args...)})
}

// Warnings returns the recorded warning messages.
func (r *Recorder) Warnings() []string {
	var out []string
	for _, e := range r.Entries {
		if e.Severity == SeverityWarning {
			out = append(out, e.Message)
		}
	}

	return out
}

// Discard ignores everything; used when debug mode is off.
var Discard Sink = discard{}

type discard struct{}

func (discard) Logf(string, ...any)  {}
func (discard) Warnf(string, ...any) {}
