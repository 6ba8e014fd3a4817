// Package diag formats compiler diagnostics with source context, grounded
// on the teacher's internal/errors package: a message plus file/line plus
// (optionally) the offending source line and a caret.
//
// Bishop diagnostics are line-only (spec.md's tokens carry no column), so
// the caret points at the start of the line rather than a specific column.
package diag

import (
	"fmt"
	"strings"
)

// Diagnostic is one reported problem: a file, a line, and a message.
type Diagnostic struct {
	File    string
	Line    int
	Message string
	Source  string // the full source text, for context rendering; may be empty
}

// New creates a Diagnostic.
func New(file string, line int, format string, args ...any) Diagnostic {
	return Diagnostic{File: file, Line: line, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface so a Diagnostic can be returned
// directly from the parser's abort path.
func (d Diagnostic) Error() string {
	return d.String()
}

// String renders "<file>:<line>: <message>", the format spec.md §7
// requires for user-visible output.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: %s", d.File, d.Line, d.Message)
}

// WithContext renders the diagnostic with its source line underneath,
// matching the teacher's CompilerError.Format source-context rendering.
func (d Diagnostic) WithContext() string {
	var sb strings.Builder
	sb.WriteString(d.String())
	sb.WriteByte('\n')
	if line := sourceLine(d.Source, d.Line); line != "" {
		sb.WriteString(fmt.Sprintf("%4d | %s\n", d.Line, line))
		sb.WriteString(strings.Repeat(" ", 7))
		sb.WriteString("^\n")
	}
	return sb.String()
}

func sourceLine(source string, line int) string {
	if source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// List is an ordered collection of diagnostics, as accumulated by the type
// checker (spec.md §4.3: "the checker never aborts on a single error").
type List []Diagnostic

// Add appends a new diagnostic.
func (l *List) Add(file string, line int, format string, args ...any) {
	*l = append(*l, New(file, line, format, args...))
}

// HasErrors reports whether any diagnostic was recorded.
func (l List) HasErrors() bool { return len(l) > 0 }

// Error implements the error interface, so a List can be returned directly
// from a compile entry point the same way a single Diagnostic can.
func (l List) Error() string { return l.String() }

// Lines renders every diagnostic as a "<file>:<line>: <message>" line.
func (l List) Lines() []string {
	out := make([]string, len(l))
	for i, d := range l {
		out[i] = d.String()
	}
	return out
}

func (l List) String() string {
	return strings.Join(l.Lines(), "\n")
}
