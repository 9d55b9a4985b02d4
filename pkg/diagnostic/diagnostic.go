// Package diagnostic defines AXO's error taxonomy and the source-excerpt
// formatting used to report it on the command line. Grounded on
// ThomasRohde-Agent0's pkg/diagnostics package and on the caret-pointer
// rendering in original_source/src/error_handler.cpp.
package diagnostic

import (
	"fmt"
	"strings"

	"axo/pkg/token"
)

// Severity distinguishes fatal diagnostics (abort the running program) from
// recoverable ones. New and NewNoPos always produce SeverityFatal.
type Severity int

const (
	SeverityFatal Severity = iota
	SeverityRecoverable
)

// Kind names one of AXO's error categories (spec.md §7).
type Kind string

const (
	LexError    Kind = "LexError"
	ParseError  Kind = "ParseError"
	TypeError   Kind = "TypeError"
	NameError   Kind = "NameError"
	IndexError  Kind = "IndexError"
	KindErrKind Kind = "KindError"
	IOError     Kind = "IOError"
)

// Diagnostic is AXO's uniform error value: every interpreter-raised error
// (as opposed to a user `throw`) is wrapped in one of these so the CLI can
// render it consistently.
type Diagnostic struct {
	Kind     Kind
	Message  string
	Pos      token.Position
	HasPos   bool
	Severity Severity
}

func (d *Diagnostic) Error() string {
	if d.HasPos {
		return fmt.Sprintf("%s: %s (%s)", d.Kind, d.Message, d.Pos)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// Fatal reports whether this diagnostic terminates the running program. A
// try/catch never handles a Diagnostic (catch clauses bind only user-thrown
// values), and control-flow signals never reach this type.
func (d *Diagnostic) Fatal() bool { return d.Severity == SeverityFatal }

func New(kind Kind, pos token.Position, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
		HasPos:   true,
		Severity: SeverityFatal,
	}
}

func NewNoPos(kind Kind, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...), Severity: SeverityFatal}
}

// SourceExcerpt renders the offending line of src with a caret under the
// column named by pos, the same way original_source/src/error_handler.cpp
// prints parse errors to stderr.
func SourceExcerpt(src string, pos token.Position) string {
	lines := strings.Split(src, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return ""
	}
	line := lines[pos.Line-1]
	col := pos.Column
	if col < 1 {
		col = 1
	}
	caret := strings.Repeat(" ", col-1) + "^"
	return line + "\n" + caret
}

// Format renders a diagnostic for CLI display, including the source
// excerpt and caret when src is non-empty and the diagnostic carries a
// position.
func Format(err error, src string) string {
	d, ok := err.(*Diagnostic)
	if !ok {
		return err.Error()
	}
	if !d.HasPos || src == "" {
		return d.Error()
	}
	return fmt.Sprintf("%s\n%s", d.Error(), SourceExcerpt(src, d.Pos))
}
