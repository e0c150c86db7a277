// Package diag implements the compiler's diagnostic model: the
// PATH:LINE:COLUMN: (error|warning|note): MESSAGE wire format, the
// per-file sticky error bit, and the three-way warning policy dial.
package diag

import (
	"fmt"
	"strings"

	"github.com/hassan/tcompiler/internal/lexer"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	Note Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "note"
	}
}

// Diagnostic is one reported message, optionally carrying attached notes.
type Diagnostic struct {
	Pos      lexer.Position
	Severity Severity
	Message  string
	Notes    []Diagnostic
}

func (d Diagnostic) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s: %s", d.Pos, d.Severity, d.Message)
	for _, n := range d.Notes {
		sb.WriteByte('\n')
		sb.WriteString(n.String())
	}
	return sb.String()
}

// Class names a warning category the Policy can dial independently, e.g.
// "unused-variable" or "implicit-narrowing-conversion".
type Class string

// Action is what a Policy does with diagnostics of a given Class.
type Action int

const (
	ActionWarn Action = iota
	ActionIgnore
	ActionError
)

// Policy maps warning classes to actions. An unlisted class defaults to
// ActionWarn, the reference compiler's default for every warning.
type Policy struct {
	Classes map[Class]Action
}

func (p Policy) actionFor(c Class) Action {
	if p.Classes == nil {
		return ActionWarn
	}
	if a, ok := p.Classes[c]; ok {
		return a
	}
	return ActionWarn
}

// Bag accumulates diagnostics for one compilation and tracks, per file,
// whether an error (as opposed to a warning or note) was ever recorded —
// mirroring FileListEntry.errored in the reference implementation.
type Bag struct {
	Policy      Policy
	diagnostics []Diagnostic
	erroredFile map[string]bool
}

// NewBag creates an empty diagnostic bag under the given policy.
func NewBag(policy Policy) *Bag {
	return &Bag{Policy: policy, erroredFile: map[string]bool{}}
}

// Errorf records an unconditional error.
func (b *Bag) Errorf(pos lexer.Position, format string, args ...any) {
	b.record(Diagnostic{Pos: pos, Severity: Error, Message: fmt.Sprintf(format, args...)})
}

// Warnf records a diagnostic of warning class c, resolved against the
// bag's Policy: it may be ignored, emitted as a warning, or escalated to
// an error depending on how the policy dials that class.
func (b *Bag) Warnf(pos lexer.Position, c Class, format string, args ...any) {
	switch b.Policy.actionFor(c) {
	case ActionIgnore:
		return
	case ActionError:
		b.record(Diagnostic{Pos: pos, Severity: Error, Message: fmt.Sprintf(format, args...)})
	default:
		b.record(Diagnostic{Pos: pos, Severity: Warning, Message: fmt.Sprintf(format, args...)})
	}
}

// Notef records an informational note, typically attached after a prior
// Errorf/Warnf call to point at a related location.
func (b *Bag) Notef(pos lexer.Position, format string, args ...any) {
	b.record(Diagnostic{Pos: pos, Severity: Note, Message: fmt.Sprintf(format, args...)})
}

func (b *Bag) record(d Diagnostic) {
	b.diagnostics = append(b.diagnostics, d)
	if d.Severity == Error {
		b.erroredFile[d.Pos.Filename] = true
	}
}

// Diagnostics returns every diagnostic recorded so far, in recording order.
func (b *Bag) Diagnostics() []Diagnostic { return b.diagnostics }

// HasErrors reports whether any error-severity diagnostic was ever
// recorded, across all files.
func (b *Bag) HasErrors() bool {
	return len(b.erroredFile) > 0
}

// FileErrored reports whether the named file's sticky errored bit is set.
func (b *Bag) FileErrored(filename string) bool {
	return b.erroredFile[filename]
}

// String renders every diagnostic, one per line (plus attached notes),
// in the PATH:LINE:COLUMN: (error|warning|note): MESSAGE format.
func (b *Bag) String() string {
	var sb strings.Builder
	for i, d := range b.diagnostics {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(d.String())
	}
	return sb.String()
}
