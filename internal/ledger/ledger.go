// Package ledger collects structured validation defects across a whole
// builder session.
//
// The ledger is append-only: recording a defect never fails and never
// interrupts the caller. Every builder in a session shares one ledger, so a
// single finalization surfaces every defect discovered anywhere in the
// session instead of aborting on the first one. The shape deliberately
// follows hcl.Diagnostics (append, check, aggregate at the end) without
// importing it, because a defect also has to carry the entity kind and id it
// refers to.
package ledger

import (
	"fmt"
	"strings"
)

// Origin identifies where an entity was declared: a file position for
// entities coming from a board definition file, or a caller-supplied label
// for entities created through the fluent API. Origins are attached at
// builder creation time and passed explicitly; no runtime stack walking.
type Origin struct {
	File  string
	Line  int
	Label string
}

// Labeled returns an Origin carrying only a caller-supplied label.
func Labeled(label string) Origin {
	return Origin{Label: label}
}

// At returns an Origin for a file position.
func At(file string, line int) Origin {
	return Origin{File: file, Line: line}
}

// String renders the origin for defect messages. A label wins over a file
// position; an empty origin renders as "-".
func (o Origin) String() string {
	switch {
	case o.Label != "":
		return o.Label
	case o.File != "":
		return fmt.Sprintf("%s:%d", o.File, o.Line)
	default:
		return "-"
	}
}

// Defect is a single recorded validation failure.
type Defect struct {
	// Message describes the violated constraint.
	Message string
	// Kind is the entity kind the defect refers to, e.g. "Project", "Task".
	Kind string
	// ID is the entity identifier, or empty when no id applies.
	ID string
	// Origin is the call site or file position the entity came from.
	Origin Origin
}

// String renders one defect line: [origin] Kind(id-or-"-"): message.
func (d Defect) String() string {
	id := d.ID
	if id == "" {
		id = "-"
	}
	return fmt.Sprintf("[%s] %s(%s): %s", d.Origin, d.Kind, id, d.Message)
}

// Ledger is the append-only defect collector for one builder session.
// Like the rest of a session it assumes a single writer.
type Ledger struct {
	defects []Defect
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Add appends a defect. It never fails; duplicates are allowed, since the
// ledger is a record of diagnostics rather than a deduplicated set.
func (l *Ledger) Add(origin Origin, kind, id, message string) {
	l.defects = append(l.defects, Defect{
		Message: message,
		Kind:    kind,
		ID:      id,
		Origin:  origin,
	})
}

// Defects returns the recorded defects in insertion order. The returned
// slice is a copy; mutating it does not affect the ledger.
func (l *Ledger) Defects() []Defect {
	out := make([]Defect, len(l.defects))
	copy(out, l.defects)
	return out
}

// HasDefects reports whether anything has been recorded.
func (l *Ledger) HasDefects() bool {
	return len(l.defects) > 0
}

// Err returns nil when the ledger is empty, otherwise an *AggregateError
// listing every recorded defect in order.
func (l *Ledger) Err() error {
	if len(l.defects) == 0 {
		return nil
	}
	return &AggregateError{Defects: l.Defects()}
}

// AggregateError is the single user-visible failure of a builder session:
// every defect recorded anywhere in the session, one per line.
type AggregateError struct {
	Defects []Defect
}

// Error implements the error interface.
func (e *AggregateError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "validation failed with %d defect(s):", len(e.Defects))
	for _, d := range e.Defects {
		b.WriteString("\n")
		b.WriteString(d.String())
	}
	return b.String()
}
