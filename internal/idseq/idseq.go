// Package idseq issues unique, monotonically increasing string identifiers
// per entity kind, e.g. "project_1", "column_2", "task_3".
//
// A Sequencer is session-scoped state: it is created together with a builder
// session, owned by it, and discarded with it. It is intentionally not a
// package-level global, so two independent sessions number their entities
// independently and tests never bleed counters into each other.
package idseq

import "fmt"

// Entity kinds known to the sequencer. The sequencer itself accepts any
// kind string; these constants exist so callers agree on spelling.
const (
	KindProject = "project"
	KindColumn  = "column"
	KindTask    = "task"
)

// Sequencer maintains one counter per kind, each starting at 1.
//
// It assumes a single writer. A builder session is owned by exactly one
// goroutine, so no internal locking is performed.
type Sequencer struct {
	counters map[string]int
}

// New creates an empty Sequencer.
func New() *Sequencer {
	return &Sequencer{counters: make(map[string]int)}
}

// Next returns the next identifier for the given kind. Identifiers are
// never reused or reassigned within a session.
func (s *Sequencer) Next(kind string) string {
	s.counters[kind]++
	return fmt.Sprintf("%s_%d", kind, s.counters[kind])
}
