package builder

import (
	"fmt"
	"strings"
	"time"

	"github.com/vk/boardforge/internal/board"
	"github.com/vk/boardforge/internal/ledger"
)

// Scope supplies default field values (assignee, priority, due date) to
// every task created through it. It is a pure configuration facade over the
// owning project builder: it has no ledger of its own and routes every
// state change through the session.
type Scope struct {
	root   *ProjectBuilder
	origin ledger.Origin

	assignee *string
	priority *string
	due      *time.Time
}

// Assignee sets the default assignee.
func (s *Scope) Assignee(value string) *Scope {
	v := strings.TrimSpace(value)
	s.assignee = &v
	return s
}

// Priority sets the default priority. An invalid spelling is recorded
// against the session ledger right away; it is also re-checked on every
// task it gets applied to.
func (s *Scope) Priority(value string) *Scope {
	s.priority = &value
	if _, err := board.ParsePriority(value); err != nil {
		s.root.ledger.Add(s.origin, kindScope, "", fmt.Sprintf(
			"default priority must be one of %s (got '%s')",
			strings.Join(board.PriorityNames(), ", "), value))
	}
	return s
}

// Due sets the default due date, validated against the project's past-due
// policy.
func (s *Scope) Due(value time.Time) *Scope {
	d := dateOf(value)
	s.due = &d
	if !s.root.allowPastDue && d.Before(today()) {
		s.root.ledger.Add(s.origin, kindScope, "", "default due_date cannot be in the past")
	}
	return s
}

// Task creates a task through the owning project builder, applies each set
// default, and only then runs the caller's configure callbacks — explicit
// configuration always takes precedence over scope defaults.
func (s *Scope) Task(title string, configure ...func(*TaskBuilder)) *TaskBuilder {
	return s.TaskAt(s.origin, title, configure...)
}

// TaskAt is Task with an explicit origin.
func (s *Scope) TaskAt(origin ledger.Origin, title string, configure ...func(*TaskBuilder)) *TaskBuilder {
	tb := s.root.TaskAt(origin, title)
	if s.assignee != nil {
		tb.Assignee(*s.assignee)
	}
	if s.priority != nil {
		tb.Priority(*s.priority)
	}
	if s.due != nil {
		tb.Due(*s.due)
	}
	for _, fn := range configure {
		fn(tb)
	}
	return tb
}
