package builder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vk/boardforge/internal/config"
	"github.com/vk/boardforge/internal/ctxlog"
	"github.com/vk/boardforge/internal/ledger"
)

// dueLayout is the calendar-date form used in board definition files.
const dueLayout = "2006-01-02"

// FromModel replays a format-agnostic board definition through a fresh
// builder session and returns the session, ready for Build. Semantic
// problems in the model (bad priority spellings, unknown columns, missing
// names, malformed dates) are recorded on the session ledger rather than
// returned here, so one Build call reports all of them together.
func FromModel(ctx context.Context, m *config.Model) (*ProjectBuilder, error) {
	logger := ctxlog.FromContext(ctx)

	if m == nil || m.Project == nil {
		return nil, errors.New("board definition contains no project")
	}
	p := m.Project
	logger.Debug("Replaying board definition through builder session.",
		"project", p.Name, "columns", len(p.Columns), "tasks", len(p.Tasks), "defaults_blocks", len(p.Defaults))

	b := New(p.Origin).Name(p.Name)
	if p.Owner != "" {
		b.Owner(p.Owner)
	}
	b.AllowPastDue(p.AllowPastDue)

	for _, c := range p.Columns {
		cb := b.ColumnAt(c.Origin, c.Name)
		if c.Backlog {
			cb.AsBacklog()
		}
	}

	for _, t := range p.Tasks {
		applyTask(b.TaskAt(t.Origin, t.Title), t)
	}

	for _, d := range p.Defaults {
		scope := b.Scope()
		scope.origin = d.Origin
		if d.Assignee != "" {
			scope.Assignee(d.Assignee)
		}
		if d.Priority != "" {
			scope.Priority(d.Priority)
		}
		if d.Due != "" {
			if due, ok := parseDue(b, d.Origin, kindScope, "", d.Due); ok {
				scope.Due(due)
			}
		}
		for _, t := range d.Tasks {
			applyTask(scope.TaskAt(t.Origin, t.Title), t)
		}
	}

	logger.Debug("Board definition replay complete.", "defects_so_far", len(b.ledger.Defects()))
	return b, nil
}

// applyTask transfers one task definition onto a task builder.
func applyTask(tb *TaskBuilder, t *config.Task) {
	if t.Description != "" {
		tb.Description(t.Description)
	}
	if t.Assignee != "" {
		tb.Assignee(t.Assignee)
	}
	if t.Priority != "" {
		tb.Priority(t.Priority)
	}
	if t.Due != "" {
		if due, ok := parseDue(tb.root, t.Origin, kindTask, tb.id, t.Due); ok {
			tb.Due(due)
		}
	}
	if t.Column != "" {
		tb.InColumn(t.Column)
	}
	if t.Urgent {
		tb.MarkUrgent()
	}
}

// parseDue parses a YYYY-MM-DD date from a definition file. A malformed
// value is a defect like any other: it is recorded and the field is left
// unset so the replay keeps going.
func parseDue(b *ProjectBuilder, origin ledger.Origin, kind, id, value string) (time.Time, bool) {
	due, err := time.ParseInLocation(dueLayout, value, time.Local)
	if err != nil {
		b.ledger.Add(origin, kind, id, fmt.Sprintf("invalid due date '%s' (want YYYY-MM-DD)", value))
		return time.Time{}, false
	}
	return due, true
}
