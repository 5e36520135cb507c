package builder

import (
	"strings"
	"time"
)

// CopyField names a task field for TaskBuilder.CopyFrom.
type CopyField string

const (
	FieldTitle       CopyField = "title"
	FieldDescription CopyField = "description"
	FieldAssignee    CopyField = "assignee"
	FieldPriority    CopyField = "priority"
	FieldDue         CopyField = "due_date"
)

// allCopyFields is the default field set for CopyFrom.
var allCopyFields = []CopyField{FieldTitle, FieldDescription, FieldAssignee, FieldPriority, FieldDue}

// TaskBuilder mutates one task draft. Column references are stored as
// given (id or name) and resolved during finalization.
type TaskBuilder struct {
	base
	root  *ProjectBuilder
	draft *draftTask
}

// ID returns the identifier allocated for this task.
func (b *TaskBuilder) ID() string {
	return b.id
}

// Title sets the task title.
func (b *TaskBuilder) Title(value string) *TaskBuilder {
	if !b.root.open() {
		return b
	}
	b.draft.title = &value
	b.nonEmpty(value, "task.title")
	return b
}

// Description sets the task description.
func (b *TaskBuilder) Description(value string) *TaskBuilder {
	if !b.root.open() {
		return b
	}
	b.draft.description = &value
	return b
}

// Assignee sets the task assignee.
func (b *TaskBuilder) Assignee(value string) *TaskBuilder {
	if !b.root.open() {
		return b
	}
	v := strings.TrimSpace(value)
	b.draft.assignee = &v
	return b
}

// Priority sets the task priority spelling. Membership in the fixed
// enumeration is checked immediately; the value is stored either way so
// finalization can report and coerce it.
func (b *TaskBuilder) Priority(value string) *TaskBuilder {
	if !b.root.open() {
		return b
	}
	b.draft.priority = value
	b.checkPriority(value, "task.priority")
	return b
}

// Due sets the task due date, validated against the project's past-due
// policy.
func (b *TaskBuilder) Due(value time.Time) *TaskBuilder {
	if !b.root.open() {
		return b
	}
	d := dateOf(value)
	b.draft.due = &d
	b.checkDue(d, b.root.allowPastDue)
	return b
}

// InColumn places the task in a column, referenced by id or by name. The
// reference is resolved during finalization; an unknown or ambiguous
// reference degrades to the project's first column and records a defect.
func (b *TaskBuilder) InColumn(ref string) *TaskBuilder {
	if !b.root.open() {
		return b
	}
	b.draft.columnRef = ref
	return b
}

// MarkUrgent is a composite preset: High priority with a due date two days
// out.
func (b *TaskBuilder) MarkUrgent() *TaskBuilder {
	return b.Priority("High").Due(today().AddDate(0, 0, 2))
}

// AssignAndDue sets the assignee and due date together.
func (b *TaskBuilder) AssignAndDue(user string, due time.Time) *TaskBuilder {
	return b.Assignee(user).Due(due)
}

// CopyFrom copies the selected fields from another builder's current draft
// values. With no fields given it copies title, description, assignee,
// priority and due date. A field is only copied when the source currently
// has a value for it, so absence never overwrites anything.
func (b *TaskBuilder) CopyFrom(other *TaskBuilder, fields ...CopyField) *TaskBuilder {
	if len(fields) == 0 {
		fields = allCopyFields
	}
	for _, f := range fields {
		switch f {
		case FieldTitle:
			if other.draft.title != nil {
				b.Title(*other.draft.title)
			}
		case FieldDescription:
			if other.draft.description != nil {
				b.Description(*other.draft.description)
			}
		case FieldAssignee:
			if other.draft.assignee != nil {
				b.Assignee(*other.draft.assignee)
			}
		case FieldPriority:
			if other.draft.priority != "" {
				b.Priority(other.draft.priority)
			}
		case FieldDue:
			if other.draft.due != nil {
				b.Due(*other.draft.due)
			}
		}
	}
	return b
}

// Configure applies a callback to the builder and returns it, for keeping a
// fluent chain readable.
func (b *TaskBuilder) Configure(fn func(*TaskBuilder)) *TaskBuilder {
	fn(b)
	return b
}
