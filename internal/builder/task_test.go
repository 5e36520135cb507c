package builder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/boardforge/internal/board"
	"github.com/vk/boardforge/internal/ledger"
)

func newTestProject(t *testing.T) *ProjectBuilder {
	t.Helper()
	b := New(ledger.Labeled("test")).Name("Board")
	b.Column("Backlog")
	b.Column("In Progress")
	return b
}

func TestCopyFromCopiesAllFieldsByDefault(t *testing.T) {
	b := newTestProject(t)
	due := time.Now().AddDate(0, 0, 5)

	template := b.Task("Template task", func(tb *TaskBuilder) {
		tb.Description("Base desc").Assignee("Alina").Priority("Low").Due(due)
	})
	clone := b.Task("placeholder title", func(tb *TaskBuilder) {
		tb.CopyFrom(template).InColumn("In Progress")
	})
	_ = clone

	snap, err := b.Build()
	require.NoError(t, err)

	got := snap.Tasks["task_2"]
	assert.Equal(t, "Template task", got.Title)
	assert.Equal(t, "Base desc", got.Description)
	assert.Equal(t, "Alina", got.Assignee)
	assert.Equal(t, board.PriorityLow, got.Priority)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, dateOf(due), *got.DueDate)
	assert.Equal(t, "column_2", got.ColumnID)
}

func TestCopyFromWithFieldSubset(t *testing.T) {
	b := newTestProject(t)

	template := b.Task("Template task", func(tb *TaskBuilder) {
		tb.Description("Base desc").Assignee("Alina").Priority("Critical")
	})
	b.Task("Own title", func(tb *TaskBuilder) {
		tb.Description("Own desc").CopyFrom(template, FieldPriority)
	})

	snap, err := b.Build()
	require.NoError(t, err)

	got := snap.Tasks["task_2"]
	assert.Equal(t, "Own title", got.Title)
	assert.Equal(t, "Own desc", got.Description)
	assert.Empty(t, got.Assignee, "assignee must not be copied")
	assert.Equal(t, board.PriorityCritical, got.Priority)
	assert.Nil(t, got.DueDate)
}

func TestCopyFromSkipsUnsetSourceFields(t *testing.T) {
	b := newTestProject(t)

	// The source has no description, assignee or due date.
	template := b.Task("Bare template")
	b.Task("ignored", func(tb *TaskBuilder) {
		tb.Description("Keep me").CopyFrom(template)
	})

	snap, err := b.Build()
	require.NoError(t, err)

	got := snap.Tasks["task_2"]
	assert.Equal(t, "Bare template", got.Title, "set source fields are copied")
	assert.Equal(t, "Keep me", got.Description, "absence must not overwrite")
	assert.Empty(t, got.Assignee)
	assert.Nil(t, got.DueDate)
}

func TestMarkUrgent(t *testing.T) {
	b := newTestProject(t)
	b.Task("Login bug", func(tb *TaskBuilder) { tb.MarkUrgent() })

	snap, err := b.Build()
	require.NoError(t, err)

	got := snap.Tasks["task_1"]
	assert.Equal(t, board.PriorityHigh, got.Priority)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, today().AddDate(0, 0, 2), *got.DueDate)
}

func TestAssignAndDue(t *testing.T) {
	b := newTestProject(t)
	due := time.Now().AddDate(0, 0, 1)
	b.Task("Hotfix prod", func(tb *TaskBuilder) {
		tb.AssignAndDue("  Alina  ", due).InColumn("In Progress")
	})

	snap, err := b.Build()
	require.NoError(t, err)

	got := snap.Tasks["task_1"]
	assert.Equal(t, "Alina", got.Assignee, "assignee is trimmed")
	require.NotNil(t, got.DueDate)
	assert.Equal(t, dateOf(due), *got.DueDate)
	assert.Equal(t, "column_2", got.ColumnID)
}

func TestConfigureDelegate(t *testing.T) {
	b := newTestProject(t)
	b.Task("Configured").Configure(func(tb *TaskBuilder) {
		tb.Description("via delegate")
	})

	snap, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "via delegate", snap.Tasks["task_1"].Description)
}

func TestTaskDatesAreCalendarDates(t *testing.T) {
	b := newTestProject(t)
	noon := time.Date(2030, 6, 15, 12, 30, 45, 0, time.Local)
	b.Task("Timed", func(tb *TaskBuilder) { tb.Due(noon) })

	snap, err := b.Build()
	require.NoError(t, err)

	got := snap.Tasks["task_1"]
	require.NotNil(t, got.DueDate)
	assert.Equal(t, time.Date(2030, 6, 15, 0, 0, 0, 0, time.Local), *got.DueDate)
	assert.Equal(t, got.CreatedAt, dateOf(got.CreatedAt), "created_at is stored at date granularity")
}
