package builder

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/boardforge/internal/board"
	"github.com/vk/boardforge/internal/ledger"
)

// defectsOf unwraps the aggregate error returned by Build.
func defectsOf(t *testing.T, err error) []ledger.Defect {
	t.Helper()
	var agg *ledger.AggregateError
	require.ErrorAs(t, err, &agg)
	return agg.Defects
}

// countContaining counts defects whose rendered form contains the substring.
func countContaining(defects []ledger.Defect, substr string) int {
	n := 0
	for _, d := range defects {
		if strings.Contains(d.String(), substr) {
			n++
		}
	}
	return n
}

func TestBuildValidBoard(t *testing.T) {
	b := New(ledger.Labeled("test"))
	b.Name("Sprint 17").Owner("PM")
	b.Column("Backlog", func(c *ColumnBuilder) { c.AsBacklog() })
	b.Column("In Progress")
	b.Column("Done")

	b.Task("Login bug", func(tb *TaskBuilder) {
		tb.Description("Wrong redirect after auth").Priority("High")
	})
	b.Task("Release notes", func(tb *TaskBuilder) {
		tb.Assignee("PM").InColumn("Done")
	})

	snap, err := b.Build()
	require.NoError(t, err)
	require.NotNil(t, snap)

	require.Len(t, snap.Projects, 1)
	p := snap.Projects["project_1"]
	assert.Equal(t, "Sprint 17", p.Name)
	assert.Equal(t, "PM", p.Owner)
	assert.Equal(t, []string{"column_1", "column_2", "column_3"}, p.ColumnIDs)
	assert.Equal(t, []string{"task_1", "task_2"}, p.TaskIDs)

	// Every id referenced by the project lists exists in the snapshot maps.
	for _, cid := range p.ColumnIDs {
		_, ok := snap.Columns[cid]
		assert.True(t, ok, "column %s missing from snapshot", cid)
	}
	for _, tid := range p.TaskIDs {
		_, ok := snap.Tasks[tid]
		assert.True(t, ok, "task %s missing from snapshot", tid)
	}

	// The first task fell back to the first column; the second was placed
	// explicitly by name.
	assert.Equal(t, "column_1", snap.Tasks["task_1"].ColumnID)
	assert.Equal(t, "column_3", snap.Tasks["task_2"].ColumnID)
	assert.Equal(t, board.PriorityHigh, snap.Tasks["task_1"].Priority)
	assert.Equal(t, []string{"task_1"}, snap.Columns["column_1"].TaskIDs)
	assert.Equal(t, []string{"task_2"}, snap.Columns["column_3"].TaskIDs)
}

func TestBuildFailsWithoutColumns(t *testing.T) {
	b := New(ledger.Labeled("test")).Name("Empty board")

	snap, err := b.Build()
	assert.Nil(t, snap)
	defects := defectsOf(t, err)
	assert.Equal(t, 1, countContaining(defects, "project must have at least one column"))
}

func TestBuildFailsWithoutName(t *testing.T) {
	b := New(ledger.Labeled("test"))
	b.Column("Backlog")

	snap, err := b.Build()
	assert.Nil(t, snap)
	defects := defectsOf(t, err)
	assert.Equal(t, 1, countContaining(defects, "'project.name' must be non-empty"))
}

func TestEmptyNameDefectMayDuplicate(t *testing.T) {
	// Name("") records a defect immediately; finalization records it again.
	// The ledger is a list of diagnostics, not a set.
	b := New(ledger.Labeled("test")).Name("")
	b.Column("Backlog")

	_, err := b.Build()
	defects := defectsOf(t, err)
	assert.Equal(t, 2, countContaining(defects, "'project.name' must be non-empty"))
}

func TestDuplicateColumnNamesReportedOnce(t *testing.T) {
	b := New(ledger.Labeled("test")).Name("Board")
	b.Column("Backlog")
	b.Column("Backlog")
	b.Column("Done")

	snap, err := b.Build()
	assert.Nil(t, snap)
	defects := defectsOf(t, err)
	assert.Equal(t, 1, countContaining(defects, "duplicate column name 'Backlog'"))
	assert.Equal(t, 0, countContaining(defects, "duplicate column name 'Done'"))
}

func TestUnknownColumnFallsBackAndRecordsOneDefect(t *testing.T) {
	b := New(ledger.Labeled("test")).Name("Board")
	b.Column("Backlog")
	b.Column("Done")
	b.Task("Lost task", func(tb *TaskBuilder) { tb.InColumn("NoSuchColumn") })

	snap, err := b.Build()
	assert.Nil(t, snap)
	defects := defectsOf(t, err)
	assert.Equal(t, 1, countContaining(defects, "unknown column 'NoSuchColumn' for task"))
	assert.Equal(t, 1, len(defects), "fallback placement must not add defects beyond the reference one")
}

func TestAmbiguousColumnNameIsAReferenceDefect(t *testing.T) {
	// Two columns share a name; placing a task by that name cannot resolve
	// uniquely. Both the uniqueness and the reference defect are reported.
	b := New(ledger.Labeled("test")).Name("Board")
	b.Column("Todo")
	b.Column("Todo")
	b.Task("Which one?", func(tb *TaskBuilder) { tb.InColumn("Todo") })

	_, err := b.Build()
	defects := defectsOf(t, err)
	assert.Equal(t, 1, countContaining(defects, "duplicate column name 'Todo'"))
	assert.Equal(t, 1, countContaining(defects, "unknown column 'Todo' for task"))
}

func TestTaskWithoutColumnsRecordsStructuralDefect(t *testing.T) {
	b := New(ledger.Labeled("test")).Name("Board")
	b.Task("Homeless task")

	snap, err := b.Build()
	assert.Nil(t, snap)
	defects := defectsOf(t, err)
	assert.Equal(t, 1, countContaining(defects, "task has no column and project has no columns"))
	assert.Equal(t, 1, countContaining(defects, "project must have at least one column"))
}

func TestColumnResolutionByID(t *testing.T) {
	b := New(ledger.Labeled("test")).Name("Board")
	b.Column("Backlog")
	done := b.Column("Done")
	b.Task("By id", func(tb *TaskBuilder) { tb.InColumn(done.ID()) })

	snap, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, done.ID(), snap.Tasks["task_1"].ColumnID)
}

func TestInvalidColumnNameGetsPlaceholderLabel(t *testing.T) {
	b := New(ledger.Labeled("test")).Name("Board")
	b.Column("")

	snap, err := b.Build()
	assert.Nil(t, snap)
	defects := defectsOf(t, err)
	// Once from the fluent setter, once from finalization.
	assert.Equal(t, 1, countContaining(defects, "'column.name' must be non-empty"))
	assert.Equal(t, 1, countContaining(defects, "'column[column_1].name' must be non-empty"))
}

func TestNameLengthBound(t *testing.T) {
	long := strings.Repeat("x", maxFieldLen+1)
	b := New(ledger.Labeled("test")).Name(long)
	b.Column("Backlog")

	_, err := b.Build()
	defects := defectsOf(t, err)
	assert.Equal(t, 1, countContaining(defects, "'project.name' length must be <= 200"))
}

func TestPastDuePolicy(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1)

	b := New(ledger.Labeled("test")).Name("Board")
	b.Column("Backlog")
	b.Task("Overdue", func(tb *TaskBuilder) { tb.Due(yesterday) })

	_, err := b.Build()
	defects := defectsOf(t, err)
	// Setter check plus the finalization re-check.
	assert.Equal(t, 2, countContaining(defects, "due_date cannot be in the past"))
}

func TestAllowPastDueDisablesThePolicy(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1)

	b := New(ledger.Labeled("test")).Name("Board").AllowPastDue(true)
	b.Column("Backlog")
	b.Task("Overdue on purpose", func(tb *TaskBuilder) { tb.Due(yesterday) })

	snap, err := b.Build()
	require.NoError(t, err)
	require.NotNil(t, snap.Tasks["task_1"].DueDate)
}

func TestInvalidPriorityIsADefect(t *testing.T) {
	b := New(ledger.Labeled("test")).Name("Board")
	b.Column("Backlog")
	b.Task("Shouting", func(tb *TaskBuilder) { tb.Priority("URGENT") })

	snap, err := b.Build()
	// The coerced-to-Normal value is never observable: the build fails.
	assert.Nil(t, snap)
	defects := defectsOf(t, err)
	assert.Equal(t, 1, countContaining(defects, "'task.priority' must be one of Low, Normal, High, Critical (got 'URGENT')"))
	assert.Equal(t, 1, countContaining(defects, "'task[task_1].priority' must be one of"))
}

func TestSequencerIssuesOrderedTaskIDs(t *testing.T) {
	b := New(ledger.Labeled("test")).Name("Board")
	b.Column("Backlog")

	first := b.Task("one")
	second := b.Task("two")
	third := b.Task("three")

	assert.Equal(t, "task_1", first.ID())
	assert.Equal(t, "task_2", second.ID())
	assert.Equal(t, "task_3", third.ID())
}

func TestBuildIsTerminal(t *testing.T) {
	b := New(ledger.Labeled("test")).Name("Board")
	b.Column("Backlog")

	snap, err := b.Build()
	require.NoError(t, err)

	// Mutations after finalization are ignored.
	b.Name("Renamed")
	b.Column("Late column")
	b.Task("Late task")

	again, err2 := b.Build()
	require.NoError(t, err2)
	assert.Same(t, snap, again)
	assert.Equal(t, "Board", again.Projects["project_1"].Name)
	assert.Len(t, again.Columns, 1)
	assert.Empty(t, again.Tasks)
}

func TestRejectedBuildStaysRejected(t *testing.T) {
	b := New(ledger.Labeled("test"))
	_, err := b.Build()
	require.Error(t, err)

	// Fixing the drafts afterwards cannot reopen the session.
	b.Name("Board")
	b.Column("Backlog")
	snap, err2 := b.Build()
	assert.Nil(t, snap)
	assert.Equal(t, err, err2)
}

func TestDefectOriginsAreReported(t *testing.T) {
	b := New(ledger.At("board.hcl", 7))
	b.Column("Backlog")

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[board.hcl:7] Project(")
}

func TestAggregateErrorCollectsEverything(t *testing.T) {
	// One pass over a thoroughly broken board reports every defect at once.
	b := New(ledger.Labeled("test"))
	b.Column("Backlog")
	b.Column("Backlog")
	b.Task("", func(tb *TaskBuilder) { tb.Priority("Bogus").InColumn("Nowhere") })

	_, err := b.Build()
	defects := defectsOf(t, err)
	assert.GreaterOrEqual(t, len(defects), 5)
	assert.Equal(t, 1, countContaining(defects, "'project.name' must be non-empty"))
	assert.Equal(t, 1, countContaining(defects, "duplicate column name 'Backlog'"))
	assert.Equal(t, 1, countContaining(defects, "unknown column 'Nowhere' for task"))

	var agg *ledger.AggregateError
	require.True(t, errors.As(err, &agg))
	assert.Contains(t, agg.Error(), "validation failed with")
}
