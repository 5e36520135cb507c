package builder

import (
	"fmt"
	"strings"
	"time"

	"github.com/vk/boardforge/internal/board"
	"github.com/vk/boardforge/internal/idseq"
	"github.com/vk/boardforge/internal/ledger"
)

// maxFieldLen bounds every user-supplied name and title.
const maxFieldLen = 200

// Entity kind labels used in defect records.
const (
	kindProject = "Project"
	kindColumn  = "Column"
	kindTask    = "Task"
	kindScope   = "Scope"
)

// sessionState tracks the builder session lifecycle. There is no transition
// back to stateOpen.
type sessionState int

const (
	stateOpen sessionState = iota
	stateFinalizing
	stateBuilt
	stateRejected
)

// base carries the per-builder identity needed to record defects: the
// session ledger, the builder's entity kind and id, and the origin attached
// at creation time.
type base struct {
	ledger *ledger.Ledger
	kind   string
	id     string
	origin ledger.Origin
}

func (b *base) addDefect(msg string) {
	b.ledger.Add(b.origin, b.kind, b.id, msg)
}

// nonEmpty records a defect when value is blank, and another when it exceeds
// the length bound. It reports whether the value was non-blank.
func (b *base) nonEmpty(value, field string) bool {
	if strings.TrimSpace(value) == "" {
		b.addDefect(fmt.Sprintf("'%s' must be non-empty", field))
		return false
	}
	if len(value) > maxFieldLen {
		b.addDefect(fmt.Sprintf("'%s' length must be <= %d", field, maxFieldLen))
	}
	return true
}

// checkPriority records a defect when value is not a member of the fixed
// priority enumeration.
func (b *base) checkPriority(value, field string) {
	if _, err := board.ParsePriority(value); err != nil {
		b.addDefect(fmt.Sprintf("'%s' must be one of %s (got '%s')",
			field, strings.Join(board.PriorityNames(), ", "), value))
	}
}

// checkDue records a defect when the date lies in the past and the project
// does not allow past due dates. Comparison is at calendar-date granularity.
func (b *base) checkDue(d time.Time, allowPast bool) {
	if !allowPast && dateOf(d).Before(today()) {
		b.addDefect("due_date cannot be in the past")
	}
}

// ProjectBuilder is the entry point of a builder session. It owns the
// session's validation ledger and identifier sequencer, and creates all
// child column/task builders. A session belongs to a single goroutine; no
// builder is safe for unsynchronized concurrent use.
type ProjectBuilder struct {
	base
	seq *idseq.Sequencer

	draft        *draftProject
	columns      map[string]*draftColumn
	tasks        map[string]*draftTask
	allowPastDue bool

	state    sessionState
	snapshot *board.Snapshot
	buildErr error
}

// New starts a builder session. The origin is attached to every defect the
// project itself records and is inherited by children created without an
// explicit origin.
func New(origin ledger.Origin) *ProjectBuilder {
	seq := idseq.New()
	b := &ProjectBuilder{
		base: base{
			ledger: ledger.New(),
			kind:   kindProject,
			origin: origin,
		},
		seq:     seq,
		draft:   &draftProject{createdAt: today()},
		columns: make(map[string]*draftColumn),
		tasks:   make(map[string]*draftTask),
	}
	b.id = seq.Next(idseq.KindProject)
	return b
}

// open reports whether the session still accepts mutations.
func (b *ProjectBuilder) open() bool {
	return b.state == stateOpen
}

// Name sets the project name. Blank or overlong names are recorded as
// defects immediately.
func (b *ProjectBuilder) Name(value string) *ProjectBuilder {
	if !b.open() {
		return b
	}
	b.draft.name = value
	b.nonEmpty(value, "project.name")
	return b
}

// Owner sets the project owner.
func (b *ProjectBuilder) Owner(value string) *ProjectBuilder {
	if !b.open() {
		return b
	}
	b.draft.owner = strings.TrimSpace(value)
	return b
}

// AllowPastDue configures the past-due policy for every due date in the
// session, including scope defaults.
func (b *ProjectBuilder) AllowPastDue(value bool) *ProjectBuilder {
	if !b.open() {
		return b
	}
	b.allowPastDue = value
	return b
}

// Column creates a column draft and its builder, inheriting the session
// origin. The optional configure callbacks run before Column returns.
func (b *ProjectBuilder) Column(name string, configure ...func(*ColumnBuilder)) *ColumnBuilder {
	return b.ColumnAt(b.origin, name, configure...)
}

// ColumnAt is Column with an explicit origin, used by loaders to attach the
// file position a column was declared at.
func (b *ProjectBuilder) ColumnAt(origin ledger.Origin, name string, configure ...func(*ColumnBuilder)) *ColumnBuilder {
	draft := &draftColumn{}
	cb := &ColumnBuilder{
		base: base{ledger: b.ledger, kind: kindColumn, origin: origin},
		root: b,
		draft: draft,
	}
	if b.open() {
		cb.id = b.seq.Next(idseq.KindColumn)
		b.columns[cb.id] = draft
		b.draft.columnIDs = append(b.draft.columnIDs, cb.id)
	}
	cb.Name(name)
	for _, fn := range configure {
		fn(cb)
	}
	return cb
}

// Task creates a task draft and its builder, inheriting the session origin.
// When the project already has columns the task is pre-assigned to the first
// one; a configure callback can override the placement with InColumn. When
// the project has no columns the draft is still created and finalization
// records the structural defect.
func (b *ProjectBuilder) Task(title string, configure ...func(*TaskBuilder)) *TaskBuilder {
	return b.TaskAt(b.origin, title, configure...)
}

// TaskAt is Task with an explicit origin.
func (b *ProjectBuilder) TaskAt(origin ledger.Origin, title string, configure ...func(*TaskBuilder)) *TaskBuilder {
	draft := &draftTask{priority: "Normal", createdAt: today()}
	tb := &TaskBuilder{
		base: base{ledger: b.ledger, kind: kindTask, origin: origin},
		root: b,
		draft: draft,
	}
	if b.open() {
		tb.id = b.seq.Next(idseq.KindTask)
		b.tasks[tb.id] = draft
		b.draft.taskIDs = append(b.draft.taskIDs, tb.id)
	}
	tb.Title(title)
	if len(b.draft.columnIDs) > 0 {
		tb.InColumn(b.draft.columnIDs[0])
	}
	for _, fn := range configure {
		fn(tb)
	}
	return tb
}

// Scope returns a default-value facade over this session. Defaults set on
// the scope apply to every task it creates, before the task's own configure
// callback runs, so explicit configuration always wins.
func (b *ProjectBuilder) Scope() *Scope {
	return &Scope{root: b, origin: b.origin}
}
