// Package board defines the immutable output models of a builder session:
// Project, Column, Task and the root Snapshot aggregate.
//
// A Snapshot is the only artifact ever handed back to a caller. It is
// produced once by finalization, owns all of its entities exclusively, and
// keeps no reference to the session that built it. Callers (including the
// render package) must treat it as read-only.
package board

import "time"

// Project is a finalized project record. Every id in ColumnIDs and TaskIDs
// exists in the owning Snapshot's Columns/Tasks maps.
type Project struct {
	ID        string
	Name      string
	CreatedAt time.Time
	// Owner is empty when no owner was set.
	Owner string
	// ColumnIDs and TaskIDs preserve creation order.
	ColumnIDs []string
	TaskIDs   []string
}

// Column is a finalized column record. Column names are unique within a
// project. TaskIDs preserves the order tasks were placed during
// finalization, which equals task creation order.
type Column struct {
	ID        string
	ProjectID string
	Name      string
	TaskIDs   []string
}

// Task is a finalized task record.
type Task struct {
	ID        string
	ProjectID string
	ColumnID  string
	Title     string
	// Description and Assignee are empty when unset.
	Description string
	Assignee    string
	Priority    Priority
	// DueDate is nil when no due date was set.
	DueDate   *time.Time
	CreatedAt time.Time
}

// Snapshot is the root aggregate: three disjoint id-keyed mappings suitable
// for a stateless external formatter to traverse.
type Snapshot struct {
	Projects map[string]Project
	Columns  map[string]Column
	Tasks    map[string]Task
}
