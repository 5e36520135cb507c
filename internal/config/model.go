package config

import "github.com/vk/boardforge/internal/ledger"

// Model is the unified, format-agnostic representation of one board
// definition file.
type Model struct {
	Project *Project
}

// Project is the format-agnostic representation of a `project` block.
type Project struct {
	Name         string
	Owner        string
	AllowPastDue bool
	Columns      []*Column
	Tasks        []*Task
	Defaults     []*Defaults
	Origin       ledger.Origin
}

// Column is the format-agnostic representation of a `column` block.
type Column struct {
	Name string
	// Backlog marks the column as the project's backlog. Documentary only.
	Backlog bool
	Origin  ledger.Origin
}

// Task is the format-agnostic representation of a `task` block. All fields
// except Title are optional; empty strings mean "not set".
type Task struct {
	Title       string
	Description string
	Assignee    string
	// Priority is the raw spelling from the file; membership in the fixed
	// enumeration is checked during replay, not here.
	Priority string
	// Due is a calendar date in YYYY-MM-DD form.
	Due string
	// Column references a column by id or by name.
	Column string
	// Urgent applies the builder's urgent preset (High priority, short due).
	Urgent bool
	Origin ledger.Origin
}

// Defaults is the format-agnostic representation of a `defaults` block: a
// set of default task field values plus the tasks created under them.
type Defaults struct {
	Assignee string
	Priority string
	Due      string
	Tasks    []*Task
	Origin   ledger.Origin
}
