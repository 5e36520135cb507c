package builder

import "time"

// Draft records are the mutable, partially-populated state of a session.
// They are reachable only through their builders, reference children by id
// rather than by pointer, and are discarded once finalization has produced
// the snapshot.

type draftProject struct {
	name      string
	owner     string
	createdAt time.Time
	columnIDs []string
	taskIDs   []string
}

type draftColumn struct {
	name string
}

type draftTask struct {
	title       *string
	description *string
	assignee    *string
	// priority always holds a spelling; it defaults to "Normal" and is
	// validated against the fixed enumeration.
	priority  string
	due       *time.Time
	createdAt time.Time
	// columnRef is a column id or name, resolved during finalization.
	columnRef string
}

// today returns the current calendar date with the time component zeroed.
// Draft timestamps and the past-due policy work at date granularity.
func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// dateOf truncates a timestamp to its calendar date.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
