package builder

import (
	"fmt"
	"strings"

	"github.com/vk/boardforge/internal/board"
)

// Build runs the finalization pass: a single, deterministic, synchronous
// sweep over the accumulated drafts. It is total — it always returns either
// a fully assembled snapshot or the aggregate error listing every defect
// recorded during the session. There is no partial snapshot: success is
// all-or-nothing.
//
// After the first call the session is terminal; repeated calls return the
// same outcome.
func (b *ProjectBuilder) Build() (*board.Snapshot, error) {
	if b.state == stateBuilt || b.state == stateRejected {
		return b.snapshot, b.buildErr
	}
	b.state = stateFinalizing

	// Phase 1: structural checks. The name defect may duplicate the one
	// recorded by Name(); the ledger keeps diagnostics, not a set.
	if strings.TrimSpace(b.draft.name) == "" {
		b.nonEmpty(b.draft.name, "project.name")
	}
	if len(b.draft.columnIDs) == 0 {
		b.ledger.Add(b.origin, kindProject, b.id, "project must have at least one column")
	}

	// Phase 2: column name uniqueness. Each duplicated value is reported
	// once, at its first occurrence, to keep the ledger deterministic.
	nameCounts := make(map[string]int)
	for _, cid := range b.draft.columnIDs {
		nameCounts[b.columns[cid].name]++
	}
	reported := make(map[string]bool)
	for _, cid := range b.draft.columnIDs {
		name := b.columns[cid].name
		if nameCounts[name] > 1 && !reported[name] {
			reported[name] = true
			b.ledger.Add(b.origin, kindProject, b.id, fmt.Sprintf("duplicate column name '%s'", name))
		}
	}

	// Phase 3: build the column records. An invalid name gets a placeholder
	// label so snapshot construction can proceed; the defect is on the
	// ledger either way.
	columns := make(map[string]board.Column, len(b.draft.columnIDs))
	byName := make(map[string][]string)
	colTasks := make(map[string][]string)
	for _, cid := range b.draft.columnIDs {
		name := b.columns[cid].name
		if !b.nonEmpty(name, fmt.Sprintf("column[%s].name", cid)) && name == "" {
			name = fmt.Sprintf("<invalid:%s>", cid)
		}
		columns[cid] = board.Column{ID: cid, ProjectID: b.id, Name: name}
		byName[name] = append(byName[name], cid)
	}

	// Phase 4: validate each task and resolve its column reference, in
	// draft-creation order. Resolution never fails by itself — a bad
	// reference degrades to the first column so one defect cannot mask
	// others found later in the pass.
	tasks := make(map[string]board.Task, len(b.draft.taskIDs))
	for _, tid := range b.draft.taskIDs {
		d := b.tasks[tid]

		title := ""
		if d.title != nil {
			title = *d.title
		}
		b.nonEmpty(title, fmt.Sprintf("task[%s].title", tid))
		b.checkPriority(d.priority, fmt.Sprintf("task[%s].priority", tid))
		if d.due != nil {
			b.checkDue(*d.due, b.allowPastDue)
		}

		colID := d.columnRef
		if colID != "" {
			if _, ok := columns[colID]; !ok {
				if matches := byName[colID]; len(matches) == 1 {
					colID = matches[0]
				} else {
					b.ledger.Add(b.origin, kindTask, tid, fmt.Sprintf("unknown column '%s' for task", d.columnRef))
					colID = ""
					if len(b.draft.columnIDs) > 0 {
						colID = b.draft.columnIDs[0]
					}
				}
			}
		} else {
			if len(b.draft.columnIDs) > 0 {
				colID = b.draft.columnIDs[0]
			} else {
				b.ledger.Add(b.origin, kindTask, tid, "task has no column and project has no columns")
			}
		}

		priority, err := board.ParsePriority(d.priority)
		if err != nil {
			// Coerced so construction stays total; the defect above makes
			// sure this value is never observable through a returned snapshot.
			priority = board.PriorityNormal
		}

		t := board.Task{
			ID:        tid,
			ProjectID: b.id,
			ColumnID:  colID,
			Title:     title,
			Priority:  priority,
			CreatedAt: d.createdAt,
		}
		if d.description != nil {
			t.Description = *d.description
		}
		if d.assignee != nil {
			t.Assignee = *d.assignee
		}
		if d.due != nil {
			due := *d.due
			t.DueDate = &due
		}
		tasks[tid] = t

		if _, ok := columns[colID]; ok {
			colTasks[colID] = append(colTasks[colID], tid)
		}
	}

	// Phase 5: attach task lists to their columns, in task-creation order.
	for cid, ids := range colTasks {
		col := columns[cid]
		col.TaskIDs = ids
		columns[cid] = col
	}

	// Phase 6: assemble the project record and settle the session.
	project := board.Project{
		ID:        b.id,
		Name:      b.draft.name,
		CreatedAt: b.draft.createdAt,
		Owner:     b.draft.owner,
		ColumnIDs: append([]string(nil), b.draft.columnIDs...),
		TaskIDs:   append([]string(nil), b.draft.taskIDs...),
	}

	if err := b.ledger.Err(); err != nil {
		b.state = stateRejected
		b.buildErr = err
		return nil, err
	}

	b.state = stateBuilt
	b.snapshot = &board.Snapshot{
		Projects: map[string]board.Project{b.id: project},
		Columns:  columns,
		Tasks:    tasks,
	}
	return b.snapshot, nil
}
