package render

import (
	"fmt"
	"strings"

	"github.com/vk/boardforge/internal/board"
)

// Text renders a snapshot as a human-readable board overview. The layout
// mirrors the JSON renderer: projects by id, columns and tasks in creation
// order.
func Text(snap *board.Snapshot) string {
	var sb strings.Builder
	for i, pid := range sortedProjectIDs(snap) {
		if i > 0 {
			sb.WriteString("\n")
		}
		p := snap.Projects[pid]
		fmt.Fprintf(&sb, "Project: %s (%s)\n", p.Name, p.ID)
		if p.Owner != "" {
			fmt.Fprintf(&sb, "Owner: %s\n", p.Owner)
		}
		for _, cid := range p.ColumnIDs {
			c := snap.Columns[cid]
			fmt.Fprintf(&sb, "  [%s] %d task(s)\n", c.Name, len(c.TaskIDs))
			for _, tid := range c.TaskIDs {
				sb.WriteString(taskLine(snap.Tasks[tid]))
			}
		}
	}
	return sb.String()
}

func taskLine(t board.Task) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "    - %s: %s [%s]", t.ID, t.Title, t.Priority)
	if t.Assignee != "" {
		fmt.Fprintf(&sb, " @%s", t.Assignee)
	}
	if t.DueDate != nil {
		fmt.Fprintf(&sb, " due %s", t.DueDate.Format(dateLayout))
	}
	sb.WriteString("\n")
	return sb.String()
}
