// Package render contains stateless formatters for finalized board
// snapshots. Formatters only read the snapshot; they never reach back into
// a builder session.
package render

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/vk/boardforge/internal/board"
)

const dateLayout = "2006-01-02"

type jsonBoard struct {
	Projects []jsonProject `json:"projects"`
}

type jsonProject struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Owner     string       `json:"owner,omitempty"`
	CreatedAt string       `json:"created_at"`
	Columns   []jsonColumn `json:"columns"`
}

type jsonColumn struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Tasks []jsonTask `json:"tasks"`
}

type jsonTask struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Assignee    string  `json:"assignee,omitempty"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
	CreatedAt   string  `json:"created_at"`
}

// JSON renders a snapshot as indented JSON. Projects are ordered by id and
// columns and tasks follow creation order, so output is deterministic.
func JSON(snap *board.Snapshot) ([]byte, error) {
	doc := jsonBoard{Projects: []jsonProject{}}
	for _, pid := range sortedProjectIDs(snap) {
		p := snap.Projects[pid]
		jp := jsonProject{
			ID:        p.ID,
			Name:      p.Name,
			Owner:     p.Owner,
			CreatedAt: p.CreatedAt.Format(dateLayout),
			Columns:   []jsonColumn{},
		}
		for _, cid := range p.ColumnIDs {
			c := snap.Columns[cid]
			jc := jsonColumn{ID: c.ID, Name: c.Name, Tasks: []jsonTask{}}
			for _, tid := range c.TaskIDs {
				jc.Tasks = append(jc.Tasks, toJSONTask(snap.Tasks[tid]))
			}
			jp.Columns = append(jp.Columns, jc)
		}
		doc.Projects = append(doc.Projects, jp)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render board as JSON: %w", err)
	}
	return out, nil
}

func toJSONTask(t board.Task) jsonTask {
	jt := jsonTask{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Assignee:    t.Assignee,
		Priority:    t.Priority.String(),
		CreatedAt:   t.CreatedAt.Format(dateLayout),
	}
	if t.DueDate != nil {
		due := t.DueDate.Format(dateLayout)
		jt.DueDate = &due
	}
	return jt
}

func sortedProjectIDs(snap *board.Snapshot) []string {
	ids := make([]string, 0, len(snap.Projects))
	for id := range snap.Projects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
