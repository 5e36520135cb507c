package render

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/boardforge/internal/board"
	"github.com/vk/boardforge/internal/builder"
	"github.com/vk/boardforge/internal/ledger"
)

func sampleSnapshot(t *testing.T) *board.Snapshot {
	t.Helper()
	b := builder.New(ledger.Labeled("test")).Name("Sprint 17").Owner("PM")
	b.Column("Backlog")
	b.Column("Done")
	b.Task("Login bug", func(tb *builder.TaskBuilder) {
		tb.Priority("High").Assignee("Alina").Due(time.Date(2099, 1, 15, 10, 0, 0, 0, time.Local))
	})
	b.Task("Release notes", func(tb *builder.TaskBuilder) { tb.InColumn("Done") })

	snap, err := b.Build()
	require.NoError(t, err)
	return snap
}

func TestJSONShape(t *testing.T) {
	out, err := JSON(sampleSnapshot(t))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))

	projects := doc["projects"].([]any)
	require.Len(t, projects, 1)
	p := projects[0].(map[string]any)
	assert.Equal(t, "project_1", p["id"])
	assert.Equal(t, "Sprint 17", p["name"])
	assert.Equal(t, "PM", p["owner"])

	columns := p["columns"].([]any)
	require.Len(t, columns, 2)
	backlog := columns[0].(map[string]any)
	assert.Equal(t, "Backlog", backlog["name"])

	tasks := backlog["tasks"].([]any)
	require.Len(t, tasks, 1)
	login := tasks[0].(map[string]any)
	assert.Equal(t, "Login bug", login["title"])
	assert.Equal(t, "High", login["priority"])
	assert.Equal(t, "2099-01-15", login["due_date"])

	done := columns[1].(map[string]any)
	notes := done["tasks"].([]any)[0].(map[string]any)
	assert.Nil(t, notes["due_date"], "absent due dates render as null")
	_, hasAssignee := notes["assignee"]
	assert.False(t, hasAssignee, "empty optional strings are omitted")
}

func TestJSONIsDeterministic(t *testing.T) {
	snap := sampleSnapshot(t)

	first, err := JSON(snap)
	require.NoError(t, err)
	second, err := JSON(snap)
	require.NoError(t, err)

	if diff := cmp.Diff(string(first), string(second)); diff != "" {
		t.Fatalf("renders differ (-first +second):\n%s", diff)
	}
}

func TestTextOverview(t *testing.T) {
	out := Text(sampleSnapshot(t))

	assert.Contains(t, out, "Project: Sprint 17 (project_1)")
	assert.Contains(t, out, "Owner: PM")
	assert.Contains(t, out, "[Backlog] 1 task(s)")
	assert.Contains(t, out, "- task_1: Login bug [High] @Alina due 2099-01-15")
	assert.Contains(t, out, "[Done] 1 task(s)")
	assert.Contains(t, out, "- task_2: Release notes [Normal]")
}

func TestTextOmitsMissingOwner(t *testing.T) {
	b := builder.New(ledger.Labeled("test")).Name("Quiet board")
	b.Column("Todo")

	snap, err := b.Build()
	require.NoError(t, err)

	out := Text(snap)
	assert.NotContains(t, out, "Owner:")
	assert.Contains(t, out, "[Todo] 0 task(s)")
}
