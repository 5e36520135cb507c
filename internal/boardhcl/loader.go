// Package boardhcl is the HCL implementation of config.Loader: it parses a
// board definition file into the format-agnostic config model.
//
// Syntax and expression errors fail the load immediately (there is nothing
// meaningful to replay); semantic problems such as a bad priority spelling
// or an unknown column are carried into the model untouched so the builder
// replay can collect all of them in one pass. Block definition ranges become
// ledger origins, so a defect reported by Build points at the file and line
// the entity was declared on.
package boardhcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/boardforge/internal/config"
	"github.com/vk/boardforge/internal/ctxlog"
	"github.com/vk/boardforge/internal/ledger"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL board definition loader.
func NewLoader() *Loader {
	return &Loader{}
}

var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "project", LabelNames: []string{"name"}},
	},
}

var projectSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "owner"},
		{Name: "allow_past_due"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "column", LabelNames: []string{"name"}},
		{Type: "task", LabelNames: []string{"title"}},
		{Type: "defaults"},
	},
}

var columnSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "backlog"},
	},
}

var taskSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
		{Name: "assignee"},
		{Name: "priority"},
		{Name: "due"},
		{Name: "column"},
		{Name: "urgent"},
	},
}

var defaultsSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "assignee"},
		{Name: "priority"},
		{Name: "due"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "task", LabelNames: []string{"title"}},
	},
}

// Load parses one .hcl board file and translates it into the model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL board loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse board file %s: %w", path, diags)
	}

	content, diags := file.Body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode board file %s: %w", path, diags)
	}

	blocks := content.Blocks.OfType("project")
	if len(blocks) != 1 {
		return nil, fmt.Errorf("board file %s must define exactly one project, found %d", path, len(blocks))
	}

	evalCtx := newEvalContext()
	project, err := l.translateProject(blocks[0], evalCtx)
	if err != nil {
		return nil, err
	}

	logger.Debug("HCL board loading complete.",
		"project", project.Name, "columns", len(project.Columns),
		"tasks", len(project.Tasks), "defaults_blocks", len(project.Defaults))
	return &config.Model{Project: project}, nil
}

// translateProject decodes one project block into the model.
func (l *Loader) translateProject(block *hcl.Block, evalCtx *hcl.EvalContext) (*config.Project, error) {
	content, diags := block.Body.Content(projectSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid project %q: %w", block.Labels[0], diags)
	}

	p := &config.Project{
		Name:   block.Labels[0],
		Origin: originOf(block),
	}

	var err error
	if p.Owner, err = stringAttr(content.Attributes, "owner", evalCtx); err != nil {
		return nil, err
	}
	if p.AllowPastDue, err = boolAttr(content.Attributes, "allow_past_due", evalCtx); err != nil {
		return nil, err
	}

	for _, b := range content.Blocks {
		switch b.Type {
		case "column":
			column, err := l.translateColumn(b, evalCtx)
			if err != nil {
				return nil, err
			}
			p.Columns = append(p.Columns, column)
		case "task":
			task, err := l.translateTask(b, evalCtx)
			if err != nil {
				return nil, err
			}
			p.Tasks = append(p.Tasks, task)
		case "defaults":
			defaults, err := l.translateDefaults(b, evalCtx)
			if err != nil {
				return nil, err
			}
			p.Defaults = append(p.Defaults, defaults)
		}
	}
	return p, nil
}

func (l *Loader) translateColumn(block *hcl.Block, evalCtx *hcl.EvalContext) (*config.Column, error) {
	content, diags := block.Body.Content(columnSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid column %q: %w", block.Labels[0], diags)
	}

	c := &config.Column{
		Name:   block.Labels[0],
		Origin: originOf(block),
	}
	var err error
	if c.Backlog, err = boolAttr(content.Attributes, "backlog", evalCtx); err != nil {
		return nil, err
	}
	return c, nil
}

func (l *Loader) translateTask(block *hcl.Block, evalCtx *hcl.EvalContext) (*config.Task, error) {
	content, diags := block.Body.Content(taskSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid task %q: %w", block.Labels[0], diags)
	}

	t := &config.Task{
		Title:  block.Labels[0],
		Origin: originOf(block),
	}
	var err error
	if t.Description, err = stringAttr(content.Attributes, "description", evalCtx); err != nil {
		return nil, err
	}
	if t.Assignee, err = stringAttr(content.Attributes, "assignee", evalCtx); err != nil {
		return nil, err
	}
	if t.Priority, err = stringAttr(content.Attributes, "priority", evalCtx); err != nil {
		return nil, err
	}
	if t.Due, err = stringAttr(content.Attributes, "due", evalCtx); err != nil {
		return nil, err
	}
	if t.Column, err = stringAttr(content.Attributes, "column", evalCtx); err != nil {
		return nil, err
	}
	if t.Urgent, err = boolAttr(content.Attributes, "urgent", evalCtx); err != nil {
		return nil, err
	}
	return t, nil
}

func (l *Loader) translateDefaults(block *hcl.Block, evalCtx *hcl.EvalContext) (*config.Defaults, error) {
	content, diags := block.Body.Content(defaultsSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid defaults block: %w", diags)
	}

	d := &config.Defaults{Origin: originOf(block)}
	var err error
	if d.Assignee, err = stringAttr(content.Attributes, "assignee", evalCtx); err != nil {
		return nil, err
	}
	if d.Priority, err = stringAttr(content.Attributes, "priority", evalCtx); err != nil {
		return nil, err
	}
	if d.Due, err = stringAttr(content.Attributes, "due", evalCtx); err != nil {
		return nil, err
	}

	for _, b := range content.Blocks.OfType("task") {
		task, err := l.translateTask(b, evalCtx)
		if err != nil {
			return nil, err
		}
		d.Tasks = append(d.Tasks, task)
	}
	return d, nil
}

// originOf converts a block's definition range into a ledger origin.
func originOf(block *hcl.Block) ledger.Origin {
	return ledger.At(block.DefRange.Filename, block.DefRange.Start.Line)
}
