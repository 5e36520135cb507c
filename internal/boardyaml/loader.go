// Package boardyaml is the YAML implementation of config.Loader. It mirrors
// the HCL loader: parse errors fail the load, semantic values are carried
// into the model verbatim for the builder replay to validate, and YAML node
// lines become ledger origins.
package boardyaml

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vk/boardforge/internal/config"
	"github.com/vk/boardforge/internal/ctxlog"
	"github.com/vk/boardforge/internal/ledger"
)

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML board definition loader.
func NewLoader() *Loader {
	return &Loader{}
}

type boardDoc struct {
	Project *yaml.Node `yaml:"project"`
}

type projectDoc struct {
	Name         string      `yaml:"name"`
	Owner        string      `yaml:"owner"`
	AllowPastDue bool        `yaml:"allow_past_due"`
	Columns      []yaml.Node `yaml:"columns"`
	Tasks        []yaml.Node `yaml:"tasks"`
	Defaults     []yaml.Node `yaml:"defaults"`
}

type columnDoc struct {
	Name    string `yaml:"name"`
	Backlog bool   `yaml:"backlog"`
}

type taskDoc struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Assignee    string `yaml:"assignee"`
	Priority    string `yaml:"priority"`
	Due         string `yaml:"due"`
	Column      string `yaml:"column"`
	Urgent      bool   `yaml:"urgent"`
}

type defaultsDoc struct {
	Assignee string      `yaml:"assignee"`
	Priority string      `yaml:"priority"`
	Due      string      `yaml:"due"`
	Tasks    []yaml.Node `yaml:"tasks"`
}

// Load parses one .yaml board file and translates it into the model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML board loader started.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read board file %s: %w", path, err)
	}

	var doc boardDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse board file %s: %w", path, err)
	}
	if doc.Project == nil {
		return nil, fmt.Errorf("board file %s must define a project", path)
	}

	project, err := translateProject(path, doc.Project)
	if err != nil {
		return nil, fmt.Errorf("invalid board file %s: %w", path, err)
	}

	logger.Debug("YAML board loading complete.",
		"project", project.Name, "columns", len(project.Columns),
		"tasks", len(project.Tasks), "defaults_blocks", len(project.Defaults))
	return &config.Model{Project: project}, nil
}

func translateProject(path string, node *yaml.Node) (*config.Project, error) {
	var doc projectDoc
	if err := node.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid project: %w", err)
	}

	p := &config.Project{
		Name:         doc.Name,
		Owner:        doc.Owner,
		AllowPastDue: doc.AllowPastDue,
		Origin:       ledger.At(path, node.Line),
	}

	for i := range doc.Columns {
		column, err := translateColumn(path, &doc.Columns[i])
		if err != nil {
			return nil, err
		}
		p.Columns = append(p.Columns, column)
	}
	for i := range doc.Tasks {
		task, err := translateTask(path, &doc.Tasks[i])
		if err != nil {
			return nil, err
		}
		p.Tasks = append(p.Tasks, task)
	}
	for i := range doc.Defaults {
		defaults, err := translateDefaults(path, &doc.Defaults[i])
		if err != nil {
			return nil, err
		}
		p.Defaults = append(p.Defaults, defaults)
	}
	return p, nil
}

func translateColumn(path string, node *yaml.Node) (*config.Column, error) {
	var doc columnDoc
	if err := node.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid column at line %d: %w", node.Line, err)
	}
	return &config.Column{
		Name:    doc.Name,
		Backlog: doc.Backlog,
		Origin:  ledger.At(path, node.Line),
	}, nil
}

func translateTask(path string, node *yaml.Node) (*config.Task, error) {
	var doc taskDoc
	if err := node.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid task at line %d: %w", node.Line, err)
	}
	return &config.Task{
		Title:       doc.Title,
		Description: doc.Description,
		Assignee:    doc.Assignee,
		Priority:    doc.Priority,
		Due:         doc.Due,
		Column:      doc.Column,
		Urgent:      doc.Urgent,
		Origin:      ledger.At(path, node.Line),
	}, nil
}

func translateDefaults(path string, node *yaml.Node) (*config.Defaults, error) {
	var doc defaultsDoc
	if err := node.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid defaults block at line %d: %w", node.Line, err)
	}

	d := &config.Defaults{
		Assignee: doc.Assignee,
		Priority: doc.Priority,
		Due:      doc.Due,
		Origin:   ledger.At(path, node.Line),
	}
	for i := range doc.Tasks {
		task, err := translateTask(path, &doc.Tasks[i])
		if err != nil {
			return nil, err
		}
		d.Tasks = append(d.Tasks, task)
	}
	return d, nil
}
