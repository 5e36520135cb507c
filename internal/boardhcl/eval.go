package boardhcl

import (
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// newEvalContext builds the expression scope available inside board files.
// `today` is the current calendar date, so `due = today` style expressions
// are possible, and `priority` exposes the canonical level spellings.
func newEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"today": cty.StringVal(time.Now().Format("2006-01-02")),
			"priority": cty.ObjectVal(map[string]cty.Value{
				"low":      cty.StringVal("Low"),
				"normal":   cty.StringVal("Normal"),
				"high":     cty.StringVal("High"),
				"critical": cty.StringVal("Critical"),
			}),
		},
	}
}

// stringAttr evaluates an optional string attribute. Absent attributes
// yield the empty string.
func stringAttr(attrs hcl.Attributes, name string, evalCtx *hcl.EvalContext) (string, error) {
	attr, ok := attrs[name]
	if !ok {
		return "", nil
	}
	val, diags := attr.Expr.Value(evalCtx)
	if diags.HasErrors() {
		return "", fmt.Errorf("failed to evaluate attribute %q: %w", name, diags)
	}
	val, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("attribute %q is not a string: %w", name, err)
	}
	if val.IsNull() {
		return "", nil
	}
	return val.AsString(), nil
}

// boolAttr evaluates an optional bool attribute. Absent attributes yield
// false.
func boolAttr(attrs hcl.Attributes, name string, evalCtx *hcl.EvalContext) (bool, error) {
	attr, ok := attrs[name]
	if !ok {
		return false, nil
	}
	val, diags := attr.Expr.Value(evalCtx)
	if diags.HasErrors() {
		return false, fmt.Errorf("failed to evaluate attribute %q: %w", name, diags)
	}
	val, err := convert.Convert(val, cty.Bool)
	if err != nil {
		return false, fmt.Errorf("attribute %q is not a bool: %w", name, err)
	}
	if val.IsNull() {
		return false, nil
	}
	return val.True(), nil
}
