// Package resolve turns stored custom-variable declarations into output
// values: fetch the category's records, filter them, select at most one,
// and project the selected record onto qualified names.
package resolve

import (
	"fmt"
	"log/slog"

	"github.com/datadonation/dds/internal/common"
	"github.com/datadonation/dds/internal/kind"
	"github.com/datadonation/dds/internal/model"
)

// Filter is a single predicate over one fetched record: an attribute, an
// operator, and a literal. The operator is resolved from the kind inferred
// from the literal at construction time.
type Filter struct {
	Attribute model.CustomAttribute
	Operator  string
	Literal   string
	op        kind.Operator
}

// NewFilter builds a filter. All three parts are required; a missing part or
// an unknown operator is a configuration error.
func NewFilter(attr model.CustomAttribute, operator, literal string) (*Filter, error) {
	if attr.Name == "" {
		return nil, common.NewConfigError("filter is missing its attribute", nil)
	}
	if operator == "" {
		return nil, common.NewConfigError(
			fmt.Sprintf("filter on %q is missing its operator", attr.Name), nil)
	}
	if literal == "" {
		return nil, common.NewConfigError(
			fmt.Sprintf("filter on %q is missing its value", attr.Name), nil)
	}

	op, err := kind.InferAndResolve(literal, operator)
	if err != nil {
		return nil, common.NewConfigError(
			fmt.Sprintf("filter on %q", attr.Name), err)
	}

	if inferred := kind.Infer(literal); inferred != attr.Kind {
		slog.Warn("Filter literal kind differs from declared attribute kind",
			"attribute", attr.Name,
			"declared_kind", attr.Kind,
			"inferred_kind", inferred,
			"value", literal)
	}

	return &Filter{
		Attribute: attr,
		Operator:  operator,
		Literal:   literal,
		op:        op,
	}, nil
}

// Evaluate applies the filter to one record. A record without the
// attribute's field never matches; it is not an error.
func (f *Filter) Evaluate(record model.Record) bool {
	v, ok := record[f.Attribute.FieldKey]
	if !ok {
		return false
	}
	return f.op.Compare(model.FieldString(v), f.Literal)
}
