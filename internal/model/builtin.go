package model

import (
	"context"
	"fmt"

	"github.com/datadonation/dds/internal/common"
)

// Extractor computes a built-in variable's value from a live provider
// instance. Exactly one of Plain or Indexed is set, matching the owning
// declaration's IsIndexed flag.
type Extractor struct {
	Plain   func(ctx context.Context, src Source) (any, error)
	Indexed func(ctx context.Context, src Source, index int) (any, error)
}

// BuiltinVariable is one concrete pre-programmed variable of a category.
// Indexed declarations expand to one instance per index; all instances share
// the extractor and differ only in Index.
type BuiltinVariable struct {
	Attribute
	Extractor Extractor `json:"-"`
	Index     int       `json:"index,omitempty"`
	IsIndexed bool      `json:"is_indexed"`
}

// Extract invokes the variable's extractor against a live provider instance.
func (v *BuiltinVariable) Extract(ctx context.Context, src Source) (any, error) {
	if v.IsIndexed {
		if v.Extractor.Indexed == nil {
			return nil, fmt.Errorf("builtin variable %q has no indexed extractor", v.Name)
		}
		return v.Extractor.Indexed(ctx, src, v.Index)
	}
	if v.Extractor.Plain == nil {
		return nil, fmt.Errorf("builtin variable %q has no extractor", v.Name)
	}
	return v.Extractor.Plain(ctx, src)
}

// BuiltinSpec declares a built-in variable before expansion. An indexed
// declaration carries an inclusive index range.
type BuiltinSpec struct {
	Attribute
	Extractor  Extractor
	IndexStart int
	IndexEnd   int
	IsIndexed  bool
}

// ExpandBuiltin turns a declaration into its concrete variable group: one
// element when not indexed, otherwise one element per index in
// [IndexStart, IndexEnd]. A reversed range is a construction-time contract
// failure.
func ExpandBuiltin(spec BuiltinSpec) ([]BuiltinVariable, error) {
	if !spec.IsIndexed {
		return []BuiltinVariable{{
			Attribute: spec.Attribute,
			Extractor: spec.Extractor,
		}}, nil
	}

	if spec.IndexEnd < spec.IndexStart {
		return nil, common.NewConfigError(
			fmt.Sprintf("builtin variable %q: index_end %d is less than index_start %d",
				spec.Name, spec.IndexEnd, spec.IndexStart), nil)
	}

	group := make([]BuiltinVariable, 0, spec.IndexEnd-spec.IndexStart+1)
	for i := spec.IndexStart; i <= spec.IndexEnd; i++ {
		attr := spec.Attribute
		attr.Label = fmt.Sprintf("%s %d", spec.Label, i)
		group = append(group, BuiltinVariable{
			Attribute: attr,
			Extractor: spec.Extractor,
			IsIndexed: true,
			Index:     i,
		})
	}
	return group, nil
}
