// Package catalog holds the static variable catalog: data categories, the
// provider registry, and the schema builder the rest of the application
// reads the catalog through.
package catalog

import (
	"context"
	"fmt"

	"github.com/datadonation/dds/internal/common"
	"github.com/datadonation/dds/internal/model"
)

// Category groups a provider's records under one semantic topic, e.g.
// "Activities". It declares the category's built-in variables and the
// attribute schema custom variables can read.
type Category struct {
	Name                   string
	Label                  string
	Provenance             []model.Origin
	CVAttributes           []model.CustomAttribute
	BuiltinGroups          [][]model.BuiltinVariable
	CustomVariablesEnabled bool
}

// FetchRecords retrieves the category's raw records from a live provider
// instance. It is a pass-through: callers cache the result per resolution
// call rather than fetching twice.
func (c *Category) FetchRecords(ctx context.Context, src model.Source) ([]model.Record, error) {
	return src.FetchRecords(ctx, c.Name)
}

// Builtins returns the category's built-in variables flattened from their
// declaration groups.
func (c *Category) Builtins() []model.BuiltinVariable {
	var flat []model.BuiltinVariable
	for _, group := range c.BuiltinGroups {
		flat = append(flat, group...)
	}
	return flat
}

// BuiltinByName finds a built-in variable by name, and index when the
// declaration is indexed.
func (c *Category) BuiltinByName(name string, index int) (model.BuiltinVariable, error) {
	for _, v := range c.Builtins() {
		if v.Name != name {
			continue
		}
		if !v.IsIndexed || v.Index == index {
			return v, nil
		}
	}
	return model.BuiltinVariable{}, fmt.Errorf("builtin variable %q in category %q: %w",
		name, c.Name, common.ErrNotFound)
}

// CustomAttributeByName finds one of the category's custom attributes.
func (c *Category) CustomAttributeByName(name string) (model.CustomAttribute, error) {
	for _, attr := range c.CVAttributes {
		if attr.Name == name {
			return attr, nil
		}
	}
	return model.CustomAttribute{}, fmt.Errorf("custom attribute %q in category %q: %w",
		name, c.Name, common.ErrNotFound)
}
