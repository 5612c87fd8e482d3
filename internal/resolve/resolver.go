package resolve

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/datadonation/dds/internal/catalog"
	"github.com/datadonation/dds/internal/common"
	"github.com/datadonation/dds/internal/model"
)

// Resolver orchestrates one custom variable through fetch, filter, select,
// and project. Each resolution call owns its own resolver; nothing is shared
// between respondents or variables.
type Resolver struct {
	category   *catalog.Category
	selection  *Selection
	selected   model.Record
	spec       model.CustomVariable
	attributes []model.CustomAttribute
	filters    []*Filter
}

// NewResolver validates the stored spec against the catalog and builds the
// runtime filter and selection objects. Any shape problem (unknown category,
// unknown attribute, malformed filter or selection) fails here, before any
// record is touched.
func NewResolver(spec model.CustomVariable) (*Resolver, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	category, err := catalog.CategoryFor(spec.Provider, spec.DataCategory)
	if err != nil {
		return nil, err
	}
	if !category.CustomVariablesEnabled {
		return nil, common.NewConfigError(
			fmt.Sprintf("category %q does not support custom variables", category.Name), nil)
	}

	attributes := make([]model.CustomAttribute, 0, len(spec.Attributes))
	for _, as := range spec.Attributes {
		attr, err := category.CustomAttributeByName(as.Name)
		if err != nil {
			return nil, common.NewConfigError(
				fmt.Sprintf("custom variable %q", spec.VariableName), err)
		}
		attr.Enabled = as.Enabled
		if as.TestValue != "" {
			attr.TestValue = as.TestValue
		}
		attributes = append(attributes, attr)
	}

	filters := make([]*Filter, 0, len(spec.Filters))
	for _, fs := range spec.Filters {
		attr, err := category.CustomAttributeByName(fs.Attribute)
		if err != nil {
			return nil, common.NewConfigError(
				fmt.Sprintf("custom variable %q filter", spec.VariableName), err)
		}
		filter, err := NewFilter(attr, fs.Operator, fs.Value)
		if err != nil {
			return nil, err
		}
		filters = append(filters, filter)
	}

	var selectionAttr *model.CustomAttribute
	if spec.Selection.Attribute != "" {
		attr, err := category.CustomAttributeByName(spec.Selection.Attribute)
		if err != nil {
			return nil, common.NewConfigError(
				fmt.Sprintf("custom variable %q selection", spec.VariableName), err)
		}
		selectionAttr = &attr
	}
	selection, err := NewSelection(spec.Selection.Strategy, selectionAttr)
	if err != nil {
		return nil, err
	}

	return &Resolver{
		spec:       spec,
		category:   category,
		attributes: attributes,
		filters:    filters,
		selection:  selection,
		selected:   model.Record{},
	}, nil
}

// Resolve fetches the category's records, applies the filters, and stores
// the selected record. A nil source is catalog-only mode: no fetch happens
// and the variable projects as not existing. A fetch failure is transient by
// contract and degrades the same way; it never aborts the batch.
func (r *Resolver) Resolve(ctx context.Context, src model.Source) error {
	var records []model.Record

	if src != nil {
		fetched, err := r.category.FetchRecords(ctx, src)
		if err != nil {
			slog.Warn("Record fetch failed, resolving with no records",
				"variable", r.spec.VariableName,
				"category", r.category.Name,
				"error", err)
		} else {
			records = fetched
		}
	}

	var filtered []model.Record
	for _, record := range records {
		if r.matches(record) {
			filtered = append(filtered, record)
		}
	}

	r.selected = r.selection.Select(filtered)
	return nil
}

// matches reports whether every filter passes. Zero filters keep everything.
func (r *Resolver) matches(record model.Record) bool {
	for _, f := range r.filters {
		if !f.Evaluate(record) {
			return false
		}
	}
	return true
}

// Selected returns the record the selection picked, possibly empty.
func (r *Resolver) Selected() model.Record {
	return r.selected
}

// OutputMap projects the selected record onto qualified names: for each
// enabled attribute the raw value (when present) plus an ".exists" flag, and
// one composite ".exists" flag for the variable as a whole. Zero counts as
// existing; only absence and emptiness do not.
func (r *Resolver) OutputMap() map[string]any {
	out := make(map[string]any, 2*len(r.attributes)+1)

	for _, attr := range r.attributes {
		if !attr.Enabled {
			continue
		}
		qn := r.spec.AttributeQualifiedName(attr.Name)
		v, ok := r.selected[attr.FieldKey]
		if ok {
			out[qn] = v
		}
		out[qn+".exists"] = ok && model.ValueExists(v)
	}

	out[r.spec.QualifiedName()+".exists"] = len(r.selected) > 0

	return out
}

// Schema renders the variable's enabled attributes as catalog entries, used
// by the display path that lists a project's variables without fetching.
func (r *Resolver) Schema() []catalog.VariableSchema {
	var schemas []catalog.VariableSchema
	for _, attr := range r.attributes {
		if !attr.Enabled {
			continue
		}
		schemas = append(schemas, catalog.VariableSchema{
			Name:                 r.spec.AttributeQualifiedName(attr.Name),
			Label:                attr.Label,
			Source:               "custom",
			DataType:             string(attr.Kind),
			Category:             r.category.Name,
			DataProvider:         r.spec.Provider,
			Description:          attr.Description,
			Info:                 attr.Info,
			Unit:                 attr.Unit,
			TestValuePlaceholder: attr.TestValuePlaceholder,
			Provenance:           attr.Provenance,
		})
	}
	return schemas
}
