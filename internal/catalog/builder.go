package catalog

import (
	"sort"

	"github.com/datadonation/dds/internal/model"
)

// VariableSchema is the catalog export form of one variable: the qualified
// name plus the display metadata the HTTP layer renders forms from.
type VariableSchema struct {
	Name                 string         `json:"name"`
	Label                string         `json:"label"`
	Source               string         `json:"type"`
	DataType             string         `json:"data_type"`
	Category             string         `json:"category"`
	DataProvider         string         `json:"data_provider"`
	Description          string         `json:"description,omitempty"`
	Info                 string         `json:"info,omitempty"`
	Unit                 string         `json:"unit,omitempty"`
	TestValuePlaceholder string         `json:"test_value_placeholder,omitempty"`
	Provenance           []model.Origin `json:"data_origin,omitempty"`
	Index                int            `json:"index,omitempty"`
	IsIndexed            bool           `json:"is_indexed"`
}

// CVAttributeSchema is the catalog export form of one custom-variable
// attribute of a category.
type CVAttributeSchema struct {
	Name                 string         `json:"name"`
	Label                string         `json:"label"`
	DataType             string         `json:"data_type"`
	FieldKey             string         `json:"field_key"`
	Description          string         `json:"description,omitempty"`
	Info                 string         `json:"info,omitempty"`
	Unit                 string         `json:"unit,omitempty"`
	TestValuePlaceholder string         `json:"test_value_placeholder,omitempty"`
	Provenance           []model.Origin `json:"data_origin,omitempty"`
}

// CategorySchema is the catalog export form of one data category.
type CategorySchema struct {
	Label                  string              `json:"label"`
	Value                  string              `json:"value"`
	CVAttributes           []CVAttributeSchema `json:"cv_attributes"`
	BuiltinVariables       []VariableSchema    `json:"builtin_variables"`
	Provenance             []model.Origin      `json:"data_origin,omitempty"`
	CustomVariablesEnabled bool                `json:"custom_variables_enabled"`
}

func builtinSchema(provider string, category *Category, v *model.BuiltinVariable) VariableSchema {
	return VariableSchema{
		Name:                 v.QualifiedName(provider, category.Name),
		Label:                v.Label,
		Source:               "builtin",
		DataType:             string(v.Kind),
		Category:             category.Name,
		DataProvider:         provider,
		Description:          v.Description,
		Info:                 v.Info,
		Unit:                 v.Unit,
		TestValuePlaceholder: v.TestValuePlaceholder,
		Provenance:           v.Provenance,
		IsIndexed:            v.IsIndexed,
		Index:                v.Index,
	}
}

func cvAttributeSchema(attr *model.CustomAttribute) CVAttributeSchema {
	return CVAttributeSchema{
		Name:                 attr.Name,
		Label:                attr.Label,
		DataType:             string(attr.Kind),
		FieldKey:             attr.FieldKey,
		Description:          attr.Description,
		Info:                 attr.Info,
		Unit:                 attr.Unit,
		TestValuePlaceholder: attr.TestValuePlaceholder,
		Provenance:           attr.Provenance,
	}
}

func categorySchema(provider string, c *Category) CategorySchema {
	schema := CategorySchema{
		Label:                  c.Label,
		Value:                  c.Name,
		CustomVariablesEnabled: c.CustomVariablesEnabled,
		Provenance:             c.Provenance,
		CVAttributes:           make([]CVAttributeSchema, 0, len(c.CVAttributes)),
		BuiltinVariables:       []VariableSchema{},
	}
	for i := range c.CVAttributes {
		schema.CVAttributes = append(schema.CVAttributes, cvAttributeSchema(&c.CVAttributes[i]))
	}
	for _, v := range c.Builtins() {
		schema.BuiltinVariables = append(schema.BuiltinVariables, builtinSchema(provider, c, &v))
	}
	return schema
}

// ForProvider builds the category schemas of one provider type. The result
// is computed from static declarations only; callers build it once at
// startup and cache it for the process lifetime.
func ForProvider(providerType string) ([]CategorySchema, error) {
	d, err := Provider(providerType)
	if err != nil {
		return nil, err
	}

	schemas := make([]CategorySchema, 0, len(d.Categories))
	for i := range d.Categories {
		schemas = append(schemas, categorySchema(d.Type, &d.Categories[i]))
	}
	return schemas, nil
}

// All aggregates every built-in variable across all registered providers,
// sorted by (provider type, label), for the project-wide catalog endpoint.
func All() []VariableSchema {
	var all []VariableSchema
	for _, d := range Providers() {
		for i := range d.Categories {
			c := &d.Categories[i]
			for _, v := range c.Builtins() {
				all = append(all, builtinSchema(d.Type, c, &v))
			}
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].DataProvider != all[j].DataProvider {
			return all[i].DataProvider < all[j].DataProvider
		}
		return all[i].Label < all[j].Label
	})
	return all
}

// FindBuiltin locates a built-in variable by its qualified name across all
// registered providers.
func FindBuiltin(qualifiedName string) (model.BuiltinVariable, Descriptor, *Category, bool) {
	for _, d := range Providers() {
		for i := range d.Categories {
			c := &d.Categories[i]
			for _, v := range c.Builtins() {
				if v.QualifiedName(d.Type, c.Name) == qualifiedName {
					return v, d, c, true
				}
			}
		}
	}
	return model.BuiltinVariable{}, Descriptor{}, nil, false
}
