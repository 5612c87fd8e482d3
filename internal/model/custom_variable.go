package model

import (
	"encoding/json"
	"fmt"

	"github.com/datadonation/dds/internal/common"
)

// FilterSpec is one stored filter condition of a custom variable:
// an attribute name, an operator key, and a literal value.
type FilterSpec struct {
	Attribute string `json:"attr"`
	Operator  string `json:"operator"`
	Value     string `json:"value"`
}

// SelectionSpec is the stored selection strategy of a custom variable.
// Attribute is required unless the strategy is random.
type SelectionSpec struct {
	Strategy  string `json:"strategy"`
	Attribute string `json:"attr,omitempty"`
}

// AttributeSpec enables one of a category's custom attributes for a variable
// and optionally carries a respondent-facing test value.
type AttributeSpec struct {
	Name      string `json:"name"`
	TestValue string `json:"test_value,omitempty"`
	Enabled   bool   `json:"enabled"`
}

// CustomVariable is a user-declared variable computed at runtime by
// filtering and selecting a category's raw records. It is decoded fresh from
// its stored JSON document for every resolution call and never mutated.
type CustomVariable struct {
	VariableName string          `json:"variable_name"`
	Provider     string          `json:"data_provider"`
	DataCategory string          `json:"data_category"`
	Attributes   []AttributeSpec `json:"attributes"`
	Filters      []FilterSpec    `json:"filters"`
	Selection    SelectionSpec   `json:"selection"`
}

// DecodeCustomVariable parses a stored custom-variable document.
func DecodeCustomVariable(data []byte) (CustomVariable, error) {
	var cv CustomVariable
	if err := json.Unmarshal(data, &cv); err != nil {
		return CustomVariable{}, fmt.Errorf("failed to decode custom variable: %w", err)
	}
	if err := cv.Validate(); err != nil {
		return CustomVariable{}, err
	}
	return cv, nil
}

// Encode renders the variable back to its stored JSON form.
func (cv *CustomVariable) Encode() ([]byte, error) {
	data, err := json.Marshal(cv)
	if err != nil {
		return nil, fmt.Errorf("failed to encode custom variable %q: %w", cv.VariableName, err)
	}
	return data, nil
}

// Validate checks the spec's shape. Category and attribute names are
// validated against the catalog later, at resolver construction.
func (cv *CustomVariable) Validate() error {
	if cv.VariableName == "" {
		return common.NewConfigError("custom variable is missing variable_name", nil)
	}
	if cv.Provider == "" {
		return common.NewConfigError(
			fmt.Sprintf("custom variable %q is missing data_provider", cv.VariableName), nil)
	}
	if cv.DataCategory == "" {
		return common.NewConfigError(
			fmt.Sprintf("custom variable %q is missing data_category", cv.VariableName), nil)
	}
	for i, f := range cv.Filters {
		if f.Attribute == "" || f.Operator == "" || f.Value == "" {
			return common.NewConfigError(
				fmt.Sprintf("custom variable %q: filter %d needs attribute, operator, and value",
					cv.VariableName, i), nil)
		}
	}
	if cv.Selection.Strategy == "" {
		return common.NewConfigError(
			fmt.Sprintf("custom variable %q is missing a selection strategy", cv.VariableName), nil)
	}
	return nil
}

// QualifiedName returns the whole-variable qualified name.
func (cv *CustomVariable) QualifiedName() string {
	return CustomName(cv.Provider, cv.DataCategory, cv.VariableName)
}

// AttributeQualifiedName returns the qualified name of one of the variable's
// attributes.
func (cv *CustomVariable) AttributeQualifiedName(attribute string) string {
	return CustomAttributeName(cv.Provider, cv.DataCategory, cv.VariableName, attribute)
}
