package model

import (
	"github.com/datadonation/dds/internal/kind"
)

// Origin records where an attribute's data comes from: the provider method
// and remote endpoint that produce it.
type Origin struct {
	Method   string `json:"method"`
	Endpoint string `json:"endpoint,omitempty"`
}

// Attribute is the static descriptor of a single emittable value.
type Attribute struct {
	Name                 string    `json:"name"`
	Label                string    `json:"label"`
	Kind                 kind.Kind `json:"data_type"`
	Description          string    `json:"description,omitempty"`
	Info                 string    `json:"info,omitempty"`
	Unit                 string    `json:"unit,omitempty"`
	TestValue            string    `json:"test_value,omitempty"`
	TestValuePlaceholder string    `json:"test_value_placeholder,omitempty"`
	Provenance           []Origin  `json:"data_origin,omitempty"`
}

// CustomAttribute describes a value a custom variable can read off a raw
// fetched record. FieldKey names the record field it reads; there is no
// extractor because the value comes from data, not code.
type CustomAttribute struct {
	Attribute
	FieldKey string `json:"field_key"`
	Enabled  bool   `json:"enabled"`
}
