package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldString(t *testing.T) {
	tests := []struct {
		value any
		name  string
		want  string
	}{
		{name: "string", value: "Walk", want: "Walk"},
		{name: "integral float renders without decimals", value: float64(234), want: "234"},
		{name: "fractional float", value: 3.25, want: "3.25"},
		{name: "nil", value: nil, want: ""},
		{name: "bool", value: true, want: "true"},
		{name: "int", value: 42, want: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FieldString(tt.value))
		})
	}
}

func TestValueExists(t *testing.T) {
	tests := []struct {
		value any
		name  string
		want  bool
	}{
		{name: "zero exists", value: float64(0), want: true},
		{name: "int zero exists", value: 0, want: true},
		{name: "positive number exists", value: 234.0, want: true},
		{name: "non-empty string exists", value: "Walk", want: true},
		{name: "empty string does not exist", value: "", want: false},
		{name: "nil does not exist", value: nil, want: false},
		{name: "bool does not exist", value: true, want: false},
		{name: "nested map does not exist", value: map[string]any{"a": 1}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValueExists(tt.value))
		})
	}
}
