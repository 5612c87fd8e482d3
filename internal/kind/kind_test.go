package kind

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfer(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		want    Kind
	}{
		{name: "ISO date", literal: "2024-05-01", want: Date},
		{name: "RFC3339 timestamp", literal: "2024-05-01T06:30:00Z", want: Date},
		{name: "timestamp without zone", literal: "2024-05-01T06:30:00", want: Date},
		{name: "dotted european date", literal: "01.05.2024", want: Date},
		{name: "integer", literal: "230", want: Number},
		{name: "negative integer", literal: "-1", want: Number},
		{name: "float", literal: "3.25", want: Number},
		{name: "plain text", literal: "Walk", want: Text},
		{name: "empty string", literal: "", want: Text},
		{name: "numberish text", literal: "12 km", want: Text},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Infer(tt.literal))
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Run("first matching format wins", func(t *testing.T) {
		got, err := ParseDate("2024-05-01T06:30:00Z")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 5, 1, 6, 30, 0, 0, time.UTC), got)
	})

	t.Run("date only", func(t *testing.T) {
		got, err := ParseDate("2024-05-01")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("no format matches", func(t *testing.T) {
		_, err := ParseDate("yesterday")
		assert.Error(t, err)
	})
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		want    float64
		wantErr bool
	}{
		{name: "integer", literal: "42", want: 42},
		{name: "negative", literal: "-1", want: -1},
		{name: "float", literal: "3.25", want: 3.25},
		{name: "zero", literal: "0", want: 0},
		{name: "not a number", literal: "many", wantErr: true},
		{name: "empty", literal: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNumber(tt.literal)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLess(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		a, b    string
		want    bool
		wantErr bool
	}{
		{name: "number less", kind: Number, a: "2", b: "10", want: true},
		{name: "number not less", kind: Number, a: "10", b: "2", want: false},
		{name: "date less", kind: Date, a: "2024-01-01", b: "2024-02-01", want: true},
		{name: "date equal", kind: Date, a: "2024-01-01", b: "2024-01-01", want: false},
		{name: "text lexicographic", kind: Text, a: "apple", b: "banana", want: true},
		{name: "number parse failure", kind: Number, a: "abc", b: "2", wantErr: true},
		{name: "date parse failure", kind: Date, a: "2024-01-01", b: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Less(tt.kind, tt.a, tt.b)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(Number, "12"))
	assert.False(t, Valid(Number, "twelve"))
	assert.True(t, Valid(Date, "2024-05-01"))
	assert.False(t, Valid(Date, "May"))
	assert.True(t, Valid(Text, "anything at all"))
}
