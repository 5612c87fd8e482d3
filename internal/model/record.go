// Package model defines the core data structures for the dds application.
package model

import (
	"context"
	"fmt"
	"strconv"
)

// Record is one raw, string-keyed unit of provider data, e.g. one activity
// log entry. Values are scalars or nested structures as decoded from the
// provider API.
type Record map[string]any

// Source is a live provider instance: a per-provider accessor that returns
// the ordered raw records of one data category. Implementations typically
// hit a remote OAuth-authenticated API.
type Source interface {
	FetchRecords(ctx context.Context, category string) ([]Record, error)
}

// FieldString renders a record field value as the string form the operator
// predicates and selection ordering work on.
func FieldString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		// JSON numbers decode as float64; render integers without a decimal
		// point so numeric literals round-trip.
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// ValueExists reports whether a projected value counts as present: any
// number (including zero) or a non-empty string. Absent keys, nil, empty
// strings, and composite values do not exist.
func ValueExists(v any) bool {
	switch val := v.(type) {
	case string:
		return val != ""
	case float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	default:
		return false
	}
}
