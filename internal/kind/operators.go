package kind

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/datadonation/dds/internal/common"
)

// Operator is a binary predicate over a record field value and a filter
// literal, both given as raw strings. Date and Number operators compare the
// parsed values; Text operators work on the strings directly.
type Operator struct {
	Compare func(fieldValue, literal string) bool
	Key     string
	Label   string
}

func dateOp(key, label string, cmp func(a, b int) bool) Operator {
	return Operator{
		Key:   key,
		Label: label,
		Compare: func(fieldValue, literal string) bool {
			fv, err := ParseDate(fieldValue)
			if err != nil {
				return false
			}
			lv, err := ParseDate(literal)
			if err != nil {
				return false
			}
			return cmp(fv.Compare(lv), 0)
		},
	}
}

func numberOp(key, label string, cmp func(a, b float64) bool) Operator {
	return Operator{
		Key:   key,
		Label: label,
		Compare: func(fieldValue, literal string) bool {
			fv, err := ParseNumber(fieldValue)
			if err != nil {
				return false
			}
			lv, err := ParseNumber(literal)
			if err != nil {
				return false
			}
			return cmp(fv, lv)
		},
	}
}

func textOp(key, label string, cmp func(fieldValue, literal string) bool) Operator {
	return Operator{Key: key, Label: label, Compare: cmp}
}

var dateOperators = map[string]Operator{
	"eq": dateOp("eq", "is equal to", func(a, b int) bool { return a == b }),
	"ne": dateOp("ne", "is not equal to", func(a, b int) bool { return a != b }),
	"gt": dateOp("gt", "is after", func(a, b int) bool { return a > b }),
	"ge": dateOp("ge", "is on or after", func(a, b int) bool { return a >= b }),
	"lt": dateOp("lt", "is before", func(a, b int) bool { return a < b }),
	"le": dateOp("le", "is on or before", func(a, b int) bool { return a <= b }),
}

var numberOperators = map[string]Operator{
	"eq": numberOp("eq", "is equal to", func(a, b float64) bool { return a == b }),
	"ne": numberOp("ne", "is not equal to", func(a, b float64) bool { return a != b }),
	"gt": numberOp("gt", "is greater than", func(a, b float64) bool { return a > b }),
	"ge": numberOp("ge", "is greater than or equal to", func(a, b float64) bool { return a >= b }),
	"lt": numberOp("lt", "is less than", func(a, b float64) bool { return a < b }),
	"le": numberOp("le", "is less than or equal to", func(a, b float64) bool { return a <= b }),
}

var textOperators = map[string]Operator{
	"eq": textOp("eq", "is equal to", func(f, l string) bool { return f == l }),
	"ne": textOp("ne", "is not equal to", func(f, l string) bool { return f != l }),
	"contains": textOp("contains", "contains", func(f, l string) bool {
		return strings.Contains(f, l)
	}),
	"not_contains": textOp("not_contains", "does not contain", func(f, l string) bool {
		return !strings.Contains(f, l)
	}),
	"starts_with": textOp("starts_with", "starts with", func(f, l string) bool {
		return strings.HasPrefix(f, l)
	}),
	"ends_with": textOp("ends_with", "ends with", func(f, l string) bool {
		return strings.HasSuffix(f, l)
	}),
	"matches_regex": textOp("matches_regex", "matches regex", func(f, l string) bool {
		re, err := regexp.Compile(l)
		if err != nil {
			slog.Warn("Invalid regex in filter, treating as non-match", "pattern", l, "error", err)
			return false
		}
		return re.MatchString(f)
	}),
}

// Operators returns the operator table for a kind.
func Operators(k Kind) map[string]Operator {
	switch k {
	case Date:
		return dateOperators
	case Number:
		return numberOperators
	default:
		return textOperators
	}
}

// OperatorFor resolves an operator key within a kind's table.
func OperatorFor(k Kind, key string) (Operator, error) {
	op, ok := Operators(k)[key]
	if !ok {
		return Operator{}, fmt.Errorf("%w: %q for kind %s", common.ErrUnknownOperator, key, k)
	}
	return op, nil
}

// InferAndResolve resolves an operator by the kind inferred from the filter
// literal. Dispatching on the literal's inferred kind, not the attribute's
// declared kind, matches the historical behavior of stored filters; this
// function is the single place that behavior lives.
func InferAndResolve(literal, operatorKey string) (Operator, error) {
	return OperatorFor(Infer(literal), operatorKey)
}
