// Package kind implements the value-kind registry: parsers, operator tables,
// and kind inference for the literal values used by filters and selections.
package kind

import (
	"fmt"
	"strconv"
	"time"
)

// Kind identifies one of the three value kinds a variable can carry.
type Kind string

// The three value kinds. Text is the fallback: every literal parses as Text.
const (
	Date   Kind = "date"
	Number Kind = "number"
	Text   Kind = "text"
)

// dateFormats is the ordered list of accepted date layouts. The first layout
// that parses wins; order matters for ambiguous inputs.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"02.01.2006",
}

// ParseDate parses a literal against the ordered date format list.
func ParseDate(literal string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, literal); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("value %q does not match any date format", literal)
}

// ParseNumber parses a literal as an integer first, then as a float.
func ParseNumber(literal string) (float64, error) {
	if i, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return float64(i), nil
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return 0, fmt.Errorf("value %q is not a number", literal)
	}
	return f, nil
}

// Valid reports whether literal parses as the given kind. Text accepts
// everything.
func Valid(k Kind, literal string) bool {
	switch k {
	case Date:
		_, err := ParseDate(literal)
		return err == nil
	case Number:
		_, err := ParseNumber(literal)
		return err == nil
	default:
		return true
	}
}

// Infer determines the kind of a raw literal: date first, then number, with
// text as the fallback. It never fails.
func Infer(literal string) Kind {
	if _, err := ParseDate(literal); err == nil {
		return Date
	}
	if _, err := ParseNumber(literal); err == nil {
		return Number
	}
	return Text
}

// Less reports whether a sorts before b under the natural ordering of the
// given kind. A parse failure on either side is returned as an error so the
// caller can degrade instead of guessing an order.
func Less(k Kind, a, b string) (bool, error) {
	switch k {
	case Date:
		ta, err := ParseDate(a)
		if err != nil {
			return false, err
		}
		tb, err := ParseDate(b)
		if err != nil {
			return false, err
		}
		return ta.Before(tb), nil
	case Number:
		na, err := ParseNumber(a)
		if err != nil {
			return false, err
		}
		nb, err := ParseNumber(b)
		if err != nil {
			return false, err
		}
		return na < nb, nil
	default:
		return a < b, nil
	}
}
