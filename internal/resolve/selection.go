package resolve

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/datadonation/dds/internal/common"
	"github.com/datadonation/dds/internal/kind"
	"github.com/datadonation/dds/internal/model"
)

// Strategy is the rule used to reduce a filtered record set to at most one.
type Strategy string

// Selection strategies.
const (
	StrategyRandom Strategy = "random"
	StrategyMax    Strategy = "max"
	StrategyMin    Strategy = "min"
)

// Selection reduces a filtered set of records to at most one record.
type Selection struct {
	Attribute *model.CustomAttribute
	Strategy  Strategy
}

// NewSelection builds a selection. Every strategy except random requires an
// attribute to order by.
func NewSelection(strategy string, attr *model.CustomAttribute) (*Selection, error) {
	s := Strategy(strategy)
	switch s {
	case StrategyRandom:
	case StrategyMax, StrategyMin:
		if attr == nil {
			return nil, common.NewConfigError(
				fmt.Sprintf("selection strategy %q requires an attribute", strategy), nil)
		}
	default:
		return nil, common.NewConfigError(
			fmt.Sprintf("unknown selection strategy %q", strategy), nil)
	}
	return &Selection{Strategy: s, Attribute: attr}, nil
}

// Select picks at most one record. The empty input short-circuits to an
// empty record for every strategy. Min and max order by the natural ordering
// of the kind inferred from the first observed value of the attribute's
// field; a record missing that field degrades to an empty result rather
// than an error.
func (s *Selection) Select(records []model.Record) model.Record {
	if len(records) == 0 {
		return model.Record{}
	}

	if s.Strategy == StrategyRandom {
		return records[rand.Intn(len(records))]
	}

	fieldKey := s.Attribute.FieldKey
	first, ok := records[0][fieldKey]
	if !ok {
		slog.Warn("Selection attribute missing from record, selecting nothing",
			"field_key", fieldKey, "strategy", s.Strategy)
		return model.Record{}
	}
	orderKind := kind.Infer(model.FieldString(first))

	best := records[0]
	bestValue := model.FieldString(first)

	for _, record := range records[1:] {
		v, ok := record[fieldKey]
		if !ok {
			slog.Warn("Selection attribute missing from record, selecting nothing",
				"field_key", fieldKey, "strategy", s.Strategy)
			return model.Record{}
		}
		value := model.FieldString(v)

		var better bool
		var err error
		switch s.Strategy {
		case StrategyMin:
			better, err = kind.Less(orderKind, value, bestValue)
		case StrategyMax:
			better, err = kind.Less(orderKind, bestValue, value)
		}
		if err != nil {
			slog.Warn("Selection value not comparable, selecting nothing",
				"field_key", fieldKey, "value", value, "error", err)
			return model.Record{}
		}

		if better {
			best = record
			bestValue = value
		}
	}

	return best
}
