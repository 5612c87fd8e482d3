package resolve

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/datadonation/dds/internal/catalog"
	"github.com/datadonation/dds/internal/kind"
	"github.com/datadonation/dds/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var registerTracker sync.Once

// registerTestProvider installs a fitness-tracker style descriptor the
// resolve tests declare variables against. The registry is process-wide, so
// registration happens once for the whole package.
func registerTestProvider(t *testing.T) {
	t.Helper()
	registerTracker.Do(func() {
		countGroup, err := model.ExpandBuiltin(model.BuiltinSpec{
			Attribute: model.Attribute{Name: "activity_count", Label: "Activity count", Kind: kind.Number},
			Extractor: model.Extractor{Plain: func(ctx context.Context, src model.Source) (any, error) {
				records, err := src.FetchRecords(ctx, "activities")
				if err != nil {
					return nil, err
				}
				return len(records), nil
			}},
		})
		if err != nil {
			t.Fatal(err)
		}

		stepsGroup, err := model.ExpandBuiltin(model.BuiltinSpec{
			Attribute:  model.Attribute{Name: "steps_day", Label: "Steps", Kind: kind.Number},
			IsIndexed:  true,
			IndexStart: 1,
			IndexEnd:   3,
			Extractor: model.Extractor{Indexed: func(_ context.Context, _ model.Source, index int) (any, error) {
				return index * 100, nil
			}},
		})
		if err != nil {
			t.Fatal(err)
		}

		brokenGroup, err := model.ExpandBuiltin(model.BuiltinSpec{
			Attribute: model.Attribute{Name: "broken_metric", Label: "Broken metric", Kind: kind.Number},
			Extractor: model.Extractor{Plain: func(_ context.Context, _ model.Source) (any, error) {
				return nil, errors.New("upstream exploded")
			}},
		})
		if err != nil {
			t.Fatal(err)
		}

		err = catalog.Register(catalog.Descriptor{
			Type:  "tracker",
			Label: "Tracker",
			Categories: []catalog.Category{
				{
					Name:                   "activities",
					Label:                  "Activities",
					CustomVariablesEnabled: true,
					BuiltinGroups:          [][]model.BuiltinVariable{countGroup, stepsGroup, brokenGroup},
					CVAttributes: []model.CustomAttribute{
						{
							Attribute: model.Attribute{Name: "activity_name", Label: "Activity name", Kind: kind.Text},
							FieldKey:  "activityName",
						},
						{
							Attribute: model.Attribute{Name: "calories", Label: "Calories", Kind: kind.Number},
							FieldKey:  "calories",
						},
						{
							Attribute: model.Attribute{Name: "original_start_time", Label: "Start time", Kind: kind.Date},
							FieldKey:  "originalStartTime",
						},
					},
				},
				{
					Name:  "heart_rate",
					Label: "Heart rate",
					BuiltinGroups: [][]model.BuiltinVariable{{
						{Attribute: model.Attribute{Name: "resting_rate", Kind: kind.Number}},
					}},
				},
			},
		})
		if err != nil {
			t.Fatal(err)
		}
	})
}

func walkRecords() []model.Record {
	return []model.Record{
		{"activityName": "Walk", "calories": float64(-1), "originalStartTime": "2024-05-03T06:30:00Z"},
		{"activityName": "Walk", "calories": float64(234), "originalStartTime": "2024-05-01T06:30:00Z"},
		{"activityName": "Walk", "calories": float64(790), "originalStartTime": "2024-05-02T06:30:00Z"},
	}
}

func longestWalkSpec() model.CustomVariable {
	return model.CustomVariable{
		VariableName: "longest_walk",
		Provider:     "tracker",
		DataCategory: "activities",
		Attributes: []model.AttributeSpec{
			{Name: "calories", Enabled: true},
			{Name: "original_start_time", Enabled: true},
			{Name: "activity_name", Enabled: false},
		},
		Filters: []model.FilterSpec{
			{Attribute: "calories", Operator: "gt", Value: "230"},
		},
		Selection: model.SelectionSpec{Strategy: "min", Attribute: "original_start_time"},
	}
}

func TestResolver_EndToEnd(t *testing.T) {
	registerTestProvider(t)

	r, err := NewResolver(longestWalkSpec())
	require.NoError(t, err)

	src := &fakeSource{records: map[string][]model.Record{"activities": walkRecords()}}
	require.NoError(t, r.Resolve(context.Background(), src))

	// gt 230 keeps 234 and 790; min start time picks the 234 record.
	selected := r.Selected()
	assert.Equal(t, float64(234), selected["calories"])

	out := r.OutputMap()
	assert.Equal(t, float64(234), out["dds.tracker.custom.activities.longest_walk.calories"])
	assert.Equal(t, true, out["dds.tracker.custom.activities.longest_walk.calories.exists"])
	assert.Equal(t, "2024-05-01T06:30:00Z", out["dds.tracker.custom.activities.longest_walk.original_start_time"])
	assert.Equal(t, true, out["dds.tracker.custom.activities.longest_walk.exists"])

	// Disabled attributes are not projected.
	assert.NotContains(t, out, "dds.tracker.custom.activities.longest_walk.activity_name")
	assert.NotContains(t, out, "dds.tracker.custom.activities.longest_walk.activity_name.exists")
}

func TestResolver_NoMatchProjectsNotExisting(t *testing.T) {
	registerTestProvider(t)

	spec := longestWalkSpec()
	spec.Filters = []model.FilterSpec{
		{Attribute: "calories", Operator: "gt", Value: "10000"},
	}
	r, err := NewResolver(spec)
	require.NoError(t, err)

	src := &fakeSource{records: map[string][]model.Record{"activities": walkRecords()}}
	require.NoError(t, r.Resolve(context.Background(), src))

	out := r.OutputMap()
	assert.Equal(t, false, out["dds.tracker.custom.activities.longest_walk.exists"])
	assert.Equal(t, false, out["dds.tracker.custom.activities.longest_walk.calories.exists"])
	assert.NotContains(t, out, "dds.tracker.custom.activities.longest_walk.calories")
}

func TestResolver_MultipleFiltersAnd(t *testing.T) {
	registerTestProvider(t)

	spec := longestWalkSpec()
	spec.Filters = []model.FilterSpec{
		{Attribute: "calories", Operator: "gt", Value: "230"},
		{Attribute: "original_start_time", Operator: "lt", Value: "2024-05-02"},
	}
	r, err := NewResolver(spec)
	require.NoError(t, err)

	src := &fakeSource{records: map[string][]model.Record{"activities": walkRecords()}}
	require.NoError(t, r.Resolve(context.Background(), src))

	// Only the 234 record passes both filters.
	assert.Equal(t, float64(234), r.Selected()["calories"])
}

func TestResolver_ZeroFiltersKeepEverything(t *testing.T) {
	registerTestProvider(t)

	spec := longestWalkSpec()
	spec.Filters = nil
	spec.Selection = model.SelectionSpec{Strategy: "max", Attribute: "calories"}
	r, err := NewResolver(spec)
	require.NoError(t, err)

	src := &fakeSource{records: map[string][]model.Record{"activities": walkRecords()}}
	require.NoError(t, r.Resolve(context.Background(), src))

	assert.Equal(t, float64(790), r.Selected()["calories"])
}

func TestResolver_FetchFailureDegrades(t *testing.T) {
	registerTestProvider(t)

	r, err := NewResolver(longestWalkSpec())
	require.NoError(t, err)

	src := &fakeSource{err: errors.New("provider timeout")}
	require.NoError(t, r.Resolve(context.Background(), src))

	out := r.OutputMap()
	assert.Equal(t, false, out["dds.tracker.custom.activities.longest_walk.exists"])
}

func TestResolver_CatalogOnly(t *testing.T) {
	registerTestProvider(t)

	r, err := NewResolver(longestWalkSpec())
	require.NoError(t, err)

	require.NoError(t, r.Resolve(context.Background(), nil))
	out := r.OutputMap()
	assert.Equal(t, false, out["dds.tracker.custom.activities.longest_walk.exists"])
}

func TestResolver_ZeroValueExists(t *testing.T) {
	registerTestProvider(t)

	spec := longestWalkSpec()
	spec.Filters = nil
	spec.Selection = model.SelectionSpec{Strategy: "min", Attribute: "calories"}
	r, err := NewResolver(spec)
	require.NoError(t, err)

	src := &fakeSource{records: map[string][]model.Record{"activities": {
		{"activityName": "Rest", "calories": float64(0), "originalStartTime": "2024-05-01T06:30:00Z"},
		{"activityName": "Walk", "calories": float64(234), "originalStartTime": "2024-05-02T06:30:00Z"},
	}}}
	require.NoError(t, r.Resolve(context.Background(), src))

	out := r.OutputMap()
	assert.Equal(t, float64(0), out["dds.tracker.custom.activities.longest_walk.calories"])
	assert.Equal(t, true, out["dds.tracker.custom.activities.longest_walk.calories.exists"])
}

func TestNewResolver_ConfigErrors(t *testing.T) {
	registerTestProvider(t)

	tests := []struct {
		mutate func(*model.CustomVariable)
		name   string
	}{
		{name: "unknown category", mutate: func(cv *model.CustomVariable) { cv.DataCategory = "meals" }},
		{name: "category without custom variables", mutate: func(cv *model.CustomVariable) { cv.DataCategory = "heart_rate" }},
		{name: "unknown attribute", mutate: func(cv *model.CustomVariable) { cv.Attributes[0].Name = "bogus" }},
		{name: "unknown filter attribute", mutate: func(cv *model.CustomVariable) { cv.Filters[0].Attribute = "bogus" }},
		{name: "unknown selection attribute", mutate: func(cv *model.CustomVariable) { cv.Selection.Attribute = "bogus" }},
		{name: "unknown selection strategy", mutate: func(cv *model.CustomVariable) { cv.Selection.Strategy = "median" }},
		{name: "unknown operator for inferred kind", mutate: func(cv *model.CustomVariable) { cv.Filters[0].Operator = "contains" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := longestWalkSpec()
			tt.mutate(&spec)
			_, err := NewResolver(spec)
			assert.Error(t, err)
		})
	}
}

func TestResolver_Schema(t *testing.T) {
	registerTestProvider(t)

	r, err := NewResolver(longestWalkSpec())
	require.NoError(t, err)

	schemas := r.Schema()
	require.Len(t, schemas, 2)
	assert.Equal(t, "dds.tracker.custom.activities.longest_walk.calories", schemas[0].Name)
	assert.Equal(t, "custom", schemas[0].Source)
	assert.Equal(t, "number", schemas[0].DataType)
	assert.Equal(t, "tracker", schemas[0].DataProvider)
}

type fakeSource struct {
	records map[string][]model.Record
	err     error
	calls   int
}

func (s *fakeSource) FetchRecords(_ context.Context, category string) ([]model.Record, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	records, ok := s.records[category]
	if !ok {
		return nil, fmt.Errorf("no records for category %q", category)
	}
	return records, nil
}
