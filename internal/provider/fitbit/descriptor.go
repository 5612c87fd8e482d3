// Package fitbit declares the Fitbit data provider: its catalog descriptor
// and the OAuth2 API client that fetches raw records.
package fitbit

import (
	"context"
	"time"

	"github.com/datadonation/dds/internal/catalog"
	"github.com/datadonation/dds/internal/kind"
	"github.com/datadonation/dds/internal/model"
)

// ProviderType is the registry key of the Fitbit provider.
const ProviderType = "fitbit"

// Register adds the Fitbit descriptor to the catalog registry. Call once at
// startup.
func Register() error {
	activities, err := activitiesCategory()
	if err != nil {
		return err
	}
	sleep, err := sleepCategory()
	if err != nil {
		return err
	}

	return catalog.Register(catalog.Descriptor{
		Type:       ProviderType,
		Label:      "Fitbit",
		Categories: []catalog.Category{activities, sleep},
	})
}

func activitiesCategory() (catalog.Category, error) {
	provenance := []model.Origin{
		{Method: "fetch_activities", Endpoint: "https://api.fitbit.com/1/user/-/activities/list.json"},
	}

	activityCount, err := model.ExpandBuiltin(model.BuiltinSpec{
		Attribute: model.Attribute{
			Name:                 "activity_count",
			Label:                "Activity count",
			Kind:                 kind.Number,
			Description:          "Number of logged activities in the fetch window.",
			TestValuePlaceholder: "12",
			Provenance:           provenance,
		},
		Extractor: model.Extractor{Plain: extractActivityCount},
	})
	if err != nil {
		return catalog.Category{}, err
	}

	stepsDay, err := model.ExpandBuiltin(model.BuiltinSpec{
		Attribute: model.Attribute{
			Name:                 "steps_day",
			Label:                "Steps",
			Kind:                 kind.Number,
			Description:          "Steps logged on the nth day before today.",
			Unit:                 "steps",
			TestValuePlaceholder: "8500",
			Provenance:           provenance,
		},
		IsIndexed:  true,
		IndexStart: 1,
		IndexEnd:   7,
		Extractor:  model.Extractor{Indexed: extractStepsDay},
	})
	if err != nil {
		return catalog.Category{}, err
	}

	return catalog.Category{
		Name:                   "activities",
		Label:                  "Activities",
		Provenance:             provenance,
		CustomVariablesEnabled: true,
		BuiltinGroups:          [][]model.BuiltinVariable{activityCount, stepsDay},
		CVAttributes: []model.CustomAttribute{
			{
				Attribute: model.Attribute{
					Name:                 "activity_name",
					Label:                "Activity name",
					Kind:                 kind.Text,
					TestValuePlaceholder: "Walk",
					Provenance:           provenance,
				},
				FieldKey: "activityName",
			},
			{
				Attribute: model.Attribute{
					Name:                 "calories",
					Label:                "Calories",
					Kind:                 kind.Number,
					Unit:                 "kcal",
					TestValuePlaceholder: "230",
					Provenance:           provenance,
				},
				FieldKey: "calories",
			},
			{
				Attribute: model.Attribute{
					Name:                 "steps",
					Label:                "Steps",
					Kind:                 kind.Number,
					Unit:                 "steps",
					TestValuePlaceholder: "4000",
					Provenance:           provenance,
				},
				FieldKey: "steps",
			},
			{
				Attribute: model.Attribute{
					Name:                 "distance",
					Label:                "Distance",
					Kind:                 kind.Number,
					Unit:                 "km",
					TestValuePlaceholder: "3.2",
					Provenance:           provenance,
				},
				FieldKey: "distance",
			},
			{
				Attribute: model.Attribute{
					Name:                 "duration",
					Label:                "Duration",
					Kind:                 kind.Number,
					Unit:                 "ms",
					TestValuePlaceholder: "1800000",
					Provenance:           provenance,
				},
				FieldKey: "duration",
			},
			{
				Attribute: model.Attribute{
					Name:                 "original_start_time",
					Label:                "Start time",
					Kind:                 kind.Date,
					TestValuePlaceholder: "2024-05-01T06:30:00",
					Provenance:           provenance,
				},
				FieldKey: "originalStartTime",
			},
		},
	}, nil
}

func sleepCategory() (catalog.Category, error) {
	provenance := []model.Origin{
		{Method: "fetch_sleep", Endpoint: "https://api.fitbit.com/1.2/user/-/sleep/list.json"},
	}

	averageDuration, err := model.ExpandBuiltin(model.BuiltinSpec{
		Attribute: model.Attribute{
			Name:                 "average_sleep_duration",
			Label:                "Average sleep duration",
			Kind:                 kind.Number,
			Description:          "Mean minutes asleep across the fetched sleep logs.",
			Unit:                 "min",
			TestValuePlaceholder: "420",
			Provenance:           provenance,
		},
		Extractor: model.Extractor{Plain: extractAverageSleepDuration},
	})
	if err != nil {
		return catalog.Category{}, err
	}

	return catalog.Category{
		Name:                   "sleep",
		Label:                  "Sleep",
		Provenance:             provenance,
		CustomVariablesEnabled: true,
		BuiltinGroups:          [][]model.BuiltinVariable{averageDuration},
		CVAttributes: []model.CustomAttribute{
			{
				Attribute: model.Attribute{
					Name:                 "start_time",
					Label:                "Start time",
					Kind:                 kind.Date,
					TestValuePlaceholder: "2024-05-01T23:10:00",
					Provenance:           provenance,
				},
				FieldKey: "startTime",
			},
			{
				Attribute: model.Attribute{
					Name:                 "minutes_asleep",
					Label:                "Minutes asleep",
					Kind:                 kind.Number,
					Unit:                 "min",
					TestValuePlaceholder: "412",
					Provenance:           provenance,
				},
				FieldKey: "minutesAsleep",
			},
			{
				Attribute: model.Attribute{
					Name:                 "efficiency",
					Label:                "Sleep efficiency",
					Kind:                 kind.Number,
					TestValuePlaceholder: "93",
					Provenance:           provenance,
				},
				FieldKey: "efficiency",
			},
		},
	}, nil
}

func extractActivityCount(ctx context.Context, src model.Source) (any, error) {
	records, err := src.FetchRecords(ctx, "activities")
	if err != nil {
		return nil, err
	}
	return len(records), nil
}

// extractStepsDay sums the steps of activities started on the day `index`
// days before today.
func extractStepsDay(ctx context.Context, src model.Source, index int) (any, error) {
	records, err := src.FetchRecords(ctx, "activities")
	if err != nil {
		return nil, err
	}

	day := time.Now().AddDate(0, 0, -index).Format("2006-01-02")
	total := 0.0
	for _, record := range records {
		start, ok := record["originalStartTime"].(string)
		if !ok || len(start) < len(day) || start[:len(day)] != day {
			continue
		}
		if steps, ok := recordNumber(record, "steps"); ok {
			total += steps
		}
	}
	return total, nil
}

func extractAverageSleepDuration(ctx context.Context, src model.Source) (any, error) {
	records, err := src.FetchRecords(ctx, "sleep")
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	total := 0.0
	counted := 0
	for _, record := range records {
		if minutes, ok := recordNumber(record, "minutesAsleep"); ok {
			total += minutes
			counted++
		}
	}
	if counted == 0 {
		return nil, nil
	}
	return total / float64(counted), nil
}

func recordNumber(record model.Record, key string) (float64, bool) {
	switch v := record[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
