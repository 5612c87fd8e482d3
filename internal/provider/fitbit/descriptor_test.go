package fitbit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/datadonation/dds/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	records map[string][]model.Record
	err     error
}

func (s *stubSource) FetchRecords(_ context.Context, category string) ([]model.Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.records[category], nil
}

func TestActivitiesCategory(t *testing.T) {
	c, err := activitiesCategory()
	require.NoError(t, err)

	assert.Equal(t, "activities", c.Name)
	assert.True(t, c.CustomVariablesEnabled)

	// One plain count plus seven expanded daily step variables.
	assert.Len(t, c.Builtins(), 8)

	v, err := c.BuiltinByName("steps_day", 7)
	require.NoError(t, err)
	assert.Equal(t, "Steps 7", v.Label)

	attr, err := c.CustomAttributeByName("original_start_time")
	require.NoError(t, err)
	assert.Equal(t, "originalStartTime", attr.FieldKey)
}

func TestSleepCategory(t *testing.T) {
	c, err := sleepCategory()
	require.NoError(t, err)

	assert.Equal(t, "sleep", c.Name)
	assert.Len(t, c.Builtins(), 1)
	assert.Len(t, c.CVAttributes, 3)
}

func TestExtractActivityCount(t *testing.T) {
	src := &stubSource{records: map[string][]model.Record{
		"activities": {{"activityName": "Walk"}, {"activityName": "Run"}},
	}}
	count, err := extractActivityCount(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestExtractActivityCount_FetchError(t *testing.T) {
	src := &stubSource{err: errors.New("timeout")}
	_, err := extractActivityCount(context.Background(), src)
	assert.Error(t, err)
}

func TestExtractStepsDay(t *testing.T) {
	day := func(offset int, clock string) string {
		return time.Now().AddDate(0, 0, -offset).Format("2006-01-02") + "T" + clock
	}

	src := &stubSource{records: map[string][]model.Record{
		"activities": {
			{"originalStartTime": day(2, "06:30:00"), "steps": float64(3000)},
			{"originalStartTime": day(2, "18:00:00"), "steps": float64(1500)},
			{"originalStartTime": day(1, "07:00:00"), "steps": float64(9000)},
			{"originalStartTime": day(2, "12:00:00")}, // no steps field
		},
	}}

	total, err := extractStepsDay(context.Background(), src, 2)
	require.NoError(t, err)
	assert.Equal(t, float64(4500), total)

	total, err = extractStepsDay(context.Background(), src, 3)
	require.NoError(t, err)
	assert.Equal(t, float64(0), total)
}

func TestExtractAverageSleepDuration(t *testing.T) {
	t.Run("averages minutes asleep", func(t *testing.T) {
		src := &stubSource{records: map[string][]model.Record{
			"sleep": {
				{"minutesAsleep": float64(400)},
				{"minutesAsleep": float64(440)},
			},
		}}
		avg, err := extractAverageSleepDuration(context.Background(), src)
		require.NoError(t, err)
		assert.Equal(t, float64(420), avg)
	})

	t.Run("no sleep logs yields no value", func(t *testing.T) {
		src := &stubSource{records: map[string][]model.Record{}}
		avg, err := extractAverageSleepDuration(context.Background(), src)
		require.NoError(t, err)
		assert.Nil(t, avg)
	})

	t.Run("logs without the field yield no value", func(t *testing.T) {
		src := &stubSource{records: map[string][]model.Record{
			"sleep": {{"startTime": "2024-05-01T23:10:00"}},
		}}
		avg, err := extractAverageSleepDuration(context.Background(), src)
		require.NoError(t, err)
		assert.Nil(t, avg)
	})
}
