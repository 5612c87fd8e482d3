package resolve

import (
	"testing"

	"github.com/datadonation/dds/internal/common"
	"github.com/datadonation/dds/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsedVariables(t *testing.T) {
	registerTestProvider(t)

	used, err := UsedVariables(
		[]string{"dds.tracker.builtin.activities.activity_count"},
		[]model.CustomVariable{longestWalkSpec()},
	)
	require.NoError(t, err)
	require.Len(t, used, 3)

	assert.Equal(t, "dds.tracker.builtin.activities.activity_count", used[0].Name)
	assert.Equal(t, "builtin", used[0].Source)

	// Custom variables contribute one entry per enabled attribute, without
	// touching any provider.
	assert.Equal(t, "dds.tracker.custom.activities.longest_walk.calories", used[1].Name)
	assert.Equal(t, "custom", used[1].Source)
	assert.Equal(t, "dds.tracker.custom.activities.longest_walk.original_start_time", used[2].Name)
}

func TestUsedVariables_UnknownBuiltin(t *testing.T) {
	registerTestProvider(t)

	_, err := UsedVariables([]string{"dds.tracker.builtin.activities.no_such"}, nil)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUsedVariables_InvalidCustom(t *testing.T) {
	registerTestProvider(t)

	bad := longestWalkSpec()
	bad.DataCategory = "meals"
	_, err := UsedVariables(nil, []model.CustomVariable{bad})
	assert.Error(t, err)
}
