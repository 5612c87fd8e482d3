package catalog

import (
	"testing"

	"github.com/datadonation/dds/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForProvider(t *testing.T) {
	require.NoError(t, Register(testDescriptor(t, "builder-basic")))

	schemas, err := ForProvider("builder-basic")
	require.NoError(t, err)
	require.Len(t, schemas, 1)

	schema := schemas[0]
	assert.Equal(t, "sessions", schema.Value)
	assert.Equal(t, "Sessions", schema.Label)
	assert.True(t, schema.CustomVariablesEnabled)

	// One plain builtin plus three expanded indexed instances.
	require.Len(t, schema.BuiltinVariables, 4)
	assert.Equal(t, "dds.builder-basic.builtin.sessions.session_count",
		schema.BuiltinVariables[0].Name)
	assert.Equal(t, "builtin", schema.BuiltinVariables[0].Source)
	assert.Equal(t, "number", schema.BuiltinVariables[0].DataType)
	assert.False(t, schema.BuiltinVariables[0].IsIndexed)

	indexed := schema.BuiltinVariables[1:]
	for i, v := range indexed {
		assert.Equal(t, i+1, v.Index)
		assert.True(t, v.IsIndexed)
		assert.Equal(t, model.BuiltinName("builder-basic", "sessions", "minutes_day", true, i+1), v.Name)
	}

	require.Len(t, schema.CVAttributes, 2)
	assert.Equal(t, "duration", schema.CVAttributes[0].Name)
	assert.Equal(t, "date", schema.CVAttributes[1].DataType)
}

func TestForProvider_Unknown(t *testing.T) {
	_, err := ForProvider("builder-missing")
	assert.Error(t, err)
}

func TestAll_SortedByProviderThenLabel(t *testing.T) {
	require.NoError(t, Register(testDescriptor(t, "builder-all-b")))
	require.NoError(t, Register(testDescriptor(t, "builder-all-a")))

	all := All()
	require.NotEmpty(t, all)

	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]
		if prev.DataProvider == cur.DataProvider {
			assert.LessOrEqual(t, prev.Label, cur.Label)
		} else {
			assert.Less(t, prev.DataProvider, cur.DataProvider)
		}
	}
}

func TestFindBuiltin(t *testing.T) {
	require.NoError(t, Register(testDescriptor(t, "builder-find")))

	// The catalog name and the lookup key come from the same constructor,
	// so a name listed in the catalog always resolves back to its variable.
	name := model.BuiltinName("builder-find", "sessions", "minutes_day", true, 2)
	v, d, c, ok := FindBuiltin(name)
	require.True(t, ok)
	assert.Equal(t, "builder-find", d.Type)
	assert.Equal(t, "sessions", c.Name)
	assert.Equal(t, 2, v.Index)
	assert.Equal(t, name, v.QualifiedName(d.Type, c.Name))

	_, _, _, ok = FindBuiltin("dds.builder-find.builtin.sessions.minutes_day9")
	assert.False(t, ok)
}
