package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("DDS_TEST_DIR", "/var/data")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "absolute untouched", in: "/tmp/dds.db", want: "/tmp/dds.db"},
		{name: "tilde alone", in: "~", want: home},
		{name: "tilde prefix", in: "~/dds/dds.db", want: filepath.Join(home, "dds", "dds.db")},
		{name: "env var", in: "$DDS_TEST_DIR/dds.db", want: "/var/data/dds.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestDatabasePath(t *testing.T) {
	t.Run("configured path wins", func(t *testing.T) {
		viper.Set("database.path", "/tmp/custom.db")
		defer viper.Set("database.path", "")
		assert.Equal(t, "/tmp/custom.db", DatabasePath())
	})

	t.Run("defaults under the home config directory", func(t *testing.T) {
		viper.Set("database.path", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "dds", "dds.db"), DatabasePath())
	})
}
