package cmd

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hunterlog/hunterlog-go/internal/conf"
)

func TestRootFlagsSyncIntoSettings(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	settings, err := conf.Load()
	require.NoError(t, err)

	rootCmd := RootCommand(settings)
	require.NoError(t, rootCmd.PersistentFlags().Set("database", "custom.db"))
	require.NoError(t, rootCmd.PersistentFlags().Set("debug", "true"))

	// SyncViper must resolve the flag values into the nested settings
	// fields without the database flag shadowing the database.* section.
	require.NoError(t, conf.SyncViper(settings))
	assert.Equal(t, "custom.db", settings.Database.SQLite.Path)
	assert.Equal(t, "sqlite", settings.Database.Type)
	assert.True(t, settings.Debug)
}
