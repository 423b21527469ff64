package serve

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hunterlog/hunterlog-go/internal/conf"
)

func TestServeFlagsSyncIntoSettings(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	settings, err := conf.Load()
	require.NoError(t, err)

	cmd := Command(settings)
	require.NoError(t, cmd.Flags().Set("listen", ":9999"))
	require.NoError(t, cmd.Flags().Set("interval", "15"))

	require.NoError(t, conf.SyncViper(settings))
	assert.Equal(t, ":9999", settings.HTTP.Listen)
	assert.Equal(t, 15, settings.Poller.Interval)
}

func TestServeFlagsDefaultsUntouched(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	settings, err := conf.Load()
	require.NoError(t, err)

	Command(settings)

	// Unset flags leave the configured defaults in place.
	require.NoError(t, conf.SyncViper(settings))
	assert.Equal(t, ":8073", settings.HTTP.Listen)
	assert.Equal(t, 60, settings.Poller.Interval)
}
