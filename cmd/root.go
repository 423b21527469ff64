package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hunterlog/hunterlog-go/cmd/serve"
	"github.com/hunterlog/hunterlog-go/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hunterlog",
		Short: "hunterlog POTA hunter logging backend",
	}

	setupFlags(rootCmd, settings)

	rootCmd.AddCommand(serve.Command(settings))

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Sync the settings struct with viper's values so command line
		// arguments take precedence over the config file.
		return conf.SyncViper(settings)
	}

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface.
// Each flag is bound to its full config key; binding the whole flag set
// would register the flag names as flat keys and shadow nested sections
// like database.* in viper.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d",
		viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Database.SQLite.Path, "database",
		viper.GetString("database.sqlite.path"), "Path to the SQLite database file")

	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		fmt.Printf("error binding flag debug: %v\n", err)
	}
	if err := viper.BindPFlag("database.sqlite.path", rootCmd.PersistentFlags().Lookup("database")); err != nil {
		fmt.Printf("error binding flag database: %v\n", err)
	}
}
