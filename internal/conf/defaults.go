package conf

import "github.com/spf13/viper"

// setDefaults registers the default configuration values with viper.
func setDefaults() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "hunterlog.log")
	viper.SetDefault("main.log.maxsize", 10)
	viper.SetDefault("main.log.maxbackups", 3)
	viper.SetDefault("main.log.maxage", 28)

	viper.SetDefault("database.type", "sqlite")
	viper.SetDefault("database.sqlite.path", "spots.db")
	viper.SetDefault("database.mysql.host", "localhost")
	viper.SetDefault("database.mysql.port", 3306)
	viper.SetDefault("database.mysql.username", "hunterlog")
	viper.SetDefault("database.mysql.password", "")
	viper.SetDefault("database.mysql.database", "hunterlog")

	viper.SetDefault("poller.interval", 60)
	viper.SetDefault("poller.refreshactivators", true)

	viper.SetDefault("http.listen", ":8073")

	viper.SetDefault("pota.baseurl", "https://api.pota.app")
	viper.SetDefault("pota.timeout", 30)
}
