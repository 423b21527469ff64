// Package serve implements the serve subcommand: the polling ingest loop
// plus the HTTP API.
package serve

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hunterlog/hunterlog-go/internal/api"
	"github.com/hunterlog/hunterlog-go/internal/conf"
	"github.com/hunterlog/hunterlog-go/internal/datastore"
	"github.com/hunterlog/hunterlog-go/internal/enrich"
	"github.com/hunterlog/hunterlog-go/internal/filter"
	"github.com/hunterlog/hunterlog-go/internal/httpclient"
	"github.com/hunterlog/hunterlog-go/internal/hunt"
	"github.com/hunterlog/hunterlog-go/internal/logging"
	"github.com/hunterlog/hunterlog-go/internal/observability"
	"github.com/hunterlog/hunterlog-go/internal/poller"
	"github.com/hunterlog/hunterlog-go/internal/pota"
)

// Command creates the serve command.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the spot poller and HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(settings)
		},
	}

	cmd.Flags().StringVar(&settings.HTTP.Listen, "listen",
		viper.GetString("http.listen"), "HTTP API listen address")
	cmd.Flags().IntVar(&settings.Poller.Interval, "interval",
		viper.GetInt("poller.interval"), "Spot refresh interval in seconds")

	// Bind under the full config keys so SyncViper resolves the flag values
	// into the nested settings fields.
	if err := viper.BindPFlag("http.listen", cmd.Flags().Lookup("listen")); err != nil {
		cmd.PrintErrf("error binding flag listen: %v\n", err)
	}
	if err := viper.BindPFlag("poller.interval", cmd.Flags().Lookup("interval")); err != nil {
		cmd.PrintErrf("error binding flag interval: %v\n", err)
	}

	return cmd
}

func run(settings *conf.Settings) error {
	closeLog := logging.Init(settings)
	defer func() { _ = closeLog() }()
	log := logging.ForService("serve")

	ds, err := datastore.New(settings)
	if err != nil {
		return err
	}
	if err := ds.Open(); err != nil {
		return fmt.Errorf("opening datastore: %w", err)
	}
	defer func() { _ = ds.Close() }()

	// Startup bookkeeping: stamp the schema version and make sure the
	// operator config row exists.
	if err := ds.EnsureSchemaVersion(datastore.SchemaVersionToken); err != nil {
		return err
	}
	config, err := ds.GetUserConfig()
	if err != nil {
		return err
	}
	log.Info("starting hunterlog", "operator", config.MyCall, "grid", config.MyGrid6)

	httpClient := httpclient.New(&httpclient.Config{
		DefaultTimeout: time.Duration(settings.POTA.Timeout) * time.Second,
	})
	potaClient := pota.NewClient(settings.POTA.BaseURL, httpClient, logging.ForService("pota"))

	metrics := observability.NewMetrics()
	ledger := hunt.New(ds, logging.ForService("hunt"))
	enricher := enrich.New(ds, ledger, logging.ForService("enrich"))
	filters := filter.New(logging.ForService("filter"))

	spotPoller := poller.New(potaClient, ds, enricher, metrics,
		time.Duration(settings.Poller.Interval)*time.Second,
		settings.Poller.RefreshActivators, logging.ForService("poller"))

	controller := api.New(ds, filters, ledger, potaClient, metrics, logging.ForService("api"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pollerDone := make(chan struct{})
	go func() {
		defer close(pollerDone)
		spotPoller.Run(ctx)
	}()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- controller.Start(settings.HTTP.Listen)
	}()

	select {
	case err := <-serverErr:
		stop()
		<-pollerDone
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := controller.Echo.Shutdown(shutdownCtx); err != nil {
			log.Warn("http shutdown", "error", err)
		}
		<-pollerDone
		return nil
	}
}
