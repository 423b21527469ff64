// Package poller drives the periodic spot refresh cycle.
package poller

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/hunterlog/hunterlog-go/internal/callsign"
	"github.com/hunterlog/hunterlog-go/internal/datastore"
	"github.com/hunterlog/hunterlog-go/internal/enrich"
	"github.com/hunterlog/hunterlog-go/internal/observability"
	"github.com/hunterlog/hunterlog-go/internal/pota"
)

// SpotSource abstracts the POTA client surface the poller needs.
type SpotSource interface {
	GetSpots(ctx context.Context) ([]pota.Spot, error)
	GetActivatorStats(ctx context.Context, activator string) (*pota.ActivatorStats, error)
}

// Poller fetches spot batches and replaces the stored collection on a fixed
// interval. One cycle runs at a time; the loop is the single writer of the
// spot table.
type Poller struct {
	source   SpotSource
	ds       datastore.Interface
	enricher *enrich.Enricher
	metrics  *observability.Metrics
	interval time.Duration
	refresh  bool // refresh activator stats for unseen activators
	log      *slog.Logger

	// Clock is overridable in tests.
	Clock clockwork.Clock
}

// New returns a poller with the given refresh interval.
func New(source SpotSource, ds datastore.Interface, enricher *enrich.Enricher,
	metrics *observability.Metrics, interval time.Duration, refreshActivators bool,
	log *slog.Logger) *Poller {
	if log == nil {
		log = slog.Default()
	}
	return &Poller{
		source:   source,
		ds:       ds,
		enricher: enricher,
		metrics:  metrics,
		interval: interval,
		refresh:  refreshActivators,
		log:      log,
		Clock:    clockwork.NewRealClock(),
	}
}

// Run executes refresh cycles until the context is canceled. The first
// cycle runs immediately.
func (p *Poller) Run(ctx context.Context) {
	p.Cycle(ctx)

	ticker := p.Clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Info("poller stopping", "reason", ctx.Err())
			return
		case <-ticker.Chan():
			p.Cycle(ctx)
		}
	}
}

// Cycle performs one fetch-enrich-replace pass. A failed or empty fetch is
// a no-op cycle: the stored collection is left untouched.
func (p *Poller) Cycle(ctx context.Context) {
	p.metrics.PollCycles.Inc()

	raw, err := p.source.GetSpots(ctx)
	if err != nil {
		p.metrics.PollFailures.Inc()
		p.log.Warn("spot fetch failed, skipping cycle", "error", err)
		return
	}
	if len(raw) == 0 {
		p.log.Debug("no spots returned, skipping cycle")
		return
	}

	start := p.Clock.Now()
	spots, report := p.enricher.EnrichAll(raw)
	if err := p.ds.ReplaceAllSpots(spots); err != nil {
		p.metrics.PollFailures.Inc()
		p.log.Error("replacing spot table failed", "error", err)
		return
	}
	p.metrics.ReplaceDuration.Observe(p.Clock.Since(start).Seconds())
	p.metrics.SpotsIngested.Add(float64(report.Enriched))
	p.metrics.SpotsRejected.Add(float64(len(report.Errors)))

	p.log.Info("spot refresh complete",
		"fetched", report.Total,
		"stored", report.Enriched,
		"rejected", len(report.Errors))

	if p.refresh {
		p.refreshActivators(ctx, spots)
	}
}

// refreshActivators upserts POTA stats for activators not yet in the
// database. Failures are logged and skipped; stats are a nicety, not part
// of the ingestion contract.
func (p *Poller) refreshActivators(ctx context.Context, spots []datastore.Spot) {
	seen := make(map[string]bool)
	for i := range spots {
		base := callsign.Base(spots[i].Activator)
		if base == "" || seen[base] {
			continue
		}
		seen[base] = true

		if _, err := p.ds.GetActivator(base); err == nil {
			continue
		} else if !errors.Is(err, datastore.ErrNotFound) {
			p.log.Warn("activator lookup failed", "call", base, "error", err)
			continue
		}

		stats, err := p.source.GetActivatorStats(ctx, spots[i].Activator)
		if err != nil || stats == nil {
			if err != nil {
				p.log.Warn("activator stats fetch failed", "call", base, "error", err)
			}
			continue
		}

		activator := enrich.MapActivatorStats(base, stats, p.Clock.Now().UTC())
		if err := p.ds.UpsertActivator(activator); err != nil {
			p.log.Warn("activator upsert failed", "call", base, "error", err)
		}
	}
}
