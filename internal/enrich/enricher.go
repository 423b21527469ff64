// Package enrich computes the derived fields of incoming spots before they
// are stored.
package enrich

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/hunterlog/hunterlog-go/internal/datastore"
	"github.com/hunterlog/hunterlog-go/internal/hunt"
	"github.com/hunterlog/hunterlog-go/internal/pota"
)

// qrtPattern matches the standalone token "qrt" anywhere in a comment.
// Word-boundary match: "QRT last one today" is QRT, "near QRTown" is not.
var qrtPattern = regexp.MustCompile(`(?i)\bqrt\b`)

// Enricher derives per-spot state from the contact log and park table.
type Enricher struct {
	ds     datastore.Interface
	ledger *hunt.Ledger
	log    *slog.Logger
}

// New returns an enricher over the given datastore and ledger.
func New(ds datastore.Interface, ledger *hunt.Ledger, log *slog.Logger) *Enricher {
	if log == nil {
		log = slog.Default()
	}
	return &Enricher{ds: ds, ledger: ledger, log: log}
}

// Report describes the outcome of enriching one batch.
type Report struct {
	Total    int     // raw records received
	Enriched int     // records that made it into the batch
	Errors   []error // per-record failures, surfaced but non-fatal
}

// EnrichAll maps and enriches a raw spot batch. A record that fails to map
// or enrich is reported and skipped; it never aborts its siblings.
func (e *Enricher) EnrichAll(raw []pota.Spot) ([]datastore.Spot, Report) {
	report := Report{Total: len(raw)}
	spots := make([]datastore.Spot, 0, len(raw))

	for i := range raw {
		spot, err := mapSpot(&raw[i])
		if err != nil {
			err = fmt.Errorf("spot %d (%s): %w", raw[i].SpotID, raw[i].Activator, err)
			e.log.Error("skipping malformed spot", "error", err)
			report.Errors = append(report.Errors, err)
			continue
		}

		if err := e.Enrich(spot); err != nil {
			err = fmt.Errorf("enriching spot %d (%s): %w", spot.ID, spot.Activator, err)
			e.log.Error("skipping spot", "error", err)
			report.Errors = append(report.Errors, err)
			continue
		}

		spots = append(spots, *spot)
	}

	report.Enriched = len(spots)
	return spots, report
}

// Enrich fills in the derived fields of one mapped spot. Missing reference
// data degrades to zero values; only storage failures return an error.
func (e *Enricher) Enrich(spot *datastore.Spot) error {
	// Park hunt snapshot. A park with zero recorded hunts reads the same as
	// an unknown park.
	park, err := e.ds.GetPark(spot.Reference)
	switch {
	case errors.Is(err, datastore.ErrNotFound):
		e.log.Debug("unknown park", "reference", spot.Reference)
	case err != nil:
		return err
	case park.Hunts > 0:
		spot.ParkHunts = park.Hunts
	}

	opHunts, err := e.ledger.OpQSOCount(spot.Activator)
	if err != nil {
		return err
	}
	spot.OpHunts = opHunts

	hunted, err := e.ledger.IsHuntedToday(spot.Activator, spot.Frequency, spot.Reference)
	if err != nil {
		return err
	}
	spot.Hunted = hunted

	bands, err := e.ledger.HuntedBandsToday(spot.Activator, spot.Reference)
	if err != nil {
		return err
	}
	spot.HuntedBands = strings.Join(bands, ",")

	spot.IsQRT = spot.Comments != "" && qrtPattern.MatchString(spot.Comments)
	return nil
}
