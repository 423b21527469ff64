// Package hunt answers "already worked today?" questions against the
// contact log.
package hunt

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm/clause"

	"github.com/hunterlog/hunterlog-go/internal/band"
	"github.com/hunterlog/hunterlog-go/internal/datastore"
)

// Ledger correlates spots against the logged contact history.
type Ledger struct {
	ds  datastore.Interface
	log *slog.Logger

	// Now is the clock used for the day boundary; overridable in tests.
	Now func() time.Time
}

// New returns a ledger over the given datastore.
func New(ds datastore.Interface, log *slog.Logger) *Ledger {
	if log == nil {
		log = slog.Default()
	}
	return &Ledger{ds: ds, log: log, Now: time.Now}
}

// utcMidnight returns the start of the current UTC calendar day. "Today" is
// the UTC date, not a rolling 24 hour window: a contact at 23:59 UTC and a
// spot at 00:01 UTC the next day are different days even two minutes apart.
// The boundary is recomputed on every call, never cached.
func (l *Ledger) utcMidnight() time.Time {
	now := l.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// IsHuntedToday reports whether the operator has already logged a contact
// with the given activator at the given park today. When the spot frequency
// resolves to a band, only contacts inside that band's limits count; an
// unclassifiable frequency matches contacts on any band.
func (l *Ledger) IsHuntedToday(activator, frequency, reference string) (bool, error) {
	predicates := []clause.Expression{
		datastore.Eq("call", activator),
		datastore.Eq("sig_info", reference),
		datastore.After("time_on", l.utcMidnight()),
	}

	if b := band.Classify(frequency); b != band.NoBand {
		lower, upper := b.Limits()
		predicates = append(predicates, datastore.FreqRange("freq", lower, upper)...)
	}

	count, err := l.ds.CountQSOs(predicates)
	if err != nil {
		return false, fmt.Errorf("checking hunted flag for %s at %s: %w", activator, reference, err)
	}
	return count > 0, nil
}

// HuntedBandsToday returns the display names of the distinct bands on which
// the operator has worked the given activator at the given park today, in
// canonical band order. Contacts with unclassifiable frequencies are logged
// and skipped.
func (l *Ledger) HuntedBandsToday(activator, reference string) ([]string, error) {
	qsos, err := l.ds.FindQSOs([]clause.Expression{
		datastore.Eq("call", activator),
		datastore.Eq("sig_info", reference),
		datastore.After("time_on", l.utcMidnight()),
	})
	if err != nil {
		return nil, fmt.Errorf("getting hunted bands for %s at %s: %w", activator, reference, err)
	}

	seen := make(map[band.Band]bool)
	for i := range qsos {
		b := band.Classify(qsos[i].Freq)
		if b == band.NoBand {
			l.log.Warn("unknown band for logged frequency", "freq", qsos[i].Freq, "call", activator)
			continue
		}
		seen[b] = true
	}

	var names []string
	for _, b := range band.All {
		if seen[b] {
			names = append(names, b.Name())
		}
	}
	return names, nil
}

// OpQSOCount returns how many contacts the operator has logged with the
// given callsign, over all time.
func (l *Ledger) OpQSOCount(call string) (int, error) {
	count, err := l.ds.CountQSOs([]clause.Expression{datastore.Eq("call", call)})
	if err != nil {
		return 0, fmt.Errorf("counting qsos for %s: %w", call, err)
	}
	return int(count), nil
}

// ParkHuntCount returns the park's stored hunt counter. This is the
// counter snapshot, not a derivation from contact rows: the counter may be
// seeded from imported hunter statistics. An unknown park counts as zero.
func (l *Ledger) ParkHuntCount(reference string) (int, error) {
	park, err := l.ds.GetPark(reference)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("counting hunts for park %s: %w", reference, err)
	}
	return park.Hunts, nil
}
