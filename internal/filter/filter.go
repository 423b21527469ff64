// Package filter holds the view filter state applied to spot listings.
package filter

import (
	"log/slog"
	"sync"

	"gorm.io/gorm/clause"

	"github.com/hunterlog/hunterlog-go/internal/band"
	"github.com/hunterlog/hunterlog-go/internal/datastore"
)

// Set holds the current view filter state and compiles it into storage
// predicates. The zero filter passes every spot except QRT ones: the QRT
// exclusion defaults to on.
//
// Setters and Predicates may be called from different goroutines (API
// writes vs poller reads), so all state access is mutex-guarded: a filter
// change must not yield a half-updated predicate list.
type Set struct {
	mu      sync.RWMutex
	band    band.Band
	region  string // empty means no region filter
	skipQRT bool
	log     *slog.Logger
}

// New returns a filter set with default state: no band filter, no region
// filter, QRT spots excluded.
func New(log *slog.Logger) *Set {
	if log == nil {
		log = slog.Default()
	}
	return &Set{skipQRT: true, log: log}
}

// SetBand selects the band filter. band.NoBand clears it.
func (s *Set) SetBand(b band.Band) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Debug("setting band filter", "band", b.Name())
	s.band = b
}

// SetRegion selects the region prefix filter. An empty string clears it.
// Matching is case-sensitive against the spot's location descriptor.
func (s *Set) SetRegion(region string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Debug("setting region filter", "region", region)
	s.region = region
}

// SetQRTExclusion toggles filtering of spots marked QRT.
func (s *Set) SetQRTExclusion(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Debug("setting QRT filter", "enabled", on)
	s.skipQRT = on
}

// Band returns the current band selector.
func (s *Set) Band() band.Band {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.band
}

// Region returns the current region prefix, empty when unset.
func (s *Set) Region() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.region
}

// QRTExclusion reports whether QRT spots are filtered out.
func (s *Set) QRTExclusion() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skipQRT
}

// Predicates compiles the current state into a predicate list. The caller
// combines them with logical AND; the three dimensions are independent, so
// order carries no meaning.
func (s *Set) Predicates() []clause.Expression {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var predicates []clause.Expression

	if s.band != band.NoBand {
		lower, upper := s.band.Limits()
		predicates = append(predicates, datastore.FreqRange("frequency", lower, upper)...)
	}
	if s.region != "" {
		predicates = append(predicates, datastore.HasPrefix("location_desc", s.region))
	}
	if s.skipQRT {
		predicates = append(predicates, datastore.Eq("is_qrt", false))
	}
	return predicates
}
