package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hunterlog/hunterlog-go/internal/band"
	"github.com/hunterlog/hunterlog-go/internal/datastore"
	"github.com/hunterlog/hunterlog-go/internal/logging"
)

func TestDefaults(t *testing.T) {
	s := New(logging.NewTestLogger())

	assert.Equal(t, band.NoBand, s.Band())
	assert.Empty(t, s.Region())
	assert.True(t, s.QRTExclusion())

	// Default state compiles to the QRT exclusion only.
	assert.Len(t, s.Predicates(), 1)
}

func TestPredicateCount(t *testing.T) {
	s := New(logging.NewTestLogger())
	s.SetQRTExclusion(false)
	assert.Empty(t, s.Predicates())

	s.SetBand(band.Band20M)
	assert.Len(t, s.Predicates(), 2) // lower and upper range term

	s.SetRegion("K-")
	assert.Len(t, s.Predicates(), 3)

	s.SetQRTExclusion(true)
	assert.Len(t, s.Predicates(), 4)

	s.SetBand(band.NoBand)
	s.SetRegion("")
	assert.Len(t, s.Predicates(), 1)
}

// Composition against a stored fixture spanning all three filter
// dimensions: band, region prefix and QRT status.
func TestFilterComposition(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&datastore.Spot{}))
	ds := &datastore.DataStore{DB: db}

	spots := []datastore.Spot{
		{ID: 1, Activator: "N1AA", Frequency: "14060", LocationDesc: "K-NH", IsQRT: false}, // match
		{ID: 2, Activator: "N2BB", Frequency: "7200", LocationDesc: "K-VT", IsQRT: false},  // wrong band
		{ID: 3, Activator: "G3CC", Frequency: "14285", LocationDesc: "GB-ENG", IsQRT: false}, // wrong region
		{ID: 4, Activator: "N4DD", Frequency: "14310", LocationDesc: "K-TX", IsQRT: true},  // QRT
		{ID: 5, Activator: "N5EE", Frequency: "14044", LocationDesc: "K-LA", IsQRT: false}, // match
	}
	require.NoError(t, ds.ReplaceAllSpots(spots))

	s := New(logging.NewTestLogger())
	s.SetBand(band.Band20M)
	s.SetRegion("K-")
	s.SetQRTExclusion(true)

	got, err := ds.GetSpots(s.Predicates())
	require.NoError(t, err)
	require.Len(t, got, 2)
	ids := []uint{got[0].ID, got[1].ID}
	assert.ElementsMatch(t, []uint{1, 5}, ids)

	// Region matching is case-sensitive, exact prefix.
	s.SetRegion("k-")
	got, err = ds.GetSpots(s.Predicates())
	require.NoError(t, err)
	assert.Empty(t, got)
}
