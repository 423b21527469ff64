package enrich

import (
	"fmt"
	"time"

	"github.com/hunterlog/hunterlog-go/internal/datastore"
	"github.com/hunterlog/hunterlog-go/internal/pota"
)

// POTA spot times come without a zone suffix and are UTC.
const spotTimeLayout = "2006-01-02T15:04:05"

// mapSpot converts a raw API spot into a Spot row, field by field. A record
// missing a required field or carrying an unparseable timestamp is rejected
// here, before enrichment.
func mapSpot(raw *pota.Spot) (*datastore.Spot, error) {
	switch {
	case raw.Activator == "":
		return nil, fmt.Errorf("missing activator")
	case raw.Frequency == "":
		return nil, fmt.Errorf("missing frequency")
	case raw.Reference == "":
		return nil, fmt.Errorf("missing park reference")
	}

	spotTime, err := parseSpotTime(raw.SpotTime)
	if err != nil {
		return nil, fmt.Errorf("bad spot time %q: %w", raw.SpotTime, err)
	}

	return &datastore.Spot{
		ID:           raw.SpotID,
		Activator:    raw.Activator,
		Frequency:    raw.Frequency,
		Mode:         raw.Mode,
		Reference:    raw.Reference,
		ParkName:     raw.ParkName,
		SpotTime:     spotTime,
		Spotter:      raw.Spotter,
		Comments:     raw.Comments,
		Source:       raw.Source,
		Invalid:      raw.Invalid,
		Name:         raw.Name,
		LocationDesc: raw.LocationDesc,
		Grid4:        raw.Grid4,
		Grid6:        raw.Grid6,
		Latitude:     raw.Latitude,
		Longitude:    raw.Longitude,
		Count:        raw.Count,
		Expire:       raw.Expire,
	}, nil
}

// mapComment converts a raw API comment into a comment row. The activator
// and park keys are attached by the datastore on replace.
func mapComment(raw *pota.Comment) datastore.SpotComment {
	spotTime, err := parseSpotTime(raw.SpotTime)
	if err != nil {
		spotTime = time.Time{}
	}
	return datastore.SpotComment{
		ID:        raw.SpotID,
		SpotTime:  spotTime,
		Spotter:   raw.Spotter,
		Frequency: raw.Frequency,
		Mode:      raw.Mode,
		Band:      raw.Band,
		Source:    raw.Source,
		Comments:  raw.Comments,
	}
}

// MapComments converts a fetched comment batch into rows for storage.
func MapComments(raw []pota.Comment) []datastore.SpotComment {
	comments := make([]datastore.SpotComment, 0, len(raw))
	for i := range raw {
		comments = append(comments, mapComment(&raw[i]))
	}
	return comments
}

// MapPark converts the POTA park metadata payload into a park row. The
// hunt counter is not part of the payload; UpsertPark preserves an
// existing row's counter.
func MapPark(raw *pota.Park) *datastore.Park {
	return &datastore.Park{
		Reference:           raw.Reference,
		Name:                raw.Name,
		Grid4:               raw.Grid4,
		Grid6:               raw.Grid6,
		Active:              raw.Active != 0,
		Latitude:            raw.Latitude,
		Longitude:           raw.Longitude,
		ParkComments:        raw.ParkComments,
		Accessibility:       raw.Accessibility,
		Sensitivity:         raw.Sensitivity,
		AccessMethods:       raw.AccessMethods,
		ActivationMethods:   raw.ActivationMethods,
		Agencies:            raw.Agencies,
		AgencyURLs:          raw.AgencyURLs,
		ParkURLs:            raw.ParkURLs,
		ParktypeID:          raw.ParktypeID,
		ParktypeDesc:        raw.ParktypeDesc,
		LocationDesc:        raw.LocationDesc,
		LocationName:        raw.LocationName,
		EntityID:            raw.EntityID,
		EntityName:          raw.EntityName,
		ReferencePrefix:     raw.ReferencePrefix,
		EntityDeleted:       raw.EntityDeleted != 0,
		FirstActivator:      raw.FirstActivator,
		FirstActivationDate: raw.FirstActivationDate,
		Website:             raw.Website,
	}
}

// MapActivatorStats converts the POTA user stats payload into an activator
// row keyed by the given base callsign.
func MapActivatorStats(baseCall string, stats *pota.ActivatorStats, updated time.Time) *datastore.Activator {
	return &datastore.Activator{
		Callsign:    baseCall,
		Name:        stats.Name,
		QTH:         stats.QTH,
		Gravatar:    stats.Gravatar,
		Activations: stats.Activator.Activations,
		Parks:       stats.Activator.Parks,
		QSOs:        stats.Activator.QSOs,
		HunterParks: stats.Hunter.Parks,
		HunterQSOs:  stats.Hunter.QSOs,
		UpdatedAt:   updated,
	}
}

func parseSpotTime(value string) (time.Time, error) {
	if t, err := time.ParseInLocation(spotTimeLayout, value, time.UTC); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
