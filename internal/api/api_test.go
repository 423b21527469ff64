package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hunterlog/hunterlog-go/internal/datastore"
	"github.com/hunterlog/hunterlog-go/internal/filter"
	"github.com/hunterlog/hunterlog-go/internal/httpclient"
	"github.com/hunterlog/hunterlog-go/internal/hunt"
	"github.com/hunterlog/hunterlog-go/internal/logging"
	"github.com/hunterlog/hunterlog-go/internal/observability"
	"github.com/hunterlog/hunterlog-go/internal/pota"
)

func newTestController(t *testing.T) (*Controller, *datastore.SQLiteStore) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&datastore.Spot{}, &datastore.QSO{}, &datastore.Park{}, &datastore.Activator{},
		&datastore.SpotComment{}, &datastore.UserConfig{}, &datastore.SchemaVersion{},
	))

	ds := &datastore.SQLiteStore{DataStore: datastore.DataStore{DB: db}}
	log := logging.NewTestLogger()
	ledger := hunt.New(ds, log)
	controller := New(ds, filter.New(log), ledger, nil, observability.NewMetrics(), log)
	return controller, ds
}

func doRequest(c *Controller, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	c.Echo.ServeHTTP(rec, req)
	return rec
}

func seedSpots(t *testing.T, ds *datastore.SQLiteStore) {
	t.Helper()
	require.NoError(t, ds.ReplaceAllSpots([]datastore.Spot{
		{ID: 1, Activator: "N0CALL", Frequency: "14060", Mode: "CW",
			Reference: "K-1234", ParkName: "Example SP", LocationDesc: "K-NH",
			SpotTime: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)},
		{ID: 2, Activator: "W9XYZ", Frequency: "7200", Mode: "SSB",
			Reference: "K-5678", LocationDesc: "K-VT", IsQRT: true,
			SpotTime: time.Date(2024, 6, 1, 12, 5, 0, 0, time.UTC)},
	}))
}

func TestGetSpotsAppliesFilters(t *testing.T) {
	c, ds := newTestController(t)
	seedSpots(t, ds)

	// Default filters exclude the QRT spot.
	rec := doRequest(c, http.MethodGet, "/api/v1/spots", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var spots []datastore.Spot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spots))
	require.Len(t, spots, 1)
	assert.Equal(t, uint(1), spots[0].ID)

	// Turning QRT exclusion off shows both.
	rec = doRequest(c, http.MethodPut, "/api/v1/filters",
		`{"band": "", "region": "", "qrtExclusion": false}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(c, http.MethodGet, "/api/v1/spots", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spots))
	assert.Len(t, spots, 2)
}

func TestGetSpotsByMode(t *testing.T) {
	c, ds := newTestController(t)
	seedSpots(t, ds)

	// Mode listing bypasses the view filters: the QRT SSB spot still shows.
	rec := doRequest(c, http.MethodGet, "/api/v1/spots/mode/SSB", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var spots []datastore.Spot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spots))
	require.Len(t, spots, 1)
	assert.Equal(t, uint(2), spots[0].ID)

	rec = doRequest(c, http.MethodGet, "/api/v1/spots/mode/FT8", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spots))
	assert.Empty(t, spots)
}

func TestGetAppQSOs(t *testing.T) {
	c, ds := newTestController(t)

	_, err := ds.SaveQSO(&datastore.QSO{Call: "N0CALL", Freq: "14060", FromApp: true})
	require.NoError(t, err)
	_, err = ds.SaveQSO(&datastore.QSO{Call: "W9XYZ", Freq: "7200"}) // imported
	require.NoError(t, err)

	rec := doRequest(c, http.MethodGet, "/api/v1/qso", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var qsos []datastore.QSO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &qsos))
	require.Len(t, qsos, 1)
	assert.Equal(t, "N0CALL", qsos[0].Call)
}

func TestGetSpotByID(t *testing.T) {
	c, ds := newTestController(t)
	seedSpots(t, ds)

	rec := doRequest(c, http.MethodGet, "/api/v1/spots/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var spot datastore.Spot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spot))
	assert.Equal(t, "N0CALL", spot.Activator)

	rec = doRequest(c, http.MethodGet, "/api/v1/spots/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(c, http.MethodGet, "/api/v1/spots/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateFiltersValidation(t *testing.T) {
	c, _ := newTestController(t)

	rec := doRequest(c, http.MethodPut, "/api/v1/filters",
		`{"band": "11m", "region": "", "qrtExclusion": true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(c, http.MethodPut, "/api/v1/filters",
		`{"band": "20m", "region": "K-", "qrtExclusion": true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var state filterState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, "20m", state.Band)
	assert.Equal(t, "K-", state.Region)
	assert.True(t, state.QRTExclusion)
}

func TestQSODraftFromSpot(t *testing.T) {
	c, ds := newTestController(t)
	seedSpots(t, ds)
	require.NoError(t, ds.UpsertActivator(&datastore.Activator{Callsign: "N0CALL", Name: "Sam"}))

	rec := doRequest(c, http.MethodGet, "/api/v1/qso/draft/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var draft datastore.QSO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &draft))
	assert.Equal(t, "N0CALL", draft.Call)
	assert.Equal(t, "14060", draft.Freq)
	assert.Equal(t, "599", draft.RstSent) // CW default report
	assert.Equal(t, "POTA", draft.Sig)
	assert.Equal(t, "K-1234", draft.SigInfo)
	assert.Contains(t, draft.Comment, "Sam")
	assert.Equal(t, 1500, draft.TxPwr) // default config power
}

func TestLogQSO(t *testing.T) {
	c, ds := newTestController(t)

	body := `{
		"call": "N0CALL", "rst_sent": "599", "rst_recv": "599",
		"freq": "14060", "mode": "CW",
		"time_on": "2024-06-01T18:00:00Z",
		"sig": "POTA", "sig_info": "K-1234"
	}`
	rec := doRequest(c, http.MethodPost, "/api/v1/qso", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]uint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotZero(t, resp["qsoId"])

	qso, err := ds.GetQSO(resp["qsoId"])
	require.NoError(t, err)
	assert.True(t, qso.FromApp)
	assert.False(t, qso.CnfmHunt)
	assert.Equal(t, time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC), qso.TimeOn.UTC())

	// The park counter is created and incremented.
	park, err := ds.GetPark("K-1234")
	require.NoError(t, err)
	assert.Equal(t, 1, park.Hunts)
}

func TestLogQSOBackfillsParkAndActivator(t *testing.T) {
	c, ds := newTestController(t)

	hc := httpclient.New(nil)
	httpmock.ActivateNonDefault(hc.HTTPClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	c.Pota = pota.NewClient("https://api.pota.test", hc, logging.NewTestLogger())

	httpmock.RegisterResponder(http.MethodGet, "https://api.pota.test/park/K-1234",
		httpmock.NewStringResponder(http.StatusOK, `{
			"reference": "K-1234", "name": "Example State Park",
			"grid6": "FN31pr", "locationDesc": "K-NH", "active": 1
		}`))
	httpmock.RegisterResponder(http.MethodGet, "https://api.pota.test/stats/user/N0CALL",
		httpmock.NewStringResponder(http.StatusOK, `{
			"callsign": "N0CALL", "name": "Sam",
			"activator": {"activations": 4, "parks": 3, "qsos": 120},
			"hunter": {"parks": 10, "qsos": 50}
		}`))

	body := `{
		"call": "N0CALL", "freq": "14060", "mode": "CW",
		"time_on": "2024-06-01T18:00:00Z",
		"sig": "POTA", "sig_info": "K-1234"
	}`
	rec := doRequest(c, http.MethodPost, "/api/v1/qso", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	// The park row carries full metadata and keeps the incremented counter.
	park, err := ds.GetPark("K-1234")
	require.NoError(t, err)
	assert.Equal(t, "Example State Park", park.Name)
	assert.Equal(t, "FN31pr", park.Grid6)
	assert.Equal(t, 1, park.Hunts)

	// The worked activator's stats are upserted.
	activator, err := ds.GetActivator("N0CALL")
	require.NoError(t, err)
	assert.Equal(t, "Sam", activator.Name)
	assert.Equal(t, 4, activator.Activations)
}

func TestLogQSOValidation(t *testing.T) {
	c, _ := newTestController(t)

	// Missing required call.
	rec := doRequest(c, http.MethodPost, "/api/v1/qso",
		`{"freq": "14060", "time_on": "2024-06-01T18:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Bad timestamp.
	rec = doRequest(c, http.MethodPost, "/api/v1/qso",
		`{"call": "N0CALL", "freq": "14060", "time_on": "yesterday"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserConfigRoundTrip(t *testing.T) {
	c, _ := newTestController(t)

	rec := doRequest(c, http.MethodGet, "/api/v1/config", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var config datastore.UserConfig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &config))
	assert.Equal(t, "W1AW", config.MyCall)

	rec = doRequest(c, http.MethodPut, "/api/v1/config", `{
		"my_call": "N0CALL", "my_grid6": "EM12ab", "default_pwr": 100,
		"flr_host": "127.0.0.1", "flr_port": 12345,
		"adif_host": "127.0.0.1", "adif_port": 12345
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(c, http.MethodGet, "/api/v1/config", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &config))
	assert.Equal(t, "N0CALL", config.MyCall)
	assert.Equal(t, 100, config.DefaultPwr)
}

func TestGetVersion(t *testing.T) {
	c, ds := newTestController(t)
	require.NoError(t, ds.EnsureSchemaVersion(datastore.SchemaVersionToken))

	rec := doRequest(c, http.MethodGet, "/api/v1/version", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, datastore.SchemaVersionToken, resp["version"])
}

func TestSpotCommentsStoredOrder(t *testing.T) {
	c, ds := newTestController(t)
	seedSpots(t, ds)

	require.NoError(t, ds.ReplaceSpotComments("N0CALL", "K-1234", []datastore.SpotComment{
		{ID: 1, SpotTime: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), Comments: "QRV"},
		{ID: 2, SpotTime: time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC), Comments: "QSY 14062"},
	}))

	// No POTA client wired: stored comments are served as-is, newest first.
	rec := doRequest(c, http.MethodGet, "/api/v1/spots/1/comments", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var comments []datastore.SpotComment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comments))
	require.Len(t, comments, 2)
	assert.Equal(t, "QSY 14062", comments[0].Comments)
}
