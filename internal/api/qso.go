package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hunterlog/hunterlog-go/internal/band"
	"github.com/hunterlog/hunterlog-go/internal/callsign"
	"github.com/hunterlog/hunterlog-go/internal/datastore"
	"github.com/hunterlog/hunterlog-go/internal/enrich"
)

// qsoPayload is the logging request from the frontend.
type qsoPayload struct {
	Call       string `json:"call" validate:"required"`
	RstSent    string `json:"rst_sent"`
	RstRecv    string `json:"rst_recv"`
	Freq       string `json:"freq" validate:"required"`
	FreqRx     string `json:"freq_rx"`
	Mode       string `json:"mode"`
	Comment    string `json:"comment"`
	QSODate    string `json:"qso_date"`
	TimeOn     string `json:"time_on" validate:"required"`
	TxPwr      int    `json:"tx_pwr"`
	RxPwr      int    `json:"rx_pwr"`
	Gridsquare string `json:"gridsquare"`
	State      string `json:"state"`
	Sig        string `json:"sig"`
	SigInfo    string `json:"sig_info"`
}

// GetAppQSOs returns the contacts logged through this application.
func (c *Controller) GetAppQSOs(ctx echo.Context) error {
	qsos, err := c.DS.GetAppQSOs()
	if err != nil {
		return c.handleError(ctx, err, "failed to get logged qsos")
	}
	return ctx.JSON(http.StatusOK, qsos)
}

// GetQSODraft prefills a contact from a spot: callsign, frequency, mode,
// default report and the park as the special interest info.
func (c *Controller) GetQSODraft(ctx echo.Context) error {
	id, err := parseID(ctx.Param("spotId"))
	if err != nil {
		return badRequest(ctx, "invalid spot id")
	}

	spot, err := c.DS.GetSpot(id)
	if err != nil {
		return c.handleError(ctx, err, "failed to get spot")
	}

	config, err := c.DS.GetUserConfig()
	if err != nil {
		return c.handleError(ctx, err, "failed to get user config")
	}

	rst := "59"
	if strings.EqualFold(spot.Mode, "CW") || strings.EqualFold(spot.Mode, "FT8") {
		rst = "599"
	}

	draft := datastore.QSO{
		Call:       spot.Activator,
		RstSent:    rst,
		RstRecv:    rst,
		Freq:       spot.Frequency,
		FreqRx:     spot.Frequency,
		Mode:       spot.Mode,
		QSODate:    time.Now().UTC(),
		TimeOn:     time.Now().UTC(),
		TxPwr:      config.DefaultPwr,
		Gridsquare: spot.Grid6,
		Sig:        "POTA",
		SigInfo:    spot.Reference,
	}

	// The activator's name, when known, seeds the comment line.
	if activator, err := c.DS.GetActivator(callsign.Base(spot.Activator)); err == nil {
		draft.Comment = "[" + spot.Reference + " " + spot.ParkName + "] " + activator.Name
	} else if errors.Is(err, datastore.ErrNotFound) {
		draft.Comment = "[" + spot.Reference + " " + spot.ParkName + "]"
	} else {
		return c.handleError(ctx, err, "failed to get activator")
	}

	return ctx.JSON(http.StatusOK, draft)
}

// LogQSO persists a contact and updates the park hunt counter.
func (c *Controller) LogQSO(ctx echo.Context) error {
	var payload qsoPayload
	if err := ctx.Bind(&payload); err != nil {
		return badRequest(ctx, "invalid qso payload")
	}
	if err := c.validate.Struct(&payload); err != nil {
		return badRequest(ctx, "missing required qso fields")
	}

	timeOn, err := parseClientTime(payload.TimeOn)
	if err != nil {
		return badRequest(ctx, "invalid time_on")
	}
	qsoDate := timeOn
	if payload.QSODate != "" {
		if qsoDate, err = parseClientTime(payload.QSODate); err != nil {
			return badRequest(ctx, "invalid qso_date")
		}
	}

	qso := &datastore.QSO{
		Call:       payload.Call,
		RstSent:    payload.RstSent,
		RstRecv:    payload.RstRecv,
		Freq:       payload.Freq,
		FreqRx:     payload.FreqRx,
		Mode:       payload.Mode,
		Comment:    payload.Comment,
		QSODate:    qsoDate,
		TimeOn:     timeOn,
		TxPwr:      payload.TxPwr,
		RxPwr:      payload.RxPwr,
		Gridsquare: payload.Gridsquare,
		State:      payload.State,
		Sig:        payload.Sig,
		SigInfo:    payload.SigInfo,
		FromApp:    true,
		CnfmHunt:   false,
	}

	id, err := c.DS.SaveQSO(qso)
	if err != nil {
		return c.handleError(ctx, err, "failed to save qso")
	}

	if payload.SigInfo != "" {
		if err := c.DS.IncrementParkHunts(payload.SigInfo); err != nil {
			// Counter drift only; the contact itself is logged.
			c.log.Warn("park hunt increment failed", "reference", payload.SigInfo, "error", err)
		}
		c.refreshParkMetadata(ctx.Request().Context(), payload.SigInfo)
	}
	c.refreshActivatorStats(ctx.Request().Context(), payload.Call)

	if c.Metrics != nil {
		c.Metrics.QSOsLogged.Inc()
	}
	c.log.Info("qso logged", "id", id, "call", payload.Call,
		"freq", payload.Freq, "band", band.Classify(payload.Freq).Name())

	return ctx.JSON(http.StatusCreated, map[string]uint{"qsoId": id})
}

// refreshParkMetadata backfills full park metadata after a hunt, so a park
// first seen through in-app logging is not left as a bare counter row.
// Best-effort: the contact is already saved.
func (c *Controller) refreshParkMetadata(ctx context.Context, reference string) {
	if c.Pota == nil {
		return
	}
	raw, err := c.Pota.GetPark(ctx, reference)
	if err != nil {
		c.log.Warn("park metadata fetch failed", "reference", reference, "error", err)
		return
	}
	if raw == nil {
		return
	}
	if err := c.DS.UpsertPark(enrich.MapPark(raw)); err != nil {
		c.log.Warn("park metadata upsert failed", "reference", reference, "error", err)
	}
}

// refreshActivatorStats upserts the worked activator's POTA stats.
// Best-effort, like the park backfill.
func (c *Controller) refreshActivatorStats(ctx context.Context, call string) {
	if c.Pota == nil || call == "" {
		return
	}
	stats, err := c.Pota.GetActivatorStats(ctx, call)
	if err != nil {
		c.log.Warn("activator stats fetch failed", "call", call, "error", err)
		return
	}
	if stats == nil {
		return
	}
	activator := enrich.MapActivatorStats(callsign.Base(call), stats, time.Now().UTC())
	if err := c.DS.UpsertActivator(activator); err != nil {
		c.log.Warn("activator upsert failed", "call", call, "error", err)
	}
}

// parseClientTime accepts ISO-8601 with or without a trailing Z.
func parseClientTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", strings.TrimSuffix(value, "Z"), time.UTC)
}
