package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hunterlog/hunterlog-go/internal/band"
)

// filterState mirrors the view filter settings on the wire. The band is
// carried by display name; empty means no band filter.
type filterState struct {
	Band         string `json:"band"`
	Region       string `json:"region"`
	QRTExclusion bool   `json:"qrtExclusion"`
}

// GetFilters returns the current view filter state.
func (c *Controller) GetFilters(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, filterState{
		Band:         c.Filters.Band().Name(),
		Region:       c.Filters.Region(),
		QRTExclusion: c.Filters.QRTExclusion(),
	})
}

// UpdateFilters replaces the view filter state.
func (c *Controller) UpdateFilters(ctx echo.Context) error {
	var state filterState
	if err := ctx.Bind(&state); err != nil {
		return badRequest(ctx, "invalid filter payload")
	}

	selected := band.NoBand
	if state.Band != "" {
		if selected = band.FromName(state.Band); selected == band.NoBand {
			return badRequest(ctx, "unknown band "+state.Band)
		}
	}

	c.Filters.SetBand(selected)
	c.Filters.SetRegion(state.Region)
	c.Filters.SetQRTExclusion(state.QRTExclusion)

	return c.GetFilters(ctx)
}
