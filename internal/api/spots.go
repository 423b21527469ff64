package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hunterlog/hunterlog-go/internal/enrich"
)

// GetSpots returns the stored spots with the current view filters applied.
func (c *Controller) GetSpots(ctx echo.Context) error {
	spots, err := c.DS.GetSpots(c.Filters.Predicates())
	if err != nil {
		return c.handleError(ctx, err, "failed to get spots")
	}
	return ctx.JSON(http.StatusOK, spots)
}

// GetSpotsByMode returns all spots with the given mode, bypassing the view
// filters.
func (c *Controller) GetSpotsByMode(ctx echo.Context) error {
	mode := ctx.Param("mode")
	if mode == "" {
		return badRequest(ctx, "missing mode")
	}

	spots, err := c.DS.GetSpotsByMode(mode)
	if err != nil {
		return c.handleError(ctx, err, "failed to get spots by mode")
	}
	return ctx.JSON(http.StatusOK, spots)
}

// GetSpot returns a single spot by id.
func (c *Controller) GetSpot(ctx echo.Context) error {
	id, err := parseID(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid spot id")
	}

	spot, err := c.DS.GetSpot(id)
	if err != nil {
		return c.handleError(ctx, err, "failed to get spot")
	}
	return ctx.JSON(http.StatusOK, spot)
}

// GetSpotComments returns the comments for the activation behind a spot,
// newest first. The stored set is refreshed from the POTA API first; a
// failed refresh serves the stored comments.
func (c *Controller) GetSpotComments(ctx echo.Context) error {
	id, err := parseID(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid spot id")
	}

	spot, err := c.DS.GetSpot(id)
	if err != nil {
		return c.handleError(ctx, err, "failed to get spot")
	}

	if c.Pota != nil {
		raw, err := c.Pota.GetSpotComments(ctx.Request().Context(), spot.Activator, spot.Reference)
		if err != nil {
			c.log.Warn("comment refresh failed, serving stored comments",
				"activator", spot.Activator, "park", spot.Reference, "error", err)
		} else if err := c.DS.ReplaceSpotComments(spot.Activator, spot.Reference,
			enrich.MapComments(raw)); err != nil {
			return c.handleError(ctx, err, "failed to store comments")
		}
	}

	comments, err := c.DS.GetSpotComments(spot.Activator, spot.Reference)
	if err != nil {
		return c.handleError(ctx, err, "failed to get comments")
	}
	return ctx.JSON(http.StatusOK, comments)
}

func parseID(value string) (uint, error) {
	id, err := strconv.ParseUint(value, 10, 32)
	return uint(id), err
}
