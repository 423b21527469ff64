// Package api exposes the HTTP surface consumed by the logging frontend.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hunterlog/hunterlog-go/internal/datastore"
	"github.com/hunterlog/hunterlog-go/internal/filter"
	"github.com/hunterlog/hunterlog-go/internal/hunt"
	"github.com/hunterlog/hunterlog-go/internal/observability"
	"github.com/hunterlog/hunterlog-go/internal/pota"
)

// Controller manages the API routes and handlers.
type Controller struct {
	Echo    *echo.Echo
	Group   *echo.Group
	DS      datastore.Interface
	Filters *filter.Set
	Ledger  *hunt.Ledger
	Pota    *pota.Client
	Metrics *observability.Metrics

	validate *validator.Validate
	log      *slog.Logger
}

// New creates the controller and registers all routes on a fresh echo
// instance.
func New(ds datastore.Interface, filters *filter.Set, ledger *hunt.Ledger,
	potaClient *pota.Client, metrics *observability.Metrics, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	c := &Controller{
		Echo:     e,
		DS:       ds,
		Filters:  filters,
		Ledger:   ledger,
		Pota:     potaClient,
		Metrics:  metrics,
		validate: validator.New(),
		log:      log,
	}
	c.initRoutes()
	return c
}

func (c *Controller) initRoutes() {
	c.Group = c.Echo.Group("/api/v1")

	c.Group.GET("/spots", c.GetSpots)
	c.Group.GET("/spots/mode/:mode", c.GetSpotsByMode)
	c.Group.GET("/spots/:id", c.GetSpot)
	c.Group.GET("/spots/:id/comments", c.GetSpotComments)

	c.Group.GET("/qso", c.GetAppQSOs)
	c.Group.GET("/qso/draft/:spotId", c.GetQSODraft)
	c.Group.POST("/qso", c.LogQSO)

	c.Group.GET("/filters", c.GetFilters)
	c.Group.PUT("/filters", c.UpdateFilters)

	c.Group.GET("/config", c.GetUserConfig)
	c.Group.PUT("/config", c.UpdateUserConfig)

	c.Group.GET("/version", c.GetVersion)

	if c.Metrics != nil {
		c.Echo.GET("/metrics", echo.WrapHandler(c.Metrics.Handler()))
	}
}

// Start runs the HTTP server on the given address, blocking until shutdown.
func (c *Controller) Start(listen string) error {
	return c.Echo.Start(listen)
}

// errorResponse is the JSON envelope for handler failures.
type errorResponse struct {
	Error string `json:"error"`
}

// handleError maps a handler failure to an HTTP response, logging server
// errors.
func (c *Controller) handleError(ctx echo.Context, err error, message string) error {
	code := http.StatusInternalServerError
	if errors.Is(err, datastore.ErrNotFound) {
		code = http.StatusNotFound
	} else {
		c.log.Error(message, "error", err, "path", ctx.Path())
	}
	return ctx.JSON(code, errorResponse{Error: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{Error: message})
}
