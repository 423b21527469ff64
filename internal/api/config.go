package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hunterlog/hunterlog-go/internal/datastore"
)

// configPayload is the operator configuration on the wire.
type configPayload struct {
	MyCall     string `json:"my_call" validate:"required"`
	MyGrid6    string `json:"my_grid6" validate:"omitempty,len=6"`
	DefaultPwr int    `json:"default_pwr" validate:"gte=0"`
	FlrHost    string `json:"flr_host"`
	FlrPort    int    `json:"flr_port" validate:"gte=0,lte=65535"`
	AdifHost   string `json:"adif_host"`
	AdifPort   int    `json:"adif_port" validate:"gte=0,lte=65535"`
}

// GetUserConfig returns the operator configuration, creating defaults on
// first access.
func (c *Controller) GetUserConfig(ctx echo.Context) error {
	config, err := c.DS.GetUserConfig()
	if err != nil {
		return c.handleError(ctx, err, "failed to get user config")
	}
	return ctx.JSON(http.StatusOK, config)
}

// UpdateUserConfig overwrites the operator configuration.
func (c *Controller) UpdateUserConfig(ctx echo.Context) error {
	var payload configPayload
	if err := ctx.Bind(&payload); err != nil {
		return badRequest(ctx, "invalid config payload")
	}
	if err := c.validate.Struct(&payload); err != nil {
		return badRequest(ctx, "invalid config fields")
	}

	config := &datastore.UserConfig{
		MyCall:     payload.MyCall,
		MyGrid6:    payload.MyGrid6,
		DefaultPwr: payload.DefaultPwr,
		FlrHost:    payload.FlrHost,
		FlrPort:    payload.FlrPort,
		AdifHost:   payload.AdifHost,
		AdifPort:   payload.AdifPort,
	}
	if err := c.DS.UpdateUserConfig(config); err != nil {
		return c.handleError(ctx, err, "failed to update user config")
	}
	return ctx.JSON(http.StatusOK, config)
}

// GetVersion returns the schema version marker.
func (c *Controller) GetVersion(ctx echo.Context) error {
	version, err := c.DS.SchemaVersion()
	if err != nil {
		return c.handleError(ctx, err, "failed to get schema version")
	}
	return ctx.JSON(http.StatusOK, map[string]string{"version": version})
}
