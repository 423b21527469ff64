// Package pota wraps the Parks on the Air API endpoints used by the app.
package pota

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/hunterlog/hunterlog-go/internal/callsign"
	"github.com/hunterlog/hunterlog-go/internal/httpclient"
)

const (
	spotsPath     = "/spot/activator"
	commentsPath  = "/spot/comments/%s/%s"
	activatorPath = "/stats/user/%s"
	parkPath      = "/park/%s"

	// Activator stats move slowly; cache responses for a day.
	statsCacheTTL = 24 * time.Hour
)

// Spot is one activator spot as returned by the POTA spot endpoint.
type Spot struct {
	SpotID       uint    `json:"spotId"`
	Activator    string  `json:"activator"`
	Frequency    string  `json:"frequency"` // kHz, text
	Mode         string  `json:"mode"`
	Reference    string  `json:"reference"`
	ParkName     string  `json:"parkName"`
	SpotTime     string  `json:"spotTime"` // ISO-8601, no zone suffix
	Spotter      string  `json:"spotter"`
	Comments     string  `json:"comments"`
	Source       string  `json:"source"`
	Invalid      bool    `json:"invalid"`
	Name         string  `json:"name"`
	LocationDesc string  `json:"locationDesc"`
	Grid4        string  `json:"grid4"`
	Grid6        string  `json:"grid6"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Count        int     `json:"count"`
	Expire       int     `json:"expire"`
}

// Comment is one spot comment line for an activation.
type Comment struct {
	SpotID    uint   `json:"spotId"`
	SpotTime  string `json:"spotTime"`
	Spotter   string `json:"spotter"`
	Frequency string `json:"frequency"`
	Mode      string `json:"mode"`
	Band      string `json:"band"`
	Source    string `json:"source"`
	Comments  string `json:"comments"`
}

// ActivatorStats is the POTA user stats payload for one callsign.
type ActivatorStats struct {
	Callsign  string `json:"callsign"`
	Name      string `json:"name"`
	QTH       string `json:"qth"`
	Gravatar  string `json:"gravatar"`
	Activator struct {
		Activations int `json:"activations"`
		Parks       int `json:"parks"`
		QSOs        int `json:"qsos"`
	} `json:"activator"`
	Hunter struct {
		Parks int `json:"parks"`
		QSOs  int `json:"qsos"`
	} `json:"hunter"`
}

// Park is the POTA park metadata payload.
type Park struct {
	Reference           string  `json:"reference"`
	Name                string  `json:"name"`
	Grid4               string  `json:"grid4"`
	Grid6               string  `json:"grid6"`
	Active              int     `json:"active"`
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
	ParkComments        string  `json:"parkComments"`
	Accessibility       string  `json:"accessibility"`
	Sensitivity         string  `json:"sensitivity"`
	AccessMethods       string  `json:"accessMethods"`
	ActivationMethods   string  `json:"activationMethods"`
	Agencies            string  `json:"agencies"`
	AgencyURLs          string  `json:"agencyURLs"`
	ParkURLs            string  `json:"parkURLs"`
	ParktypeID          int     `json:"parktypeId"`
	ParktypeDesc        string  `json:"parktypeDesc"`
	LocationDesc        string  `json:"locationDesc"`
	LocationName        string  `json:"locationName"`
	EntityID            int     `json:"entityId"`
	EntityName          string  `json:"entityName"`
	ReferencePrefix     string  `json:"referencePrefix"`
	EntityDeleted       int     `json:"entityDeleted"`
	FirstActivator      string  `json:"firstActivator"`
	FirstActivationDate string  `json:"firstActivationDate"`
	Website             string  `json:"website"`
}

// Client calls the POTA API endpoints and returns their results.
type Client struct {
	baseURL    string
	http       *httpclient.Client
	statsCache *cache.Cache
	log        *slog.Logger
}

// NewClient returns a POTA API client rooted at baseURL.
func NewClient(baseURL string, http *httpclient.Client, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL:    baseURL,
		http:       http,
		statsCache: cache.New(statsCacheTTL, time.Hour),
		log:        log,
	}
}

// GetSpots returns all current activator spots.
func (c *Client) GetSpots(ctx context.Context) ([]Spot, error) {
	var spots []Spot
	if err := c.http.GetJSON(ctx, c.baseURL+spotsPath, &spots); err != nil {
		return nil, fmt.Errorf("fetching spots: %w", err)
	}
	return spots, nil
}

// GetSpotComments returns the comments for a given activation.
func (c *Client) GetSpotComments(ctx context.Context, activator, park string) ([]Comment, error) {
	path := fmt.Sprintf(commentsPath, url.PathEscape(activator), url.PathEscape(park))
	var comments []Comment
	if err := c.http.GetJSON(ctx, c.baseURL+path, &comments); err != nil {
		return nil, fmt.Errorf("fetching spot comments for %s at %s: %w", activator, park, err)
	}
	return comments, nil
}

// GetActivatorStats returns the POTA user stats for an activator. The
// callsign is normalized to its home segment first. A missing user (non-2xx
// response) yields (nil, nil): absence is not an error. Responses are
// cached for 24 hours.
func (c *Client) GetActivatorStats(ctx context.Context, activator string) (*ActivatorStats, error) {
	call := callsign.Home(activator)

	if cached, found := c.statsCache.Get(call); found {
		stats := cached.(ActivatorStats)
		return &stats, nil
	}

	path := fmt.Sprintf(activatorPath, url.PathEscape(call))
	var stats ActivatorStats
	if err := c.http.GetJSON(ctx, c.baseURL+path, &stats); err != nil {
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) {
			c.log.Debug("no activator stats", "call", call, "status", statusErr.StatusCode)
			return nil, nil
		}
		return nil, fmt.Errorf("fetching activator stats for %s: %w", call, err)
	}

	c.statsCache.SetDefault(call, stats)
	return &stats, nil
}

// GetPark returns the park metadata for a reference, or (nil, nil) when the
// reference is unknown to the API.
func (c *Client) GetPark(ctx context.Context, reference string) (*Park, error) {
	path := fmt.Sprintf(parkPath, url.PathEscape(reference))
	var park Park
	if err := c.http.GetJSON(ctx, c.baseURL+path, &park); err != nil {
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) {
			c.log.Debug("no park metadata", "reference", reference, "status", statusErr.StatusCode)
			return nil, nil
		}
		return nil, fmt.Errorf("fetching park %s: %w", reference, err)
	}
	return &park, nil
}
