// Package geocode provides the place search, reverse geocoding, and
// location label resolution used by the dispatcher console. The client
// speaks the Mapbox geocoding v5 contract but is configured per deployment;
// everything above it depends only on the narrow operation set.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/openhaul/dispatch/pkg/config"
)

// DefaultEndpoint is the production geocoding endpoint used when the
// configuration does not name one.
const DefaultEndpoint = "https://api.mapbox.com/geocoding/v5/mapbox.places"

// MinQueryLength is the shortest query Search will send upstream. Shorter
// queries return an empty result set without a network call.
const MinQueryLength = 3

// Place is a resolved location suggestion.
type Place struct {
	Label string  `json:"label"`
	Lng   float64 `json:"lng"`
	Lat   float64 `json:"lat"`
}

// Client is an HTTP client for the geocoding provider.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

// NewClient creates a geocoding client from configuration. A missing token
// is not an error; lookups degrade per operation (empty results or the LOC
// sentinel) so the console keeps working without location features.
func NewClient(cfg config.GeocoderData, logger *zap.SugaredLogger) *Client {
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// HasToken reports whether the client is configured with a credential.
func (c *Client) HasToken() bool {
	return c.token != ""
}

type geocodeFeature struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	PlaceName  string    `json:"place_name"`
	PlaceType  []string  `json:"place_type"`
	Center     []float64 `json:"center"`
	Properties struct {
		ShortCode string `json:"short_code"`
	} `json:"properties"`
}

type geocodeResponse struct {
	Features []geocodeFeature `json:"features"`
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*geocodeResponse, error) {
	params.Set("access_token", c.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building geocoding request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding request failed with status %d", resp.StatusCode)
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding geocoding response: %w", err)
	}
	return &decoded, nil
}

// Search returns autocomplete suggestions for a free-text query. Queries
// shorter than MinQueryLength, and any query without a configured token,
// produce an empty result set.
func (c *Client) Search(ctx context.Context, query string) ([]Place, error) {
	trimmed := strings.TrimSpace(query)
	if c.token == "" || len(trimmed) < MinQueryLength {
		return []Place{}, nil
	}

	params := url.Values{}
	params.Set("autocomplete", "true")
	params.Set("limit", "5")
	params.Set("types", "address,place,locality")

	decoded, err := c.get(ctx, "/"+url.PathEscape(trimmed)+".json", params)
	if err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(decoded.Features))
	for _, f := range decoded.Features {
		p := Place{Label: f.PlaceName}
		if len(f.Center) >= 2 {
			p.Lng, p.Lat = f.Center[0], f.Center[1]
		}
		places = append(places, p)
	}
	return places, nil
}

// Reverse resolves a coordinate pair to its nearest addressable place.
func (c *Client) Reverse(ctx context.Context, lng, lat float64) (Place, error) {
	if c.token == "" {
		return Place{}, fmt.Errorf("geocoder token not configured")
	}

	params := url.Values{}
	params.Set("limit", "1")
	params.Set("types", "address,place,locality")

	decoded, err := c.get(ctx, fmt.Sprintf("/%f,%f.json", lng, lat), params)
	if err != nil {
		return Place{}, err
	}

	place := Place{Label: fmt.Sprintf("%f, %f", lat, lng), Lng: lng, Lat: lat}
	if len(decoded.Features) > 0 && decoded.Features[0].PlaceName != "" {
		place.Label = decoded.Features[0].PlaceName
	}
	return place, nil
}

// RetrieveCoordinates is the follow-up lookup for a suggestion that arrived
// without coordinates: it forward-geocodes the suggestion's identifier and
// returns the first feature's center.
func (c *Client) RetrieveCoordinates(ctx context.Context, id string) (Place, error) {
	if c.token == "" {
		return Place{}, fmt.Errorf("geocoder token not configured")
	}

	params := url.Values{}
	params.Set("limit", "1")

	decoded, err := c.get(ctx, "/"+url.PathEscape(id)+".json", params)
	if err != nil {
		return Place{}, err
	}
	if len(decoded.Features) == 0 || len(decoded.Features[0].Center) < 2 {
		return Place{}, fmt.Errorf("no coordinates found for %q", id)
	}

	f := decoded.Features[0]
	return Place{Label: f.PlaceName, Lng: f.Center[0], Lat: f.Center[1]}, nil
}

// ReverseLabel resolves a coordinate pair to the short "City, ST" form used
// on log sheet remarks. Any failure short of a transport error degrades to
// the LOC sentinel rather than surfacing upstream.
func (c *Client) ReverseLabel(ctx context.Context, lng, lat float64) (string, error) {
	if c.token == "" {
		return UnresolvedLabel, nil
	}

	params := url.Values{}
	params.Set("types", "place,locality,region")

	decoded, err := c.get(ctx, fmt.Sprintf("/%f,%f.json", lng, lat), params)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		c.logger.Debugf("reverse geocode failed for %f,%f: %v", lng, lat, err)
		return UnresolvedLabel, nil
	}
	return parseCityState(decoded.Features), nil
}

// parseCityState extracts a "City, ST" label from geocoding features: the
// first place or locality supplies the city, the first region's short code
// supplies the state. Whatever half is present still renders; nothing
// usable yields the LOC sentinel.
func parseCityState(features []geocodeFeature) string {
	var city, state string
	for _, f := range features {
		for _, t := range f.PlaceType {
			if city == "" && (t == "place" || t == "locality") {
				city = f.Text
			}
			if state == "" && t == "region" {
				code := strings.ToUpper(f.Properties.ShortCode)
				if i := strings.LastIndex(code, "-"); i >= 0 {
					code = code[i+1:]
				}
				state = code
			}
		}
	}
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	case state != "":
		return state
	default:
		return UnresolvedLabel
	}
}
