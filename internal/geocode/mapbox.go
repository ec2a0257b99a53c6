package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/walex4242/godheranca-storefront/internal/domain"
)

const mapboxBaseURL = "https://api.mapbox.com"

// MapboxClient resolves addresses via the Mapbox Geocoding API and driving
// distances via the Mapbox Directions API.
type MapboxClient struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

func NewMapboxClient(token string) *MapboxClient {
	return &MapboxClient{
		token:      token,
		baseURL:    mapboxBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type mapboxGeocodeResponse struct {
	Features []struct {
		// Center is [longitude, latitude].
		Center    []float64 `json:"center"`
		PlaceName string    `json:"place_name"`
	} `json:"features"`
}

func (c *MapboxClient) Geocode(ctx context.Context, address string) (domain.GeoPoint, error) {
	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?access_token=%s&limit=1",
		c.baseURL, url.PathEscape(address), url.QueryEscape(c.token))

	var resp mapboxGeocodeResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return domain.GeoPoint{}, fmt.Errorf("mapbox geocoding %q: %w", address, err)
	}

	if len(resp.Features) == 0 || len(resp.Features[0].Center) < 2 {
		return domain.GeoPoint{}, fmt.Errorf("mapbox geocoding %q: %w", address, ErrNoResults)
	}

	center := resp.Features[0].Center
	return domain.GeoPoint{Latitude: center[1], Longitude: center[0]}, nil
}

type mapboxDirectionsResponse struct {
	Routes []struct {
		Distance float64 `json:"distance"` // meters
	} `json:"routes"`
	Code string `json:"code"`
}

func (c *MapboxClient) DrivingDistanceKm(ctx context.Context, origin, destination string) (float64, error) {
	from, err := c.Geocode(ctx, origin)
	if err != nil {
		return 0, err
	}
	to, err := c.Geocode(ctx, destination)
	if err != nil {
		return 0, err
	}

	coords := fmt.Sprintf("%f,%f;%f,%f", from.Longitude, from.Latitude, to.Longitude, to.Latitude)
	endpoint := fmt.Sprintf("%s/directions/v5/mapbox/driving/%s?access_token=%s",
		c.baseURL, url.PathEscape(coords), url.QueryEscape(c.token))

	var resp mapboxDirectionsResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return 0, fmt.Errorf("mapbox directions: %w", err)
	}

	if resp.Code != "Ok" || len(resp.Routes) == 0 {
		return 0, fmt.Errorf("mapbox directions (code %q): %w", resp.Code, ErrNoRoute)
	}

	return resp.Routes[0].Distance / 1000, nil
}

func (c *MapboxClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
