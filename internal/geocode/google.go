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

const googleBaseURL = "https://maps.googleapis.com"

// GoogleClient resolves addresses via the Google Geocoding API and driving
// distances via the Distance Matrix API.
type GoogleClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewGoogleClient(apiKey string) *GoogleClient {
	return &GoogleClient{
		apiKey:     apiKey,
		baseURL:    googleBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type googleGeocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (c *GoogleClient) Geocode(ctx context.Context, address string) (domain.GeoPoint, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("key", c.apiKey)
	endpoint := fmt.Sprintf("%s/maps/api/geocode/json?%s", c.baseURL, params.Encode())

	var resp googleGeocodeResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return domain.GeoPoint{}, fmt.Errorf("google geocoding %q: %w", address, err)
	}

	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return domain.GeoPoint{}, fmt.Errorf("google geocoding %q: status %s", address, resp.Status)
	}
	if len(resp.Results) == 0 {
		return domain.GeoPoint{}, fmt.Errorf("google geocoding %q: %w", address, ErrNoResults)
	}

	loc := resp.Results[0].Geometry.Location
	return domain.GeoPoint{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}

type googleDistanceMatrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value float64 `json:"value"` // meters
			} `json:"distance"`
		} `json:"elements"`
	} `json:"rows"`
}

func (c *GoogleClient) DrivingDistanceKm(ctx context.Context, origin, destination string) (float64, error) {
	params := url.Values{}
	params.Set("origins", origin)
	params.Set("destinations", destination)
	params.Set("mode", "driving")
	params.Set("key", c.apiKey)
	endpoint := fmt.Sprintf("%s/maps/api/distancematrix/json?%s", c.baseURL, params.Encode())

	var resp googleDistanceMatrixResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return 0, fmt.Errorf("google distance matrix: %w", err)
	}

	if resp.Status != "OK" || len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return 0, fmt.Errorf("google distance matrix (status %q): %w", resp.Status, ErrNoRoute)
	}

	element := resp.Rows[0].Elements[0]
	if element.Status != "OK" {
		return 0, fmt.Errorf("google distance matrix (element %q): %w", element.Status, ErrNoRoute)
	}

	return element.Distance.Value / 1000, nil
}

func (c *GoogleClient) getJSON(ctx context.Context, endpoint string, out any) error {
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
