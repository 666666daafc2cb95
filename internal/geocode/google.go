// Package geocode turns a rider coordinate into a short display address
// ("臺北市信義區") using the Google Geocoding API, optionally cached in Redis.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ridehail/internal/domain/entities"
)

// DefaultBaseURL is the Google Geocoding JSON endpoint.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// UnknownLocation is the label shown when the address cannot be resolved.
const UnknownLocation = "未知位置"

var (
	ErrMissingAPIKey = errors.New("geocoding api key is not configured")
	ErrNoResults     = errors.New("no geocoding results")
)

// Resolver resolves a coordinate into a display address.
type Resolver interface {
	Resolve(ctx context.Context, loc entities.Location) (string, error)
}

// GoogleClient calls the Geocoding API reverse lookup (latlng=).
type GoogleClient struct {
	apiKey     string
	language   string
	baseURL    string
	httpClient *http.Client
}

// NewGoogleClient creates a client. An empty baseURL selects DefaultBaseURL.
func NewGoogleClient(apiKey, language, baseURL string, timeout time.Duration) *GoogleClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GoogleClient{
		apiKey:     apiKey,
		language:   language,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Resolve returns "city + district" for loc.
func (g *GoogleClient) Resolve(ctx context.Context, loc entities.Location) (string, error) {
	if g.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.buildURL(loc), nil)
	if err != nil {
		return "", fmt.Errorf("building geocode request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocode request: unexpected status %s", resp.Status)
	}

	var apiResp geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("decoding geocode response: %w", err)
	}

	switch apiResp.Status {
	case "OK":
	case "ZERO_RESULTS":
		return "", ErrNoResults
	default:
		return "", fmt.Errorf("geocode status %s: %s", apiResp.Status, apiResp.ErrorMessage)
	}
	if len(apiResp.Results) == 0 {
		return "", ErrNoResults
	}

	label := FormatAddress(apiResp.Results[0].AddressComponents)
	if label == "" {
		return "", ErrNoResults
	}
	return label, nil
}

func (g *GoogleClient) buildURL(loc entities.Location) string {
	params := url.Values{}
	params.Set("latlng", formatCoord(loc.Latitude)+","+formatCoord(loc.Longitude))
	if g.language != "" {
		params.Set("language", g.language)
	}
	params.Set("key", g.apiKey)
	return g.baseURL + "?" + params.Encode()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// AddressComponent is one entry of a geocoding result's address_components.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

type geocodeResponse struct {
	Results []struct {
		AddressComponents []AddressComponent `json:"address_components"`
		FormattedAddress  string             `json:"formatted_address"`
	} `json:"results"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// FormatAddress builds the display label from address components: the city
// (administrative_area_level_1 or locality) followed by the district
// (administrative_area_level_3 or sublocality_level_1). Later components
// override earlier ones. Returns "" when neither is present.
func FormatAddress(components []AddressComponent) string {
	var city, district string
	for _, c := range components {
		for _, t := range c.Types {
			switch t {
			case "administrative_area_level_1", "locality":
				city = c.LongName
			case "administrative_area_level_3", "sublocality_level_1":
				district = c.LongName
			}
		}
	}
	return city + district
}
