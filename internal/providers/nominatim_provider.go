package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"evlanka/ampere/internal/constants"
	"evlanka/ampere/internal/models/dtos"
)

// Geocoder translates free-text addresses into coordinates.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]dtos.GeocodeResult, error)
}

// NominatimProvider implements Geocoder against the OpenStreetMap Nominatim API
type NominatimProvider struct {
	BaseURL     string
	CountryCode string
	UserAgent   string
	Client      *http.Client
}

var _ Geocoder = (*NominatimProvider)(nil)

// NewNominatimProvider creates a new Nominatim geocoding provider
func NewNominatimProvider() *NominatimProvider {
	baseURL := os.Getenv("NOMINATIM_BASE_URL")
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org" // Default
	}

	countryCode := os.Getenv("NOMINATIM_COUNTRY_CODE")
	if countryCode == "" {
		countryCode = constants.DefaultCountryCode
	}

	return &NominatimProvider{
		BaseURL:     baseURL,
		CountryCode: countryCode,
		// Nominatim rejects requests without an identifying User-Agent
		UserAgent: "ampere-station-locator",
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetProviderType returns the provider type identifier
func (p *NominatimProvider) GetProviderType() string {
	return "nominatim"
}

// Search geocodes a free-text query, restricted to the configured country.
// Results come back in Nominatim's relevance order.
func (p *NominatimProvider) Search(ctx context.Context, query string) ([]dtos.GeocodeResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ProviderError{
			Code:    constants.ErrCodeEmptyQuery,
			Message: constants.GetErrorMessage(constants.ErrCodeEmptyQuery),
		}
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("countrycodes", p.CountryCode)
	params.Set("limit", "10")
	params.Set("addressdetails", "1")

	endpoint := "/search?" + params.Encode()

	var results []dtos.GeocodeResult
	if _, err := p.doGET(ctx, endpoint, &results); err != nil {
		return nil, err
	}

	return results, nil
}

// ResolveLocation geocodes a query and converts the best hit into a Location.
func (p *NominatimProvider) ResolveLocation(ctx context.Context, query string) (*dtos.Location, string, error) {
	results, err := p.Search(ctx, query)
	if err != nil {
		return nil, "", err
	}

	if len(results) == 0 {
		return nil, "", &ProviderError{
			Code:    constants.ErrCodeNoResults,
			Message: constants.GetErrorMessage(constants.ErrCodeNoResults),
		}
	}

	top := results[0]
	lat, latErr := strconv.ParseFloat(top.Lat, 64)
	lon, lonErr := strconv.ParseFloat(top.Lon, 64)
	if latErr != nil || lonErr != nil {
		return nil, "", &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "Geocode result carries non-numeric coordinates",
			Details: fmt.Sprintf("lat=%q lon=%q", top.Lat, top.Lon),
		}
	}

	return &dtos.Location{Latitude: lat, Longitude: lon}, top.DisplayName, nil
}

// doGET performs a GET request against the Nominatim API
func (p *NominatimProvider) doGET(ctx context.Context, endpoint string, result interface{}) (int, error) {
	reqURL := p.BaseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}

	req.Header.Set("User-Agent", p.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return resp.StatusCode, &ProviderError{
			Code:    constants.ErrCodeRateLimited,
			Message: constants.GetErrorMessage(constants.ErrCodeRateLimited),
		}
	}

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: fmt.Sprintf("Geocoding service returned status %d", resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return resp.StatusCode, &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "Failed to decode response",
			Err:     err,
		}
	}

	return resp.StatusCode, nil
}
