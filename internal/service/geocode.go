package service

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/aremaru/backend/config"
)

// Coordinates is a resolved latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// GeocodingService resolves addresses via the external geocoding HTTP
// service. One best-effort request per call: no retry, no caching. Any
// failure yields an unresolved result rather than an error, so store
// creation never blocks on geocoding.
type GeocodingService struct {
	apiKey string
	apiURL string
	client *http.Client
}

// Ensure GeocodingService implements Geocoder
var _ Geocoder = (*GeocodingService)(nil)

// NewGeocodingService creates a new GeocodingService instance.
func NewGeocodingService(cfg *config.Config) *GeocodingService {
	return &GeocodingService{
		apiKey: cfg.GeocodingAPIKey,
		apiURL: cfg.GeocodingAPIURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// geocodeResponse mirrors the service's JSON shape.
type geocodeResponse struct {
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

// Resolve issues one geocoding request for the address. It returns (nil,
// nil) when the address cannot be resolved for any reason; the error
// return is always nil and exists to satisfy Geocoder.
func (s *GeocodingService) Resolve(ctx context.Context, address string) (*Coordinates, error) {
	if s.apiKey == "" {
		log.Printf("[GeocodingService] API key not set, skipping geocoding")
		return nil, nil
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		log.Printf("[GeocodingService] failed to build request: %v", err)
		return nil, nil
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[GeocodingService] request failed: %v", err)
		return nil, nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[GeocodingService] unexpected status %d", resp.StatusCode)
		return nil, nil
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		log.Printf("[GeocodingService] failed to decode response: %v", err)
		return nil, nil
	}

	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		return nil, nil
	}

	location := decoded.Results[0].Geometry.Location
	return &Coordinates{Lat: location.Lat, Lng: location.Lng}, nil
}
