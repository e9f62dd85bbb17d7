package service_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aremaru/backend/config"
	"github.com/aremaru/backend/internal/service"
)

func newGeocoder(t *testing.T, handler http.HandlerFunc) *service.GeocodingService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return service.NewGeocodingService(&config.Config{
		GeocodingAPIKey: "test-key",
		GeocodingAPIURL: server.URL,
	})
}

func TestGeocodeResolve(t *testing.T) {
	geocoder := newGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "東京都千代田区丸の内1-1", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		fmt.Fprint(w, `{"status":"OK","results":[{"geometry":{"location":{"lat":35.6812,"lng":139.7671}}}]}`)
	})

	coords, err := geocoder.Resolve(context.Background(), "東京都千代田区丸の内1-1")
	require.NoError(t, err)
	require.NotNil(t, coords)
	assert.Equal(t, 35.6812, coords.Lat)
	assert.Equal(t, 139.7671, coords.Lng)
}

func TestGeocodeResolveZeroResults(t *testing.T) {
	geocoder := newGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ZERO_RESULTS","results":[]}`)
	})

	coords, err := geocoder.Resolve(context.Background(), "存在しない住所")
	assert.NoError(t, err)
	assert.Nil(t, coords)
}

func TestGeocodeResolveServerError(t *testing.T) {
	geocoder := newGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	coords, err := geocoder.Resolve(context.Background(), "住所")
	assert.NoError(t, err)
	assert.Nil(t, coords)
}

func TestGeocodeResolveMalformedBody(t *testing.T) {
	geocoder := newGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	})

	coords, err := geocoder.Resolve(context.Background(), "住所")
	assert.NoError(t, err)
	assert.Nil(t, coords)
}

func TestGeocodeResolveWithoutAPIKey(t *testing.T) {
	geocoder := service.NewGeocodingService(&config.Config{})

	coords, err := geocoder.Resolve(context.Background(), "住所")
	assert.NoError(t, err)
	assert.Nil(t, coords)
}
