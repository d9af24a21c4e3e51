package location

import (
	"context"
	"errors"
	"time"

	"googlemaps.github.io/maps"
)

// GoogleGeocoder uses the Google Maps Geocoding API to look up addresses.
type GoogleGeocoder struct {
	client  *maps.Client
	timeout time.Duration
}

// NewGoogleGeocoder creates a new GoogleGeocoder instance.
func NewGoogleGeocoder(apiKey string, opts ...maps.ClientOption) (*GoogleGeocoder, error) {
	c, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, err
	}

	return &GoogleGeocoder{
		client:  c,
		timeout: 10 * time.Second,
	}, nil
}

// ReverseGeocode returns the formatted address closest to the coordinates.
func (g *GoogleGeocoder) ReverseGeocode(ctx context.Context, latitude, longitude float64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	results, err := g.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: latitude, Lng: longitude},
	})
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", errors.New("no address found for coordinates")
	}

	return results[0].FormattedAddress, nil
}
