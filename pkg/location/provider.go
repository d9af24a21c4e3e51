package location

import "context"

// Geocoder resolves coordinates into a human readable address.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, latitude, longitude float64) (string, error)
}
