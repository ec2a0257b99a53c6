// Package geocode talks to external geocoding and routing providers.
// Mapbox and Google are interchangeable implementations of the same two
// capabilities; callers pick one at wiring time.
package geocode

import (
	"context"
	"errors"

	"github.com/walex4242/godheranca-storefront/internal/domain"
)

var (
	// ErrNoResults means the provider answered but found nothing for
	// the address.
	ErrNoResults = errors.New("no geocoding results")

	// ErrNoRoute means the provider could not produce a driving route
	// between the two addresses.
	ErrNoRoute = errors.New("no driving route found")
)

// Geocoder resolves a free-text street address into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.GeoPoint, error)
}

// Router resolves the driving distance between two addresses in kilometers.
type Router interface {
	DrivingDistanceKm(ctx context.Context, origin, destination string) (float64, error)
}

// Provider bundles both capabilities, which every supported vendor offers.
type Provider interface {
	Geocoder
	Router
}
