package geocode

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/walex4242/godheranca-storefront/internal/domain"
)

// BreakerProvider wraps a Provider in circuit breakers so a flapping vendor
// stops being hammered. Geocoding and routing trip independently.
type BreakerProvider struct {
	next    Provider
	geocode *gobreaker.CircuitBreaker[domain.GeoPoint]
	route   *gobreaker.CircuitBreaker[float64]
}

func NewBreakerProvider(name string, next Provider) *BreakerProvider {
	settings := func(suffix string) gobreaker.Settings {
		return gobreaker.Settings{
			Name:        name + "-" + suffix,
			MaxRequests: 3,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
		}
	}
	return &BreakerProvider{
		next:    next,
		geocode: gobreaker.NewCircuitBreaker[domain.GeoPoint](settings("geocode")),
		route:   gobreaker.NewCircuitBreaker[float64](settings("route")),
	}
}

func (b *BreakerProvider) Geocode(ctx context.Context, address string) (domain.GeoPoint, error) {
	return b.geocode.Execute(func() (domain.GeoPoint, error) {
		return b.next.Geocode(ctx, address)
	})
}

func (b *BreakerProvider) DrivingDistanceKm(ctx context.Context, origin, destination string) (float64, error) {
	return b.route.Execute(func() (float64, error) {
		return b.next.DrivingDistanceKm(ctx, origin, destination)
	})
}
