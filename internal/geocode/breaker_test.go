package geocode

import (
	"context"
	"errors"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walex4242/godheranca-storefront/internal/domain"
)

type fakeProvider struct {
	point domain.GeoPoint
	km    float64
	err   error
	calls int
}

func (f *fakeProvider) Geocode(context.Context, string) (domain.GeoPoint, error) {
	f.calls++
	return f.point, f.err
}

func (f *fakeProvider) DrivingDistanceKm(context.Context, string, string) (float64, error) {
	f.calls++
	return f.km, f.err
}

func TestBreakerProvider_PassesThrough(t *testing.T) {
	fake := &fakeProvider{point: domain.GeoPoint{Latitude: 1, Longitude: 2}, km: 7.5}
	breaker := NewBreakerProvider("fake", fake)

	point, err := breaker.Geocode(context.Background(), "addr")
	require.NoError(t, err)
	assert.Equal(t, fake.point, point)

	km, err := breaker.DrivingDistanceKm(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.InDelta(t, 7.5, km, 1e-9)
}

func TestBreakerProvider_OpensAfterConsecutiveFailures(t *testing.T) {
	fake := &fakeProvider{err: errors.New("vendor down")}
	breaker := NewBreakerProvider("fake", fake)

	// gobreaker's default ReadyToTrip fires after 5 consecutive failures.
	for i := 0; i < 6; i++ {
		_, _ = breaker.Geocode(context.Background(), "addr")
	}

	_, err := breaker.Geocode(context.Background(), "addr")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)

	// Routing has its own breaker and still reaches the provider.
	_, err = breaker.DrivingDistanceKm(context.Background(), "a", "b")
	assert.EqualError(t, err, "vendor down")
}
