package cache

import (
	"context"
	"errors"

	"github.com/walex4242/godheranca-storefront/internal/domain"
)

// CoordinateCache remembers geocoded coordinates per street address so the
// same address is not re-geocoded every time the listing refreshes.
type CoordinateCache interface {
	GetCoordinates(ctx context.Context, address string) (*domain.GeoPoint, error)
	SetCoordinates(ctx context.Context, address string, point domain.GeoPoint) error
}

// AddressStore keeps the customer's last known delivery address per session
// so checkout can prefill it instead of re-prompting.
type AddressStore interface {
	GetAddress(ctx context.Context, sessionID string) (string, error)
	SetAddress(ctx context.Context, sessionID, address string) error
}

var ErrCacheMiss = errors.New("cache miss")
