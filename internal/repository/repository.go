package repository

import (
	"context"
	"errors"

	"github.com/walex4242/godheranca-storefront/internal/domain"
)

var ErrStoreNotFound = errors.New("store not found")

// StoreRepository is the store catalog. SaveCoordinates writes back lazily
// resolved coordinates so later sessions skip the geocoding lookup.
type StoreRepository interface {
	ListStores(ctx context.Context) ([]domain.Store, error)
	GetStore(ctx context.Context, id string) (*domain.Store, error)
	SaveCoordinates(ctx context.Context, id string, point domain.GeoPoint) error
}
