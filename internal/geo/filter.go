package geo

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/walex4242/godheranca-storefront/internal/domain"
)

// CoordinateResolver turns a street address into coordinates. Implementations
// are expected to be safe for concurrent use.
type CoordinateResolver func(ctx context.Context, address string) (domain.GeoPoint, error)

// Match is a store annotated with its resolved coordinates and the
// great-circle distance from the reference point.
type Match struct {
	Store      domain.Store `json:"store"`
	DistanceKm float64      `json:"distance_km"`
}

// FilterNearby returns the stores within radiusKm of reference, in input
// order. Stores without coordinates are resolved concurrently through
// resolve; a store whose lookup fails is dropped from the result, it never
// fails the whole listing. The input slice is not mutated.
func FilterNearby(ctx context.Context, reference domain.GeoPoint, stores []domain.Store, radiusKm float64, resolve CoordinateResolver) []Match {
	coords := make([]*domain.GeoPoint, len(stores))

	var wg sync.WaitGroup
	for i, store := range stores {
		if store.Coordinates != nil {
			coords[i] = store.Coordinates
			continue
		}
		if resolve == nil {
			continue
		}
		wg.Add(1)
		go func(i int, address string) {
			defer wg.Done()
			point, err := resolve(ctx, address)
			if err != nil {
				log.Printf("dropping store with unresolvable address %q: %v", address, err)
				return
			}
			coords[i] = &point
		}(i, store.Address)
	}
	wg.Wait()

	matches := make([]Match, 0, len(stores))
	for i, store := range stores {
		if coords[i] == nil {
			continue
		}
		distance := Distance(reference, *coords[i])
		if distance > radiusKm {
			continue
		}
		store.Coordinates = coords[i]
		matches = append(matches, Match{Store: store, DistanceKm: distance})
	}
	return matches
}

// FilterQuery keeps the matches whose store name or address contains query,
// case-insensitively. An empty query matches everything.
func FilterQuery(matches []Match, query string) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return matches
	}
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if strings.Contains(strings.ToLower(m.Store.Name), q) ||
			strings.Contains(strings.ToLower(m.Store.Address), q) {
			out = append(out, m)
		}
	}
	return out
}
