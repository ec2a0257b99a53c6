package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/walex4242/godheranca-storefront/internal/cache"
	"github.com/walex4242/godheranca-storefront/internal/domain"
	"github.com/walex4242/godheranca-storefront/internal/geo"
	"github.com/walex4242/godheranca-storefront/internal/geocode"
	"github.com/walex4242/godheranca-storefront/internal/order"
	"github.com/walex4242/godheranca-storefront/internal/pricing"
	"github.com/walex4242/godheranca-storefront/internal/repository"
)

// Config carries the service-level knobs the source kept hardcoded per page
// revision: the proximity radius and the fallback order phone number.
type Config struct {
	DefaultRadiusKm   float64
	DefaultStorePhone string
}

// Deps are the collaborators the storefront service is wired with.
type Deps struct {
	Repo      repository.StoreRepository
	Coords    cache.CoordinateCache
	Addresses cache.AddressStore
	Geocoder  geocode.Geocoder
	Router    geocode.Router
	Pricer    *pricing.Engine
	Publisher order.Publisher
	Sessions  *SessionStore
}

// StorefrontService orchestrates the store listing, per-session carts, and
// checkout. The heavy lifting lives in the pure geo and pricing packages;
// this layer owns the side effects around them.
type StorefrontService struct {
	repo      repository.StoreRepository
	coords    cache.CoordinateCache
	addresses cache.AddressStore
	geocoder  geocode.Geocoder
	router    geocode.Router
	pricer    *pricing.Engine
	publisher order.Publisher
	sessions  *SessionStore
	cfg       Config

	sfg singleflight.Group // dedupes concurrent geocoding of the same address
}

func NewStorefrontService(deps Deps, cfg Config) *StorefrontService {
	return &StorefrontService{
		repo:      deps.Repo,
		coords:    deps.Coords,
		addresses: deps.Addresses,
		geocoder:  deps.Geocoder,
		router:    deps.Router,
		pricer:    deps.Pricer,
		publisher: deps.Publisher,
		sessions:  deps.Sessions,
		cfg:       cfg,
	}
}

// NearbyStores lists the stores within radiusKm of the reference point,
// optionally narrowed by a free-text query. A radius of zero falls back to
// the configured default.
func (s *StorefrontService) NearbyStores(ctx context.Context, reference domain.GeoPoint, radiusKm float64, query string) ([]geo.Match, error) {
	if radiusKm <= 0 {
		radiusKm = s.cfg.DefaultRadiusKm
	}

	stores, err := s.repo.ListStores(ctx)
	if err != nil {
		return nil, err
	}

	unresolved := make(map[string]bool, len(stores))
	for _, store := range stores {
		if store.Coordinates == nil {
			unresolved[store.ID] = true
		}
	}

	matches := geo.FilterNearby(ctx, reference, stores, radiusKm, s.resolveCoordinates)

	// Write freshly resolved coordinates back to the catalog so the next
	// session skips the lookup. Best effort.
	for _, match := range matches {
		if !unresolved[match.Store.ID] || match.Store.Coordinates == nil {
			continue
		}
		if err := s.repo.SaveCoordinates(ctx, match.Store.ID, *match.Store.Coordinates); err != nil {
			log.Printf("saving coordinates for store %s failed: %v", match.Store.ID, err)
		}
	}

	return geo.FilterQuery(matches, query), nil
}

func (s *StorefrontService) resolveCoordinates(ctx context.Context, address string) (domain.GeoPoint, error) {
	if point, err := s.coords.GetCoordinates(ctx, address); err == nil {
		return *point, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		log.Printf("coordinate cache get error: %v", err)
	}

	v, err, _ := s.sfg.Do(strings.ToLower(strings.TrimSpace(address)), func() (interface{}, error) {
		point, err := s.geocoder.Geocode(ctx, address)
		if err != nil {
			return nil, err
		}
		if err := s.coords.SetCoordinates(ctx, address, point); err != nil {
			log.Printf("coordinate cache set error: %v", err)
		}
		return point, nil
	})
	if err != nil {
		return domain.GeoPoint{}, err
	}
	return v.(domain.GeoPoint), nil
}

// StoreItems returns a store's catalog, optionally narrowed to a category
// and a case-insensitive name search.
func (s *StorefrontService) StoreItems(ctx context.Context, storeID, category, query string) ([]domain.CatalogItem, error) {
	store, err := s.repo.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	items := make([]domain.CatalogItem, 0, len(store.Items))
	for _, item := range store.Items {
		if category != "" && item.Category != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(item.Name), q) {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// Cart returns the session's current cart. An unknown session is an empty
// cart, not an error.
func (s *StorefrontService) Cart(sessionID string) domain.Cart {
	snapshot, ok := s.sessions.Snapshot(sessionID)
	if !ok {
		return domain.Cart{}
	}
	return snapshot.Cart
}

// AddToCart puts one unit of the store's item into the session cart.
// Switching to a different store starts a fresh cart: a cart belongs to
// exactly one store.
func (s *StorefrontService) AddToCart(ctx context.Context, sessionID, storeID, itemID string) (domain.Cart, error) {
	store, err := s.repo.GetStore(ctx, storeID)
	if err != nil {
		return domain.Cart{}, err
	}

	var item *domain.CatalogItem
	for i := range store.Items {
		if store.Items[i].ID == itemID {
			item = &store.Items[i]
			break
		}
	}
	if item == nil {
		return domain.Cart{}, ErrItemNotFound
	}

	var cart domain.Cart
	s.sessions.Update(sessionID, func(session *Session) {
		if session.StoreID != storeID {
			session.Cart.Clear()
			session.StoreID = storeID
		}
		session.Cart.Add(*item)
		cart = session.Cart.Clone()
	})
	return cart, nil
}

// SetQuantity replaces an item's quantity; zero or below removes the line.
// An unknown session never has the item, and probing one must not create it.
func (s *StorefrontService) SetQuantity(sessionID, itemID string, quantity int) (domain.Cart, error) {
	var (
		cart  domain.Cart
		found bool
	)
	exists := s.sessions.UpdateExisting(sessionID, func(session *Session) {
		found = session.Cart.SetQuantity(itemID, quantity)
		cart = session.Cart.Clone()
	})
	if !exists || !found {
		return domain.Cart{}, ErrItemNotFound
	}
	return cart, nil
}

// RemoveFromCart drops an item from the session cart.
func (s *StorefrontService) RemoveFromCart(sessionID, itemID string) (domain.Cart, error) {
	var (
		cart  domain.Cart
		found bool
	)
	exists := s.sessions.UpdateExisting(sessionID, func(session *Session) {
		found = session.Cart.Remove(itemID)
		cart = session.Cart.Clone()
	})
	if !exists || !found {
		return domain.Cart{}, ErrItemNotFound
	}
	return cart, nil
}

// CheckoutResult is what the storefront hands back for the client to act
// on: the breakdown, the rendered summary, and the prefilled wa.me link.
type CheckoutResult struct {
	OrderID     string               `json:"order_id"`
	Pricing     domain.PricingResult `json:"pricing"`
	DistanceKm  *float64             `json:"distance_km,omitempty"`
	Message     string               `json:"message"`
	WhatsAppURL string               `json:"whatsapp_url"`
}

// Checkout prices the session cart and produces the outbound order. A
// routing failure is non-fatal: the delivery fee falls back to zero. The
// cart is cleared once the order is produced.
func (s *StorefrontService) Checkout(ctx context.Context, sessionID string, details order.Details) (*CheckoutResult, error) {
	snapshot, ok := s.sessions.Snapshot(sessionID)
	if !ok || snapshot.Cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	store, err := s.repo.GetStore(ctx, snapshot.StoreID)
	if err != nil {
		return nil, err
	}

	var distanceKm *float64
	km, err := s.router.DrivingDistanceKm(ctx, store.Address, details.Address)
	if err != nil {
		log.Printf("driving distance lookup failed, delivery fee defaults to 0: %v", err)
	} else {
		distanceKm = &km
	}

	result, err := s.pricer.Price(snapshot.Cart, distanceKm)
	if err != nil {
		return nil, err
	}

	message := order.FormatMessage(*store, snapshot.Cart, result, details)

	phone := store.Phone
	if phone == "" {
		phone = s.cfg.DefaultStorePhone
	}

	event := order.Event{
		OrderID:   uuid.NewString(),
		SessionID: sessionID,
		StoreID:   store.ID,
		Details:   details,
		Lines:     snapshot.Cart.Lines,
		Pricing:   result,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("publishing order event %s failed: %v", event.OrderID, err)
	}

	if err := s.addresses.SetAddress(ctx, sessionID, details.Address); err != nil {
		log.Printf("caching customer address failed: %v", err)
	}

	s.sessions.Update(sessionID, func(session *Session) {
		session.Cart.Clear()
	})

	return &CheckoutResult{
		OrderID:     event.OrderID,
		Pricing:     result,
		DistanceKm:  distanceKm,
		Message:     message,
		WhatsAppURL: order.WhatsAppLink(phone, message),
	}, nil
}

// CachedAddress returns the customer's last known delivery address, or
// cache.ErrCacheMiss when none is stored.
func (s *StorefrontService) CachedAddress(ctx context.Context, sessionID string) (string, error) {
	return s.addresses.GetAddress(ctx, sessionID)
}
