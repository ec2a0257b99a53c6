package http

import (
	"context"

	"github.com/walex4242/godheranca-storefront/internal/domain"
	"github.com/walex4242/godheranca-storefront/internal/geo"
	"github.com/walex4242/godheranca-storefront/internal/order"
	"github.com/walex4242/godheranca-storefront/internal/service"
)

// mockStorefront lets each test pin just the behavior it cares about.
type mockStorefront struct {
	nearby         []geo.Match
	nearbyErr      error
	items          []domain.CatalogItem
	itemsErr       error
	cart           domain.Cart
	cartErr        error
	checkout       *service.CheckoutResult
	checkoutErr    error
	address        string
	addressErr     error
	lastRadius     float64
	lastQuery      string
	lastDetails    order.Details
	lastQuantity   int
	lastItemID     string
	lastStoreID    string
	lastSessionIDs []string
}

func (m *mockStorefront) NearbyStores(_ context.Context, _ domain.GeoPoint, radiusKm float64, query string) ([]geo.Match, error) {
	m.lastRadius = radiusKm
	m.lastQuery = query
	return m.nearby, m.nearbyErr
}

func (m *mockStorefront) StoreItems(_ context.Context, storeID, _, query string) ([]domain.CatalogItem, error) {
	m.lastStoreID = storeID
	m.lastQuery = query
	return m.items, m.itemsErr
}

func (m *mockStorefront) Cart(sessionID string) domain.Cart {
	m.lastSessionIDs = append(m.lastSessionIDs, sessionID)
	return m.cart
}

func (m *mockStorefront) AddToCart(_ context.Context, sessionID, storeID, itemID string) (domain.Cart, error) {
	m.lastSessionIDs = append(m.lastSessionIDs, sessionID)
	m.lastStoreID = storeID
	m.lastItemID = itemID
	return m.cart, m.cartErr
}

func (m *mockStorefront) SetQuantity(sessionID, itemID string, quantity int) (domain.Cart, error) {
	m.lastSessionIDs = append(m.lastSessionIDs, sessionID)
	m.lastItemID = itemID
	m.lastQuantity = quantity
	return m.cart, m.cartErr
}

func (m *mockStorefront) RemoveFromCart(sessionID, itemID string) (domain.Cart, error) {
	m.lastSessionIDs = append(m.lastSessionIDs, sessionID)
	m.lastItemID = itemID
	return m.cart, m.cartErr
}

func (m *mockStorefront) Checkout(_ context.Context, sessionID string, details order.Details) (*service.CheckoutResult, error) {
	m.lastSessionIDs = append(m.lastSessionIDs, sessionID)
	m.lastDetails = details
	return m.checkout, m.checkoutErr
}

func (m *mockStorefront) CachedAddress(_ context.Context, sessionID string) (string, error) {
	m.lastSessionIDs = append(m.lastSessionIDs, sessionID)
	return m.address, m.addressErr
}
