package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/walex4242/godheranca-storefront/internal/domain"
	"github.com/walex4242/godheranca-storefront/internal/geo"
	"github.com/walex4242/godheranca-storefront/internal/order"
	"github.com/walex4242/godheranca-storefront/internal/service"
)

// Storefront is the slice of the service layer the handlers need. Kept as
// an interface so handler tests swap in a mock.
type Storefront interface {
	NearbyStores(ctx context.Context, reference domain.GeoPoint, radiusKm float64, query string) ([]geo.Match, error)
	StoreItems(ctx context.Context, storeID, category, query string) ([]domain.CatalogItem, error)
	Cart(sessionID string) domain.Cart
	AddToCart(ctx context.Context, sessionID, storeID, itemID string) (domain.Cart, error)
	SetQuantity(sessionID, itemID string, quantity int) (domain.Cart, error)
	RemoveFromCart(sessionID, itemID string) (domain.Cart, error)
	Checkout(ctx context.Context, sessionID string, details order.Details) (*service.CheckoutResult, error)
	CachedAddress(ctx context.Context, sessionID string) (string, error)
}

type StoreHandler struct {
	storefront Storefront
	timeout    time.Duration
}

func NewStoreHandler(storefront Storefront, timeout time.Duration) *StoreHandler {
	return &StoreHandler{storefront: storefront, timeout: timeout}
}

// ListNearby handles GET /api/v1/stores?lat=&lon=&radius_km=&q=.
func (h *StoreHandler) ListNearby(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if errLat != nil || errLon != nil {
		respondError(w, http.StatusBadRequest, "invalid_location", "lat and lon must be decimal degrees")
		return
	}

	radiusKm := 0.0
	if raw := r.URL.Query().Get("radius_km"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, "invalid_radius", "radius_km must be a non-negative number")
			return
		}
		radiusKm = parsed
	}

	reference := domain.GeoPoint{Latitude: lat, Longitude: lon}
	matches, err := h.storefront.NearbyStores(ctx, reference, radiusKm, r.URL.Query().Get("q"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, matches)
}

// Items handles GET /api/v1/stores/{store_id}/items?category=&q=.
func (h *StoreHandler) Items(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	storeID := chi.URLParam(r, "store_id")

	items, err := h.storefront.StoreItems(ctx, storeID, r.URL.Query().Get("category"), r.URL.Query().Get("q"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, items)
}
