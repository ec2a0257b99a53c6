package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	storefront Storefront
	timeout    time.Duration
}

func NewCartHandler(storefront Storefront, timeout time.Duration) *CartHandler {
	return &CartHandler{storefront: storefront, timeout: timeout}
}

type AddItemRequestDTO struct {
	StoreID string `json:"store_id"`
	ItemID  string `json:"item_id"`
}

type SetQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

// Get handles GET /api/v1/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	respondJSON(w, http.StatusOK, h.storefront.Cart(sessionID))
}

// AddItem handles POST /api/v1/cart/items. Adding an item that is already
// in the cart bumps its quantity by one.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.StoreID == "" || req.ItemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "store_id and item_id are required")
		return
	}

	cart, err := h.storefront.AddToCart(ctx, sessionID, req.StoreID, req.ItemID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, cart)
}

// SetQuantity handles PUT /api/v1/cart/items/{item_id}. A quantity of zero
// removes the line.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	itemID := chi.URLParam(r, "item_id")

	var req SetQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity < 0 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must not be negative")
		return
	}

	cart, err := h.storefront.SetQuantity(sessionID, itemID, req.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

// RemoveItem handles DELETE /api/v1/cart/items/{item_id}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	itemID := chi.URLParam(r, "item_id")

	cart, err := h.storefront.RemoveFromCart(sessionID, itemID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}
