package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/walex4242/godheranca-storefront/internal/order"
)

type CheckoutHandler struct {
	storefront Storefront
	timeout    time.Duration
}

func NewCheckoutHandler(storefront Storefront, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{storefront: storefront, timeout: timeout}
}

type CheckoutRequestDTO struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	Note          string `json:"note"`
	PaymentMethod string `json:"payment_method"`
}

// Checkout handles POST /api/v1/checkout.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Name == "" || req.Address == "" || req.PaymentMethod == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name, address and payment_method are required")
		return
	}

	result, err := h.storefront.Checkout(ctx, sessionID, order.Details{
		CustomerName:  req.Name,
		Address:       req.Address,
		Note:          req.Note,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// CachedAddress handles GET /api/v1/address, returning the customer's last
// known delivery address so the client can prefill the checkout form.
func (h *CheckoutHandler) CachedAddress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	address, err := h.storefront.CachedAddress(ctx, sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"address": address})
}
