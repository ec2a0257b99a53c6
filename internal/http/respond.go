package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/walex4242/godheranca-storefront/internal/cache"
	"github.com/walex4242/godheranca-storefront/internal/pricing"
	"github.com/walex4242/godheranca-storefront/internal/repository"
	"github.com/walex4242/godheranca-storefront/internal/service"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrStoreNotFound):
		respondError(w, http.StatusNotFound, "store_not_found", err.Error())
	case errors.Is(err, service.ErrItemNotFound):
		respondError(w, http.StatusNotFound, "item_not_found", err.Error())
	case errors.Is(err, service.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.Is(err, pricing.ErrInvalidCart):
		respondError(w, http.StatusBadRequest, "invalid_cart", err.Error())
	case errors.Is(err, cache.ErrCacheMiss):
		respondError(w, http.StatusNotFound, "not_found", "no cached value")
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
