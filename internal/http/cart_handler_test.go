package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walex4242/godheranca-storefront/internal/domain"
	"github.com/walex4242/godheranca-storefront/internal/service"
)

func TestGetCart_NoSession(t *testing.T) {
	handler := NewCartHandler(&mockStorefront{}, time.Second)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetCart_Success(t *testing.T) {
	mock := &mockStorefront{cart: domain.Cart{Lines: []domain.CartLine{{ItemID: "rice", Quantity: 2}}}}
	handler := NewCartHandler(mock, time.Second)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil), "sess-1")
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"sess-1"}, mock.lastSessionIDs)

	var cart domain.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
}

func TestAddItem_Validation(t *testing.T) {
	handler := NewCartHandler(&mockStorefront{}, time.Second)

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", "{"},
		{"missing store", `{"item_id":"rice"}`},
		{"missing item", `{"store_id":"store-1"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(tc.body)), "sess")
			rec := httptest.NewRecorder()
			handler.AddItem(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAddItem_Success(t *testing.T) {
	mock := &mockStorefront{cart: domain.Cart{Lines: []domain.CartLine{{ItemID: "rice", Quantity: 1}}}}
	handler := NewCartHandler(mock, time.Second)

	body := `{"store_id":"store-1","item_id":"rice"}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)), "sess")
	rec := httptest.NewRecorder()
	handler.AddItem(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "store-1", mock.lastStoreID)
	assert.Equal(t, "rice", mock.lastItemID)
}

func TestSetQuantity_NegativeRejected(t *testing.T) {
	handler := NewCartHandler(&mockStorefront{}, time.Second)

	router := chi.NewRouter()
	router.Put("/api/v1/cart/items/{item_id}", handler.SetQuantity)

	req := withSession(httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/rice", strings.NewReader(`{"quantity":-1}`)), "sess")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetQuantity_ItemNotFound(t *testing.T) {
	mock := &mockStorefront{cartErr: service.ErrItemNotFound}
	handler := NewCartHandler(mock, time.Second)

	router := chi.NewRouter()
	router.Put("/api/v1/cart/items/{item_id}", handler.SetQuantity)

	req := withSession(httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/ghost", strings.NewReader(`{"quantity":2}`)), "sess")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ghost", mock.lastItemID)
	assert.Equal(t, 2, mock.lastQuantity)
}

func TestRemoveItem_Success(t *testing.T) {
	mock := &mockStorefront{}
	handler := NewCartHandler(mock, time.Second)

	router := chi.NewRouter()
	router.Delete("/api/v1/cart/items/{item_id}", handler.RemoveItem)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/rice", nil), "sess")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "rice", mock.lastItemID)
}
