package order

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walex4242/godheranca-storefront/internal/domain"
)

func TestFormatMessage(t *testing.T) {
	store := domain.Store{Name: "Atacadão Central", Address: "Av. Brasil 100"}
	cart := domain.Cart{Lines: []domain.CartLine{
		{ItemID: "rice", Name: "Rice 5kg", UnitPrice: 19.99, Quantity: 2, Description: "Long grain"},
		{ItemID: "oil", Name: "Oil 900ml", UnitPrice: 10, DiscountPercent: 20, Quantity: 1},
	}}
	result := domain.PricingResult{Subtotal: 47.98, PickingFee: 3.25, DeliveryFee: 12.5, Total: 63.73}
	details := Details{
		CustomerName:  "Maria",
		Address:       "Rua das Flores 5",
		Note:          "Ring the bell",
		PaymentMethod: "Pix",
	}

	msg := FormatMessage(store, cart, result, details)

	assert.Contains(t, msg, "Name: Maria")
	assert.Contains(t, msg, "Address: Rua das Flores 5")
	assert.Contains(t, msg, "Note: Ring the bell")
	assert.Contains(t, msg, "Payment method: Pix")
	assert.Contains(t, msg, "Store: Atacadão Central")
	assert.Contains(t, msg, "- Rice 5kg (x2): R$39.98")
	assert.Contains(t, msg, "- Oil 900ml (x1): R$8.00") // discounted line total
	assert.Contains(t, msg, "Cart subtotal: R$47.98")
	assert.Contains(t, msg, "Delivery fee: R$12.50")
	assert.Contains(t, msg, "Grand total: R$63.73")
}

func TestFormatMessage_OmitsEmptyNote(t *testing.T) {
	msg := FormatMessage(domain.Store{}, domain.Cart{}, domain.PricingResult{}, Details{PaymentMethod: "Pix"})
	assert.NotContains(t, msg, "Note:")
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("5551989741442", "Order details:\ntotal R$10.00")

	require.True(t, strings.HasPrefix(link, "https://wa.me/5551989741442?text="))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Order details:\ntotal R$10.00", parsed.Query().Get("text"))
}
