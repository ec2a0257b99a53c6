package order

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/walex4242/godheranca-storefront/internal/domain"
)

// Details is what the customer fills in at checkout.
type Details struct {
	CustomerName  string `json:"customer_name"`
	Address       string `json:"address"`
	Note          string `json:"note,omitempty"`
	PaymentMethod string `json:"payment_method"`
}

// FormatMessage renders the human-readable order summary handed to the
// outbound channel. Amounts are rounded to two decimals here and nowhere
// earlier.
func FormatMessage(store domain.Store, cart domain.Cart, result domain.PricingResult, details Details) string {
	var b strings.Builder

	b.WriteString("Order details:\n\n")
	fmt.Fprintf(&b, "Name: %s\n", details.CustomerName)
	fmt.Fprintf(&b, "Address: %s\n", details.Address)
	if details.Note != "" {
		fmt.Fprintf(&b, "Note: %s\n", details.Note)
	}
	fmt.Fprintf(&b, "Payment method: %s\n\n", details.PaymentMethod)

	fmt.Fprintf(&b, "Store: %s\n", store.Name)
	fmt.Fprintf(&b, "Store address: %s\n\n", store.Address)

	b.WriteString("Items:\n")
	for _, line := range cart.Lines {
		lineTotal := line.EffectiveUnitPrice() * float64(line.Quantity)
		fmt.Fprintf(&b, "- %s (x%d): R$%.2f\n", line.Name, line.Quantity, lineTotal)
		if line.Description != "" {
			fmt.Fprintf(&b, "  %s\n", line.Description)
		}
	}

	fmt.Fprintf(&b, "\nCart subtotal: R$%.2f\n", result.Subtotal)
	fmt.Fprintf(&b, "Picking fee: R$%.2f\n", result.PickingFee)
	fmt.Fprintf(&b, "Delivery fee: R$%.2f\n", result.DeliveryFee)
	fmt.Fprintf(&b, "Grand total: R$%.2f", result.Total)

	return b.String()
}

// WhatsAppLink builds the prefilled wa.me link the customer opens to send
// the order to the store.
func WhatsAppLink(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(message))
}
