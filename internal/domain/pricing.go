package domain

// PricingResult is the fully derived price breakdown for a cart. It is
// recomputed from scratch on every evaluation and holds no partial state.
// Values are full precision; rounding happens only when formatting.
type PricingResult struct {
	Subtotal      float64 `json:"subtotal"`
	PickingFee    float64 `json:"picking_fee"`
	DeliveryFee   float64 `json:"delivery_fee"`
	Total         float64 `json:"total"`
	TotalWeightKg float64 `json:"total_weight_kg"`
	TotalQuantity int     `json:"total_quantity"`
}
