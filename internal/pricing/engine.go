package pricing

import (
	"errors"
	"fmt"

	"github.com/walex4242/godheranca-storefront/internal/domain"
)

// ErrInvalidCart marks a cart that violates the mutation contract (a line
// with non-positive quantity, negative price or weight, or a discount
// outside 0..100). The cart layer never produces such lines, the engine
// still refuses them.
var ErrInvalidCart = errors.New("invalid cart")

// Config holds the pricing knobs. The delivery rate is a step function: the
// raised rate applies when either threshold is exceeded, both are strict >.
type Config struct {
	BaseRatePerKm     float64
	RaisedRatePerKm   float64
	QuantityThreshold int
	WeightThresholdKg float64

	// DeliveryFeeCap limits the delivery fee when positive; zero leaves
	// the fee uncapped.
	DeliveryFeeCap float64

	PerUnitPickingFee     float64
	PerKilogramPickingFee float64
}

// DefaultConfig returns the production defaults: 2/4 per km around the
// 100-unit / 30-kg thresholds, $0.25 picking per unit and per kilogram,
// no delivery cap.
func DefaultConfig() Config {
	return Config{
		BaseRatePerKm:         2,
		RaisedRatePerKm:       4,
		QuantityThreshold:     100,
		WeightThresholdKg:     30,
		PerUnitPickingFee:     0.25,
		PerKilogramPickingFee: 0.25,
	}
}

// Engine computes the price breakdown for a cart. It is stateless and safe
// for concurrent use.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Price derives the full breakdown from the cart and the driving distance.
// A nil distance means the distance could not be resolved and yields a
// delivery fee of zero. All arithmetic is full precision; callers round
// only when formatting.
func (e *Engine) Price(cart domain.Cart, distanceKm *float64) (domain.PricingResult, error) {
	if err := validate(cart); err != nil {
		return domain.PricingResult{}, err
	}

	var result domain.PricingResult
	for _, line := range cart.Lines {
		qty := float64(line.Quantity)
		weightKg := line.WeightKg()

		result.Subtotal += line.EffectiveUnitPrice() * qty
		result.TotalWeightKg += weightKg * qty
		result.TotalQuantity += line.Quantity
		result.PickingFee += qty*e.cfg.PerUnitPickingFee + weightKg*qty*e.cfg.PerKilogramPickingFee
	}

	rate := e.cfg.BaseRatePerKm
	if result.TotalQuantity > e.cfg.QuantityThreshold || result.TotalWeightKg > e.cfg.WeightThresholdKg {
		rate = e.cfg.RaisedRatePerKm
	}

	if distanceKm != nil {
		result.DeliveryFee = *distanceKm * rate
		if e.cfg.DeliveryFeeCap > 0 && result.DeliveryFee > e.cfg.DeliveryFeeCap {
			result.DeliveryFee = e.cfg.DeliveryFeeCap
		}
	}

	result.Total = result.Subtotal + result.PickingFee + result.DeliveryFee
	return result, nil
}

func validate(cart domain.Cart) error {
	for _, line := range cart.Lines {
		switch {
		case line.Quantity <= 0:
			return fmt.Errorf("%w: item %s has quantity %d", ErrInvalidCart, line.ItemID, line.Quantity)
		case line.UnitPrice < 0:
			return fmt.Errorf("%w: item %s has negative price", ErrInvalidCart, line.ItemID)
		case line.UnitWeight < 0:
			return fmt.Errorf("%w: item %s has negative weight", ErrInvalidCart, line.ItemID)
		case line.DiscountPercent < 0 || line.DiscountPercent > 100:
			return fmt.Errorf("%w: item %s has discount %.2f%%", ErrInvalidCart, line.ItemID, line.DiscountPercent)
		}
	}
	return nil
}
