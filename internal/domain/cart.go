package domain

// CartLine is one item position in a cart. A line's quantity is always
// positive; a line dropping to zero is removed from the cart instead.
type CartLine struct {
	ItemID          string     `json:"item_id"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	UnitPrice       float64    `json:"unit_price"`
	DiscountPercent float64    `json:"discount_percent,omitempty"`
	Quantity        int        `json:"quantity"`
	UnitWeight      float64    `json:"unit_weight"`
	Unit            WeightUnit `json:"unit"`
}

// EffectiveUnitPrice is the unit price after the line's discount.
func (l CartLine) EffectiveUnitPrice() float64 {
	if l.DiscountPercent > 0 {
		return l.UnitPrice * (1 - l.DiscountPercent/100)
	}
	return l.UnitPrice
}

// WeightKg converts the unit weight to kilograms. Liters are treated as
// numerically equal to kilograms, a deliberate simplification.
func (l CartLine) WeightKg() float64 {
	if l.Unit == UnitGram {
		return l.UnitWeight / 1000
	}
	return l.UnitWeight
}

// Cart is an ordered sequence of lines, one per item ID.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Add puts one unit of item into the cart: an existing line's quantity is
// incremented, otherwise a new line is appended at quantity 1.
func (c *Cart) Add(item CatalogItem) {
	for i := range c.Lines {
		if c.Lines[i].ItemID == item.ID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{
		ItemID:          item.ID,
		Name:            item.Name,
		Description:     item.Description,
		UnitPrice:       item.Price,
		DiscountPercent: item.DiscountPercent,
		Quantity:        1,
		UnitWeight:      item.Weight,
		Unit:            item.Unit,
	})
}

// SetQuantity replaces a line's quantity. A quantity of zero or below
// removes the line. Reports whether the item was in the cart.
func (c *Cart) SetQuantity(itemID string, quantity int) bool {
	for i := range c.Lines {
		if c.Lines[i].ItemID != itemID {
			continue
		}
		if quantity <= 0 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		} else {
			c.Lines[i].Quantity = quantity
		}
		return true
	}
	return false
}

// Remove deletes a line. Reports whether the item was in the cart.
func (c *Cart) Remove(itemID string) bool {
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Clone returns a copy whose lines are independent of the receiver's.
func (c Cart) Clone() Cart {
	if c.Lines == nil {
		return Cart{}
	}
	lines := make([]CartLine, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}
