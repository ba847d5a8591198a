package domain

// CartLine is a product plus the quantity of it held in a cart. The product
// fields are a snapshot captured when the line was added, so later catalog
// price changes do not affect existing lines.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

// Cart holds line items in insertion order. At most one line exists per
// product id.
type Cart struct {
	SessionID string     `json:"sessionId"`
	Lines     []CartLine `json:"lineItems"`
}

// SubtotalCents is the sum of unit price times quantity over all lines.
func (c Cart) SubtotalCents() int64 {
	var sum int64
	for _, line := range c.Lines {
		sum += line.PriceCents * int64(line.Quantity)
	}
	return sum
}
