package domain

import "time"

// Currency is the only currency the storefront sells in.
const Currency = "INR"

// Cart is the shopping cart of one browser session.
type Cart struct {
	ID        string     `json:"id"`
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	Currency  string     `json:"currency"`
	Version   int        `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// CartItem is a snapshot of a catalog record taken when it was added.
type CartItem struct {
	RecordID  string `json:"record_id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	MetalType string `json:"metal_type"`
	Size      string `json:"size"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"image_url,omitempty"`
}

// LineTotal is UnitPrice times Quantity.
func (i CartItem) LineTotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// TotalAmount calculates the total price of all items in the cart, in rupees.
func (c *Cart) TotalAmount() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return total
}

// ItemCount returns the total number of pieces in the cart.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// FindItemIndex returns the index of the line for recordID, or -1.
func (c *Cart) FindItemIndex(recordID string) int {
	for i := range c.Items {
		if c.Items[i].RecordID == recordID {
			return i
		}
	}
	return -1
}

// RemoveItem drops the line for recordID and reports whether it existed.
func (c *Cart) RemoveItem(recordID string) bool {
	i := c.FindItemIndex(recordID)
	if i < 0 {
		return false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return true
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Touch stamps the cart as modified at now and extends its expiry by ttl.
func (c *Cart) Touch(now time.Time, ttl time.Duration) {
	c.UpdatedAt = now
	c.ExpiresAt = now.Add(ttl)
}
