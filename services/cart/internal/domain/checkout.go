package domain

import "time"

// CheckoutSession is a hosted payment page created for a cart.
type CheckoutSession struct {
	ID             string    `json:"id"`
	CartID         string    `json:"cart_id"`
	CartVersion    int       `json:"cart_version"`
	Provider       string    `json:"provider"`
	URL            string    `json:"url"`
	AmountTotal    int64     `json:"amount_total"`
	Currency       string    `json:"currency"`
	IdempotencyKey string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// Record is the part of a catalog record the cart needs.
type Record struct {
	ID            string `json:"id"`
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	MetalType     string `json:"metal_type"`
	Size          string `json:"size"`
	PriceINR      int64  `json:"price_inr"`
	StockQuantity int    `json:"stock_quantity"`
	PrimaryImage  string `json:"primary_image"`
}

// InStock reports whether at least one piece is available.
func (r Record) InStock() bool {
	return r.StockQuantity > 0
}

// PriceOnRequest reports whether the record has no list price.
func (r Record) PriceOnRequest() bool {
	return r.PriceINR == 0
}

// Snapshot builds a cart line for quantity pieces of r.
func (r Record) Snapshot(quantity int) CartItem {
	return CartItem{
		RecordID:  r.ID,
		ProductID: r.ProductID,
		Name:      r.Name,
		MetalType: r.MetalType,
		Size:      r.Size,
		UnitPrice: r.PriceINR,
		Quantity:  quantity,
		ImageURL:  r.PrimaryImage,
	}
}
