package models

import "time"

// CartItem is one cart entry: desired quantity of a product. Price is
// not stored here; it is resolved from the catalog on every read.
type CartItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// Cart is the ephemeral per-visitor cart state held in the session
// store. It lives only as long as the session does.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Quantity returns the stored quantity for productID, zero if absent.
func (c *Cart) Quantity(productID uint) int {
	for _, it := range c.Items {
		if it.ProductID == productID {
			return it.Quantity
		}
	}
	return 0
}

// Set stores quantity for productID, adding the entry if needed.
func (c *Cart) Set(productID uint, quantity int) {
	for i, it := range c.Items {
		if it.ProductID == productID {
			c.Items[i].Quantity = quantity
			return
		}
	}
	c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: quantity})
}

// Remove deletes the entry for productID if present.
func (c *Cart) Remove(productID uint) {
	items := c.Items[:0]
	for _, it := range c.Items {
		if it.ProductID != productID {
			items = append(items, it)
		}
	}
	c.Items = items
}

// ProductIDs lists the product ids referenced by the cart.
func (c *Cart) ProductIDs() []uint {
	ids := make([]uint, 0, len(c.Items))
	for _, it := range c.Items {
		ids = append(ids, it.ProductID)
	}
	return ids
}

func (c *Cart) IsEmpty() bool { return len(c.Items) == 0 }

// CartLine is one resolved line of the cart view: current product,
// quantity and subtotal at the current price.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// CartView is the response shape of the cart read operation.
type CartView struct {
	Items []CartLine `json:"items"`
	Total float64    `json:"total"`
	Count int        `json:"count"`
}
