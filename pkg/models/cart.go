package models

// Cart models mirror the shopper's cart as served by the commerce backend.
// The storefront keeps a cached snapshot per session; the backend copy is
// always the source of truth on the next full fetch.

type CartItem struct {
	ID          string  `json:"id" redis:"id"`
	VariantID   string  `json:"variant_id" redis:"variant_id"`
	ProductName string  `json:"product_name" redis:"product_name"`
	Color       string  `json:"color,omitempty" redis:"color"`
	Size        string  `json:"size,omitempty" redis:"size"`
	ImageURL    string  `json:"image_url,omitempty" redis:"image_url"`
	UnitPrice   float64 `json:"unit_price" redis:"unit_price"`
	Quantity    int     `json:"quantity" redis:"quantity"`
	Subtotal    float64 `json:"subtotal" redis:"subtotal"`
}

type Cart struct {
	SessionID   string     `json:"session_id"`
	Items       []CartItem `json:"items"`
	TotalItems  int        `json:"total_items"`
	TotalAmount float64    `json:"total_amount"`
	FetchedAt   string     `json:"fetched_at,omitempty"`
}

type AddToCartRequest struct {
	VariantID string `json:"variant_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=0"`
}

// ItemIDs returns the ids of every line item, in cart order.
func (c *Cart) ItemIDs() []string {
	ids := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// FindItem returns the line item with the given id, or nil.
func (c *Cart) FindItem(itemID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

// RecalculateTotals recomputes the aggregates from the line items. Totals are
// always summed from scratch, never adjusted incrementally, so a snapshot
// that went through optimistic patches cannot drift.
func (c *Cart) RecalculateTotals() {
	c.TotalItems = 0
	c.TotalAmount = 0
	for _, item := range c.Items {
		c.TotalItems += item.Quantity
		c.TotalAmount += item.Subtotal
	}
}

// RemoveItems drops the line items whose id is in ids and recomputes the
// aggregates from the remaining items. Used after a successful checkout to
// purge the purchased lines from the cached snapshot.
func (c *Cart) RemoveItems(ids []string) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := c.Items[:0]
	for _, item := range c.Items {
		if !drop[item.ID] {
			kept = append(kept, item)
		}
	}
	c.Items = kept
	c.RecalculateTotals()
}

// SubtotalOf sums the subtotals of the line items whose ids are listed.
// Ids that no longer exist in the cart are ignored.
func (c *Cart) SubtotalOf(ids []string) float64 {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var subtotal float64
	for _, item := range c.Items {
		if want[item.ID] {
			subtotal += item.Subtotal
		}
	}
	return subtotal
}
