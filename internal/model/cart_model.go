package model

// CartLine is a line item joined with its menu item (what the API exposes).
type CartLine struct {
	OrderItemID int64   `json:"order_item_id"`
	ItemID      int64   `json:"item_id"`
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

// RestaurantGroup holds the cart lines belonging to one restaurant.
type RestaurantGroup struct {
	RestaurantID   int64      `json:"restaurant_id"`
	RestaurantName string     `json:"restaurant_name"`
	Items          []CartLine `json:"items"`
}

// Cart is the in-memory aggregate over the user's open order: its line items
// grouped by restaurant plus the running denormalized totals. It is rebuilt
// from order_items rows on load and mutated incrementally afterwards.
type Cart struct {
	OrderID    int64             `json:"order_id"`
	UserID     int64             `json:"user_id"`
	TotalCost  float64           `json:"total_cost"`
	TotalItems int               `json:"total_items"`
	Comments   *string           `json:"comments,omitempty"`
	Groups     []RestaurantGroup `json:"groups"`
}

// Group returns a pointer to the restaurant's group, or nil.
func (c *Cart) Group(restaurantID int64) *RestaurantGroup {
	for i := range c.Groups {
		if c.Groups[i].RestaurantID == restaurantID {
			return &c.Groups[i]
		}
	}
	return nil
}

// Line returns a pointer to the group's line for the given menu item, or nil.
func (g *RestaurantGroup) Line(itemID int64) *CartLine {
	for i := range g.Items {
		if g.Items[i].ItemID == itemID {
			return &g.Items[i]
		}
	}
	return nil
}
