package model

import "time"

// MenuItem represents a row in the menu_items table
type MenuItem struct {
	ItemID       int64      `json:"item_id"`
	RestaurantID int64      `json:"restaurant_id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Price        float64    `json:"price"`
	Category     string     `json:"category"`
	ImageURL     *string    `json:"image_url,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}
