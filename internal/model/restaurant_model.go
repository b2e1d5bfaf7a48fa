package model

import "time"

// Restaurant represents a row in the restaurants table. IsBusy is set once the
// day's completed orders reach DailyLimit and cleared by the nightly reset.
type Restaurant struct {
	RestaurantID int64      `json:"restaurant_id"`
	AuthID       *int64     `json:"auth_id,omitempty"`
	Name         string     `json:"name"`
	DailyLimit   int        `json:"daily_limit"`
	IsBusy       bool       `json:"is_busy"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// DailyOrders is the per-restaurant orders-per-day counter.
type DailyOrders struct {
	RestaurantID int64 `json:"restaurant_id"`
	OrdersToday  int   `json:"orders_today"`
}
