package model

// PickupWindow is a collection time slot students choose at checkout.
type PickupWindow struct {
	WindowID  int64  `json:"window_id"`
	Label     string `json:"label"`
	OpensAt   string `json:"opens_at"`  // "HH:MM"
	ClosesAt  string `json:"closes_at"` // "HH:MM"
	IsEnabled bool   `json:"is_enabled"`
}
