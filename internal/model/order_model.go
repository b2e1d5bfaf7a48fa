package model

import "time"

// Order represents a row in the orders table. While paid_at is NULL the order
// is "open" and acts as the user's cart; once paid_at is set the student can no
// longer mutate its line items.
type Order struct {
	OrderID             int64      `json:"order_id"`
	UserID              int64      `json:"user_id"`
	TotalCost           float64    `json:"total_cost"`
	TotalItems          int        `json:"total_items"`
	PickupWindowID      *int64     `json:"pickup_window_id,omitempty"`
	Comments            *string    `json:"comments,omitempty"`
	PointsRedeemed      int        `json:"points_redeemed"`
	PointsEarned        int        `json:"points_earned"`
	StripePaymentIntent *string    `json:"stripe_payment_intent,omitempty"`
	PickupPin           *string    `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	PaidAt              *time.Time `json:"paid_at,omitempty"`
	AcceptedAt          *time.Time `json:"accepted_at,omitempty"`
	ReadyAt             *time.Time `json:"ready_at,omitempty"`
	CollectedAt         *time.Time `json:"collected_at,omitempty"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
	CancelledAt         *time.Time `json:"cancelled_at,omitempty"`
}

// OrderItem represents a row in the order_items table. There is at most one row
// per (order, item) pair; repeated adds accumulate quantity instead.
type OrderItem struct {
	OrderItemID int64   `json:"order_item_id"`
	OrderID     int64   `json:"order_id"`
	ItemID      int64   `json:"item_id"`
	Quantity    int     `json:"quantity"`
	LineTotal   float64 `json:"line_total"`
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusAccepted  OrderStatus = "accepted"
	StatusReady     OrderStatus = "ready"
	StatusCollected OrderStatus = "collected"
	StatusCancelled OrderStatus = "cancelled"
)

// Status derives the order's lifecycle state from its timestamp columns.
// Precedence: cancelled > collected > ready > accepted > pending.
func (o *Order) Status() OrderStatus {
	switch {
	case o.CancelledAt != nil:
		return StatusCancelled
	case o.CollectedAt != nil:
		return StatusCollected
	case o.ReadyAt != nil:
		return StatusReady
	case o.AcceptedAt != nil:
		return StatusAccepted
	default:
		return StatusPending
	}
}

// IsOpen reports whether the order still functions as the user's cart.
func (o *Order) IsOpen() bool {
	return o.PaidAt == nil
}

var legalTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:  {StatusAccepted, StatusCancelled},
	StatusAccepted: {StatusReady, StatusCancelled},
	StatusReady:    {StatusCollected},
}

// CanTransition reports whether moving an order between statuses is a legal
// lifecycle step. Collected and cancelled are terminal.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
