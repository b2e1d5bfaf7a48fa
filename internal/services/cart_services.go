package services

import (
	"context"
	"errors"
	"math"
	"os"
	"sync"
	"time"

	"ManageMyLunchAPI/internal/model"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// ErrNotAuthenticated is returned when no valid user identity is available.
// Cart operations never fall back to an anonymous cart.
var ErrNotAuthenticated = errors.New("user not authenticated")

// An open order older than this is treated as abandoned and recreated on Init.
const staleAfter = 24 * time.Hour

// CartStore is the persistence surface the cart aggregate drives.
type CartStore interface {
	FindOpenOrder(ctx context.Context, userID int64) (*model.Order, error)
	CreateOpenOrder(ctx context.Context, userID int64) (*model.Order, error)
	DeleteOrder(ctx context.Context, orderID int64) error
	DeleteOrderItems(ctx context.Context, orderID int64) error
	GetGroupedItems(ctx context.Context, orderID int64) ([]model.RestaurantGroup, error)
	InsertOrderItem(ctx context.Context, orderID, itemID int64, qty int, lineTotal float64) (int64, error)
	UpdateOrderItem(ctx context.Context, orderID, itemID int64, qty int, lineTotal float64) error
	DeleteOrderItem(ctx context.Context, orderID, itemID int64) error
	UpdateOrderTotals(ctx context.Context, orderID int64, totalCost float64, totalItems int) error
	UpdateOrderComment(ctx context.Context, orderID int64, comment string) error
	MarkOrderPaid(ctx context.Context, orderID, pickupWindowID int64, paymentRef string, pointsRedeemed, pointsEarned int) error
}

// RestaurantStore covers the capacity bookkeeping CompleteOrder needs.
type RestaurantStore interface {
	GetByID(ctx context.Context, id int64) (*model.Restaurant, error)
	SetBusy(ctx context.Context, id int64, busy bool) error
	GetOrdersToday(ctx context.Context, restaurantID int64) (int, error)
	SetOrdersToday(ctx context.Context, restaurantID int64, n int) error
}

// MenuStore resolves the menu item being added to a cart.
type MenuStore interface {
	GetByID(ctx context.Context, id int64) (*model.MenuItem, error)
}

// CartService owns each user's in-progress (unpaid) order. It mediates line
// item mutation, keeps the order row's denormalized total_cost/total_items in
// step with the line items, and finalizes the order against each restaurant's
// daily capacity limit.
//
// Every multi-step mutation is a sequence of independently committed writes,
// not a server-side transaction. A failure partway through CompleteOrder can
// leave some restaurants' daily counters incremented while the order stays
// unpaid; the counters are treated as at-least-once and squared away by the
// nightly reset.
type CartService struct {
	Store       CartStore
	Restaurants RestaurantStore
	Menu        MenuStore

	mu    sync.Mutex
	carts map[int64]*model.Cart
}

func NewCartService(store CartStore, restaurants RestaurantStore, menu MenuStore) *CartService {
	return &CartService{
		Store:       store,
		Restaurants: restaurants,
		Menu:        menu,
		carts:       make(map[int64]*model.Cart),
	}
}

// Init loads the user's open order or creates one, and builds the aggregate.
// An open order not updated for 24 hours is deleted (items first) and replaced
// with a fresh one. Totals are taken verbatim from the order row, not
// recomputed from line items.
func (s *CartService) Init(ctx context.Context, userID int64) (*model.Cart, error) {
	if userID <= 0 {
		return nil, ErrNotAuthenticated
	}

	order, err := s.Store.FindOpenOrder(ctx, userID)
	if err != nil {
		order, err = s.Store.CreateOpenOrder(ctx, userID)
		if err != nil {
			return nil, err
		}
	} else if time.Since(order.UpdatedAt) > staleAfter {
		logger.Info().Int64("order_id", order.OrderID).Int64("user_id", userID).Msg("discarding stale open order")
		if err := s.Store.DeleteOrderItems(ctx, order.OrderID); err != nil {
			return nil, err
		}
		if err := s.Store.DeleteOrder(ctx, order.OrderID); err != nil {
			return nil, err
		}
		order, err = s.Store.CreateOpenOrder(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	groups, err := s.Store.GetGroupedItems(ctx, order.OrderID)
	if err != nil {
		return nil, err
	}

	cart := &model.Cart{
		OrderID:    order.OrderID,
		UserID:     userID,
		TotalCost:  order.TotalCost,
		TotalItems: order.TotalItems,
		Comments:   order.Comments,
		Groups:     groups,
	}

	s.mu.Lock()
	s.carts[userID] = cart
	s.mu.Unlock()

	return cart, nil
}

// Cart returns the user's session aggregate, initializing it on first use.
func (s *CartService) Cart(ctx context.Context, userID int64) (*model.Cart, error) {
	if userID <= 0 {
		return nil, ErrNotAuthenticated
	}
	s.mu.Lock()
	cart := s.carts[userID]
	s.mu.Unlock()
	if cart != nil {
		return cart, nil
	}
	return s.Init(ctx, userID)
}

// AddItem adds quantity of a menu item to the cart. An existing line for the
// same item accumulates quantity instead of duplicating; the line write must
// succeed before the order totals are touched.
func (s *CartService) AddItem(ctx context.Context, userID, itemID int64, qty int) error {
	if qty <= 0 {
		return errors.New("quantity must be positive")
	}
	cart, err := s.Cart(ctx, userID)
	if err != nil {
		return err
	}
	item, err := s.Menu.GetByID(ctx, itemID)
	if err != nil {
		return err
	}

	group := cart.Group(item.RestaurantID)
	var line *model.CartLine
	if group != nil {
		line = group.Line(itemID)
	}

	switch {
	case group == nil:
		rst, err := s.Restaurants.GetByID(ctx, item.RestaurantID)
		if err != nil {
			return err
		}
		lineTotal := float64(qty) * item.Price
		id, err := s.Store.InsertOrderItem(ctx, cart.OrderID, itemID, qty, lineTotal)
		if err != nil {
			return err
		}
		cart.Groups = append(cart.Groups, model.RestaurantGroup{
			RestaurantID:   item.RestaurantID,
			RestaurantName: rst.Name,
			Items: []model.CartLine{{
				OrderItemID: id,
				ItemID:      itemID,
				Name:        item.Name,
				Quantity:    qty,
				UnitPrice:   item.Price,
				LineTotal:   lineTotal,
			}},
		})

	case line == nil:
		lineTotal := float64(qty) * item.Price
		id, err := s.Store.InsertOrderItem(ctx, cart.OrderID, itemID, qty, lineTotal)
		if err != nil {
			return err
		}
		group.Items = append(group.Items, model.CartLine{
			OrderItemID: id,
			ItemID:      itemID,
			Name:        item.Name,
			Quantity:    qty,
			UnitPrice:   item.Price,
			LineTotal:   lineTotal,
		})

	default:
		newQty := line.Quantity + qty
		newTotal := float64(newQty) * item.Price
		if err := s.Store.UpdateOrderItem(ctx, cart.OrderID, itemID, newQty, newTotal); err != nil {
			return err
		}
		line.Quantity = newQty
		line.UnitPrice = item.Price
		line.LineTotal = newTotal
	}

	cart.TotalCost += float64(qty) * item.Price
	cart.TotalItems += qty
	return s.Store.UpdateOrderTotals(ctx, cart.OrderID, cart.TotalCost, cart.TotalItems)
}

// RemoveItem removes quantity of a menu item. A missing group or line is a
// silent no-op. Removing at least the current quantity deletes the line and
// prunes an emptied restaurant group. Partial decrements are the one path that
// compensates: a failed persist restores the prior in-memory quantity.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID int64, qty int) error {
	if qty <= 0 {
		return errors.New("quantity must be positive")
	}
	cart, err := s.Cart(ctx, userID)
	if err != nil {
		return err
	}

	gi, li := -1, -1
	for g := range cart.Groups {
		for l := range cart.Groups[g].Items {
			if cart.Groups[g].Items[l].ItemID == itemID {
				gi, li = g, l
				break
			}
		}
	}
	if gi < 0 {
		return nil
	}
	group := &cart.Groups[gi]
	line := &group.Items[li]

	removedCost := 0.0
	removedItems := 0

	if qty >= line.Quantity {
		if err := s.Store.DeleteOrderItem(ctx, cart.OrderID, itemID); err != nil {
			return err
		}
		removedCost = line.UnitPrice * float64(line.Quantity)
		removedItems = line.Quantity
		group.Items = append(group.Items[:li], group.Items[li+1:]...)
		if len(group.Items) == 0 {
			cart.Groups = append(cart.Groups[:gi], cart.Groups[gi+1:]...)
		}
	} else {
		prevQty, prevTotal := line.Quantity, line.LineTotal
		line.Quantity -= qty
		line.LineTotal = float64(line.Quantity) * line.UnitPrice
		if err := s.Store.UpdateOrderItem(ctx, cart.OrderID, itemID, line.Quantity, line.LineTotal); err != nil {
			line.Quantity, line.LineTotal = prevQty, prevTotal
			return err
		}
		removedCost = line.UnitPrice * float64(qty)
		removedItems = qty
	}

	cart.TotalCost -= removedCost
	cart.TotalItems -= removedItems
	return s.Store.UpdateOrderTotals(ctx, cart.OrderID, cart.TotalCost, cart.TotalItems)
}

// RemoveAllItems deletes every line item in one operation, then zeroes the
// totals. Nothing is reset if the delete fails.
func (s *CartService) RemoveAllItems(ctx context.Context, userID int64) error {
	cart, err := s.Cart(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.Store.DeleteOrderItems(ctx, cart.OrderID); err != nil {
		return err
	}
	cart.Groups = nil
	cart.TotalCost = 0
	cart.TotalItems = 0
	return s.Store.UpdateOrderTotals(ctx, cart.OrderID, 0, 0)
}

// SetComment persists free-text order comments; last write wins.
func (s *CartService) SetComment(ctx context.Context, userID int64, text string) error {
	cart, err := s.Cart(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.Store.UpdateOrderComment(ctx, cart.OrderID, text); err != nil {
		return err
	}
	cart.Comments = &text
	return nil
}

// CompleteOrder finalizes the cart. For each distinct restaurant in the cart
// (in line-item load order) it increments the restaurant's daily counter and
// sets the busy flag once the counter reaches the daily limit, then marks the
// order paid in a single update. Each step is its own write: a failure aborts
// the call but does not roll back counters already incremented.
func (s *CartService) CompleteOrder(ctx context.Context, userID, pickupWindowID int64, paymentRef string, pointsRedeemed int) error {
	cart, err := s.Cart(ctx, userID)
	if err != nil {
		return err
	}
	if cart.TotalItems == 0 {
		return errors.New("cart is empty")
	}

	for i := range cart.Groups {
		restaurantID := cart.Groups[i].RestaurantID

		rst, err := s.Restaurants.GetByID(ctx, restaurantID)
		if err != nil {
			return err
		}
		count, err := s.Restaurants.GetOrdersToday(ctx, restaurantID)
		if err != nil {
			return err
		}
		count++
		if err := s.Restaurants.SetOrdersToday(ctx, restaurantID, count); err != nil {
			logger.Error().Err(err).Int64("order_id", cart.OrderID).Int64("restaurant_id", restaurantID).
				Msg("finalize aborted mid-way; earlier daily counters stay incremented")
			return err
		}
		if count >= rst.DailyLimit && !rst.IsBusy {
			if err := s.Restaurants.SetBusy(ctx, restaurantID, true); err != nil {
				return err
			}
		}
	}

	earned := int(math.Floor(cart.TotalCost))
	if err := s.Store.MarkOrderPaid(ctx, cart.OrderID, pickupWindowID, paymentRef, pointsRedeemed, earned); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.carts, userID)
	s.mu.Unlock()

	return nil
}
