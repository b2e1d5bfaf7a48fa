package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"ManageMyLunchAPI/internal/model"
)

// OrderStore is the persistence surface for paid-order lifecycle operations.
type OrderStore interface {
	GetOrderByID(ctx context.Context, orderID int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ListQueueByRestaurant(ctx context.Context, restaurantID int64) ([]model.Order, error)
	MarkAccepted(ctx context.Context, orderID int64, pin string) error
	MarkReady(ctx context.Context, orderID int64) error
	MarkCollected(ctx context.Context, orderID int64) error
	MarkCancelled(ctx context.Context, orderID int64) error
}

// OrderService drives paid orders through accepted -> ready -> collected, with
// cancellation allowed until the order is ready. Transitions are gated by the
// explicit status derived from the order's timestamp columns.
type OrderService struct {
	Store OrderStore
}

func NewOrderService(store OrderStore) *OrderService {
	return &OrderService{Store: store}
}

// History returns the user's paid orders, newest first.
func (s *OrderService) History(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.Store.ListByUser(ctx, userID)
}

// Queue returns the restaurant's outstanding paid orders, oldest first.
func (s *OrderService) Queue(ctx context.Context, restaurantID int64) ([]model.Order, error) {
	return s.Store.ListQueueByRestaurant(ctx, restaurantID)
}

// Accept moves a paid pending order to accepted and attaches a pickup PIN the
// student must quote at collection. Returns the PIN.
func (s *OrderService) Accept(ctx context.Context, orderID int64) (string, error) {
	order, err := s.guard(ctx, orderID, model.StatusAccepted)
	if err != nil {
		return "", err
	}
	pin, err := newPickupPin()
	if err != nil {
		return "", err
	}
	if err := s.Store.MarkAccepted(ctx, order.OrderID, pin); err != nil {
		return "", err
	}
	return pin, nil
}

func (s *OrderService) MarkReady(ctx context.Context, orderID int64) error {
	order, err := s.guard(ctx, orderID, model.StatusReady)
	if err != nil {
		return err
	}
	return s.Store.MarkReady(ctx, order.OrderID)
}

// Collect hands the order over. The quoted PIN must match the one issued at
// acceptance.
func (s *OrderService) Collect(ctx context.Context, orderID int64, pin string) error {
	order, err := s.guard(ctx, orderID, model.StatusCollected)
	if err != nil {
		return err
	}
	if order.PickupPin == nil || *order.PickupPin != pin {
		return errors.New("invalid pickup pin")
	}
	return s.Store.MarkCollected(ctx, order.OrderID)
}

func (s *OrderService) Cancel(ctx context.Context, orderID int64) error {
	order, err := s.guard(ctx, orderID, model.StatusCancelled)
	if err != nil {
		return err
	}
	return s.Store.MarkCancelled(ctx, order.OrderID)
}

func (s *OrderService) guard(ctx context.Context, orderID int64, to model.OrderStatus) (*model.Order, error) {
	order, err := s.Store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsOpen() {
		return nil, errors.New("order has not been paid")
	}
	if !model.CanTransition(order.Status(), to) {
		return nil, fmt.Errorf("order is %s and cannot become %s", order.Status(), to)
	}
	return order, nil
}

func newPickupPin() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}
