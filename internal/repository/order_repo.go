package repository

import (
	"context"
	"errors"
	"time"

	"ManageMyLunchAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `orderid, userid, total_cost, total_items, pickup_window, comments,
	points_redeemed, points_earned, stripe_payment_intent, pickup_pin,
	created_at, updated_at, paid_at, accepted_at, ready_at, collected_at, completed_at, cancelled_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	if err := row.Scan(
		&o.OrderID, &o.UserID, &o.TotalCost, &o.TotalItems, &o.PickupWindowID, &o.Comments,
		&o.PointsRedeemed, &o.PointsEarned, &o.StripePaymentIntent, &o.PickupPin,
		&o.CreatedAt, &o.UpdatedAt, &o.PaidAt, &o.AcceptedAt, &o.ReadyAt, &o.CollectedAt, &o.CompletedAt, &o.CancelledAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, orderID int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE orderid=$1`
	o, err := scanOrder(r.DB.QueryRow(ctx, query, orderID))
	if err != nil {
		return nil, errors.New("order not found")
	}
	return o, nil
}

func (r *OrderRepository) GetByPaymentIntent(ctx context.Context, intentID string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE stripe_payment_intent=$1`
	o, err := scanOrder(r.DB.QueryRow(ctx, query, intentID))
	if err != nil {
		return nil, errors.New("order not found")
	}
	return o, nil
}

// AttachPaymentIntent records the intent id on a still-open order so a later
// lookup by intent finds it.
func (r *OrderRepository) AttachPaymentIntent(ctx context.Context, orderID int64, intentID string) error {
	query := `UPDATE orders SET stripe_payment_intent=$1, updated_at=$2 WHERE orderid=$3 AND paid_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, intentID, time.Now(), orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("order not found or already paid")
	}
	return nil
}

// ListByUser returns the user's paid orders, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE userid=$1 AND paid_at IS NOT NULL ORDER BY paid_at DESC`
	return r.listOrders(ctx, query, userID)
}

// ListQueueByRestaurant returns paid, uncollected, uncancelled orders that
// contain at least one item from the restaurant, oldest paid first.
func (r *OrderRepository) ListQueueByRestaurant(ctx context.Context, restaurantID int64) ([]model.Order, error) {
	query := `
		SELECT DISTINCT ` + qualifiedOrderColumns("o") + `
		FROM orders o
		JOIN order_items oi ON oi.orderid = o.orderid
		JOIN menu_items mi ON mi.itemid = oi.itemid
		WHERE mi.restaurantid=$1
		  AND o.paid_at IS NOT NULL
		  AND o.collected_at IS NULL
		  AND o.cancelled_at IS NULL
		ORDER BY o.paid_at
	`
	return r.listOrders(ctx, query, restaurantID)
}

func (r *OrderRepository) listOrders(ctx context.Context, query string, args ...interface{}) ([]model.Order, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func qualifiedOrderColumns(alias string) string {
	return alias + `.orderid, ` + alias + `.userid, ` + alias + `.total_cost, ` + alias + `.total_items, ` +
		alias + `.pickup_window, ` + alias + `.comments, ` + alias + `.points_redeemed, ` + alias + `.points_earned, ` +
		alias + `.stripe_payment_intent, ` + alias + `.pickup_pin, ` + alias + `.created_at, ` + alias + `.updated_at, ` +
		alias + `.paid_at, ` + alias + `.accepted_at, ` + alias + `.ready_at, ` + alias + `.collected_at, ` +
		alias + `.completed_at, ` + alias + `.cancelled_at`
}

// MarkAccepted stamps accepted_at and attaches the pickup PIN
func (r *OrderRepository) MarkAccepted(ctx context.Context, orderID int64, pin string) error {
	query := `UPDATE orders SET accepted_at=$1, updated_at=$1, pickup_pin=$2 WHERE orderid=$3 AND accepted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, time.Now(), pin, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("order not found or already accepted")
	}
	return nil
}

func (r *OrderRepository) MarkReady(ctx context.Context, orderID int64) error {
	query := `UPDATE orders SET ready_at=$1, updated_at=$1 WHERE orderid=$2 AND ready_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, time.Now(), orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("order not found or already ready")
	}
	return nil
}

// MarkCollected stamps both collected_at and completed_at; handing the order
// over is the end of its lifecycle.
func (r *OrderRepository) MarkCollected(ctx context.Context, orderID int64) error {
	query := `UPDATE orders SET collected_at=$1, completed_at=$1, updated_at=$1 WHERE orderid=$2 AND collected_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, time.Now(), orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("order not found or already collected")
	}
	return nil
}

func (r *OrderRepository) MarkCancelled(ctx context.Context, orderID int64) error {
	query := `UPDATE orders SET cancelled_at=$1, updated_at=$1 WHERE orderid=$2 AND cancelled_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, time.Now(), orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("order not found or already cancelled")
	}
	return nil
}
