package repository

import (
	"context"
	"time"

	"ManageMyLunchAPI/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CartRepository struct {
	DB *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{DB: db}
}

// FindOpenOrder finds the user's order where paid_at IS NULL (the cart)
func (r *CartRepository) FindOpenOrder(ctx context.Context, userID int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE userid=$1 AND paid_at IS NULL LIMIT 1`
	return scanOrder(r.DB.QueryRow(ctx, query, userID))
}

// CreateOpenOrder creates a fresh order with zero totals and returns it
func (r *CartRepository) CreateOpenOrder(ctx context.Context, userID int64) (*model.Order, error) {
	now := time.Now()
	query := `
		INSERT INTO orders (userid, total_cost, total_items, points_redeemed, points_earned, created_at, updated_at)
		VALUES ($1, 0, 0, 0, 0, $2, $2)
		RETURNING ` + orderColumns
	return scanOrder(r.DB.QueryRow(ctx, query, userID, now))
}

// DeleteOrder removes an abandoned order row (its items must go first)
func (r *CartRepository) DeleteOrder(ctx context.Context, orderID int64) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM orders WHERE orderid=$1`, orderID)
	return err
}

// DeleteOrderItems clears all line items for an order
func (r *CartRepository) DeleteOrderItems(ctx context.Context, orderID int64) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM order_items WHERE orderid=$1`, orderID)
	return err
}

// GetGroupedItems loads the order's line items joined to their menu items and
// owning restaurants, grouped by restaurant in line-item insertion order.
func (r *CartRepository) GetGroupedItems(ctx context.Context, orderID int64) ([]model.RestaurantGroup, error) {
	query := `
		SELECT oi.orderitemid, oi.itemid, oi.quantity, oi.line_total,
		       mi.name, mi.price,
		       rst.restaurantid, rst.name
		FROM order_items oi
		JOIN menu_items mi ON mi.itemid = oi.itemid
		JOIN restaurants rst ON rst.restaurantid = mi.restaurantid
		WHERE oi.orderid=$1
		ORDER BY oi.orderitemid
	`
	rows, err := r.DB.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []model.RestaurantGroup
	for rows.Next() {
		var line model.CartLine
		var restaurantID int64
		var restaurantName string
		if err := rows.Scan(&line.OrderItemID, &line.ItemID, &line.Quantity, &line.LineTotal,
			&line.Name, &line.UnitPrice, &restaurantID, &restaurantName); err != nil {
			return nil, err
		}
		placed := false
		for i := range groups {
			if groups[i].RestaurantID == restaurantID {
				groups[i].Items = append(groups[i].Items, line)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, model.RestaurantGroup{
				RestaurantID:   restaurantID,
				RestaurantName: restaurantName,
				Items:          []model.CartLine{line},
			})
		}
	}
	return groups, rows.Err()
}

// InsertOrderItem inserts a new line item and returns its id
func (r *CartRepository) InsertOrderItem(ctx context.Context, orderID, itemID int64, qty int, lineTotal float64) (int64, error) {
	var id int64
	query := `
		INSERT INTO order_items (orderid, itemid, quantity, line_total)
		VALUES ($1, $2, $3, $4)
		RETURNING orderitemid
	`
	if err := r.DB.QueryRow(ctx, query, orderID, itemID, qty, lineTotal).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateOrderItem overwrites quantity and line_total, keyed by (order, item)
func (r *CartRepository) UpdateOrderItem(ctx context.Context, orderID, itemID int64, qty int, lineTotal float64) error {
	query := `UPDATE order_items SET quantity=$1, line_total=$2 WHERE orderid=$3 AND itemid=$4`
	_, err := r.DB.Exec(ctx, query, qty, lineTotal, orderID, itemID)
	return err
}

// DeleteOrderItem removes one line item, keyed by (order, item)
func (r *CartRepository) DeleteOrderItem(ctx context.Context, orderID, itemID int64) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM order_items WHERE orderid=$1 AND itemid=$2`, orderID, itemID)
	return err
}

// UpdateOrderTotals persists the denormalized totals and refreshes updated_at
func (r *CartRepository) UpdateOrderTotals(ctx context.Context, orderID int64, totalCost float64, totalItems int) error {
	query := `UPDATE orders SET total_cost=$1, total_items=$2, updated_at=$3 WHERE orderid=$4`
	_, err := r.DB.Exec(ctx, query, totalCost, totalItems, time.Now(), orderID)
	return err
}

// UpdateOrderComment persists free-text comments; last write wins
func (r *CartRepository) UpdateOrderComment(ctx context.Context, orderID int64, comment string) error {
	query := `UPDATE orders SET comments=$1, updated_at=$2 WHERE orderid=$3`
	_, err := r.DB.Exec(ctx, query, comment, time.Now(), orderID)
	return err
}

// MarkOrderPaid finalizes the order in a single update: paid_at and updated_at
// set to now, pickup window and payment reference attached, loyalty recorded.
func (r *CartRepository) MarkOrderPaid(ctx context.Context, orderID, pickupWindowID int64, paymentRef string, pointsRedeemed, pointsEarned int) error {
	query := `
		UPDATE orders
		SET paid_at=$1, updated_at=$1,
		    pickup_window=$2, stripe_payment_intent=$3,
		    points_redeemed=$4, points_earned=$5
		WHERE orderid=$6
	`
	_, err := r.DB.Exec(ctx, query, time.Now(), pickupWindowID, paymentRef, pointsRedeemed, pointsEarned, orderID)
	return err
}
