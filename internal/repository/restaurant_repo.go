package repository

import (
	"context"
	"errors"
	"time"

	"ManageMyLunchAPI/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RestaurantRepository struct {
	DB *pgxpool.Pool
}

func NewRestaurantRepository(db *pgxpool.Pool) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

// Create inserts a restaurant and provisions its daily_orders counter row.
func (r *RestaurantRepository) Create(ctx context.Context, name string, dailyLimit int, authID *int64) (int64, error) {
	var id int64
	query := `INSERT INTO restaurants (name, daily_limit, is_busy, authid, created_at) VALUES ($1, $2, false, $3, $4) RETURNING restaurantid`
	if err := r.DB.QueryRow(ctx, query, name, dailyLimit, authID, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	_, err := r.DB.Exec(ctx, `INSERT INTO daily_orders (restaurantid, orders_today) VALUES ($1, 0)`, id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *RestaurantRepository) GetByID(ctx context.Context, id int64) (*model.Restaurant, error) {
	var rst model.Restaurant
	query := `
		SELECT restaurantid, authid, name, daily_limit, is_busy, created_at, deleted_at
		FROM restaurants
		WHERE restaurantid=$1 AND deleted_at IS NULL
	`
	if err := r.DB.
		QueryRow(ctx, query, id).
		Scan(&rst.RestaurantID, &rst.AuthID, &rst.Name, &rst.DailyLimit, &rst.IsBusy, &rst.CreatedAt, &rst.DeletedAt); err != nil {
		return nil, errors.New("restaurant not found")
	}
	return &rst, nil
}

// GetByAuthID returns the restaurant owned by the given account
func (r *RestaurantRepository) GetByAuthID(ctx context.Context, authID int64) (*model.Restaurant, error) {
	var rst model.Restaurant
	query := `
		SELECT restaurantid, authid, name, daily_limit, is_busy, created_at, deleted_at
		FROM restaurants
		WHERE authid=$1 AND deleted_at IS NULL
	`
	if err := r.DB.
		QueryRow(ctx, query, authID).
		Scan(&rst.RestaurantID, &rst.AuthID, &rst.Name, &rst.DailyLimit, &rst.IsBusy, &rst.CreatedAt, &rst.DeletedAt); err != nil {
		return nil, errors.New("restaurant not found")
	}
	return &rst, nil
}

func (r *RestaurantRepository) GetAll(ctx context.Context) ([]model.Restaurant, error) {
	query := `SELECT restaurantid, authid, name, daily_limit, is_busy, created_at, deleted_at FROM restaurants WHERE deleted_at IS NULL ORDER BY restaurantid`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Restaurant
	for rows.Next() {
		var rst model.Restaurant
		if err := rows.Scan(&rst.RestaurantID, &rst.AuthID, &rst.Name, &rst.DailyLimit, &rst.IsBusy, &rst.CreatedAt, &rst.DeletedAt); err != nil {
			return nil, err
		}
		list = append(list, rst)
	}
	return list, rows.Err()
}

func (r *RestaurantRepository) Update(ctx context.Context, id int64, name string, dailyLimit int) error {
	query := `UPDATE restaurants SET name=$1, daily_limit=$2 WHERE restaurantid=$3 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, name, dailyLimit, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("restaurant not found")
	}
	return nil
}

func (r *RestaurantRepository) SetBusy(ctx context.Context, id int64, busy bool) error {
	_, err := r.DB.Exec(ctx, `UPDATE restaurants SET is_busy=$1 WHERE restaurantid=$2`, busy, id)
	return err
}

// GetOrdersToday returns the restaurant's daily counter. A missing row is an
// error: an unprovisioned restaurant cannot complete orders.
func (r *RestaurantRepository) GetOrdersToday(ctx context.Context, restaurantID int64) (int, error) {
	var n int
	query := `SELECT orders_today FROM daily_orders WHERE restaurantid=$1`
	if err := r.DB.QueryRow(ctx, query, restaurantID).Scan(&n); err != nil {
		return 0, errors.New("daily order counter not found")
	}
	return n, nil
}

func (r *RestaurantRepository) SetOrdersToday(ctx context.Context, restaurantID int64, n int) error {
	query := `UPDATE daily_orders SET orders_today=$1 WHERE restaurantid=$2`
	tag, err := r.DB.Exec(ctx, query, n, restaurantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("daily order counter not found")
	}
	return nil
}

// ResetDailyCounters zeroes every daily counter and clears busy flags. Run by
// the nightly job.
func (r *RestaurantRepository) ResetDailyCounters(ctx context.Context) error {
	if _, err := r.DB.Exec(ctx, `UPDATE daily_orders SET orders_today=0`); err != nil {
		return err
	}
	_, err := r.DB.Exec(ctx, `UPDATE restaurants SET is_busy=false WHERE is_busy=true`)
	return err
}
