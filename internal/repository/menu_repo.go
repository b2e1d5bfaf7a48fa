package repository

import (
	"context"
	"errors"
	"time"

	"ManageMyLunchAPI/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MenuRepository struct {
	DB *pgxpool.Pool
}

func NewMenuRepository(db *pgxpool.Pool) *MenuRepository {
	return &MenuRepository{DB: db}
}

func (r *MenuRepository) CreateItem(ctx context.Context, m *model.MenuItem) (int64, error) {
	var id int64
	query := `INSERT INTO menu_items (restaurantid, name, description, price, category, image_url, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING itemid`
	if err := r.DB.QueryRow(ctx, query, m.RestaurantID, m.Name, m.Description, m.Price, m.Category, m.ImageURL, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *MenuRepository) GetByID(ctx context.Context, id int64) (*model.MenuItem, error) {
	var m model.MenuItem
	query := `
		SELECT itemid, restaurantid, name, description, price, category, image_url, created_at, deleted_at
		FROM menu_items
		WHERE itemid=$1 AND deleted_at IS NULL
	`
	if err := r.DB.
		QueryRow(ctx, query, id).
		Scan(&m.ItemID, &m.RestaurantID, &m.Name, &m.Description, &m.Price, &m.Category, &m.ImageURL, &m.CreatedAt, &m.DeletedAt); err != nil {
		return nil, errors.New("menu item not found")
	}
	return &m, nil
}

func (r *MenuRepository) ListByRestaurant(ctx context.Context, restaurantID int64) ([]model.MenuItem, error) {
	query := `SELECT itemid, restaurantid, name, description, price, category, image_url, created_at, deleted_at FROM menu_items WHERE restaurantid=$1 AND deleted_at IS NULL ORDER BY itemid`
	rows, err := r.DB.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.MenuItem
	for rows.Next() {
		var m model.MenuItem
		if err := rows.Scan(&m.ItemID, &m.RestaurantID, &m.Name, &m.Description, &m.Price, &m.Category, &m.ImageURL, &m.CreatedAt, &m.DeletedAt); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *MenuRepository) UpdateItem(ctx context.Context, m *model.MenuItem) error {
	query := `UPDATE menu_items SET name=$1, description=$2, price=$3, category=$4, image_url=$5 WHERE itemid=$6 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, m.Name, m.Description, m.Price, m.Category, m.ImageURL, m.ItemID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("menu item not found")
	}
	return nil
}

// DeleteItem soft-deletes so historic order lines keep their join target
func (r *MenuRepository) DeleteItem(ctx context.Context, id int64) error {
	query := `UPDATE menu_items SET deleted_at=$1 WHERE itemid=$2 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("menu item not found")
	}
	return nil
}
