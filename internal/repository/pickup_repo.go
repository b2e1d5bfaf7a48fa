package repository

import (
	"context"
	"errors"

	"ManageMyLunchAPI/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PickupWindowRepository struct {
	DB *pgxpool.Pool
}

func NewPickupWindowRepository(db *pgxpool.Pool) *PickupWindowRepository {
	return &PickupWindowRepository{DB: db}
}

func (r *PickupWindowRepository) GetByID(ctx context.Context, id int64) (*model.PickupWindow, error) {
	var w model.PickupWindow
	query := `SELECT windowid, label, opens_at, closes_at, is_enabled FROM pickup_windows WHERE windowid=$1`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&w.WindowID, &w.Label, &w.OpensAt, &w.ClosesAt, &w.IsEnabled); err != nil {
		return nil, errors.New("pickup window not found")
	}
	return &w, nil
}

func (r *PickupWindowRepository) ListEnabled(ctx context.Context) ([]model.PickupWindow, error) {
	query := `SELECT windowid, label, opens_at, closes_at, is_enabled FROM pickup_windows WHERE is_enabled ORDER BY opens_at`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.PickupWindow
	for rows.Next() {
		var w model.PickupWindow
		if err := rows.Scan(&w.WindowID, &w.Label, &w.OpensAt, &w.ClosesAt, &w.IsEnabled); err != nil {
			return nil, err
		}
		list = append(list, w)
	}
	return list, rows.Err()
}
