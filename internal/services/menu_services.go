package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ManageMyLunchAPI/internal/model"
	"ManageMyLunchAPI/internal/repository"

	"github.com/redis/go-redis/v9"
)

const menuCacheTTL = 5 * time.Minute

// MenuService serves menu listings through a redis read-through cache and
// gates item CRUD to the owning restaurant.
type MenuService struct {
	Repo        *repository.MenuRepository
	Restaurants *repository.RestaurantRepository
	RDB         *redis.Client // nil disables caching
}

func NewMenuService(r *repository.MenuRepository, rr *repository.RestaurantRepository, rdb *redis.Client) *MenuService {
	return &MenuService{Repo: r, Restaurants: rr, RDB: rdb}
}

func menuCacheKey(restaurantID int64) string {
	return fmt.Sprintf("menu:restaurant:%d", restaurantID)
}

func (s *MenuService) ListByRestaurant(ctx context.Context, restaurantID int64) ([]model.MenuItem, error) {
	if s.RDB != nil {
		if raw, err := s.RDB.Get(ctx, menuCacheKey(restaurantID)).Result(); err == nil {
			var cached []model.MenuItem
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	items, err := s.Repo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	if s.RDB != nil {
		if raw, err := json.Marshal(items); err == nil {
			// cache failures are not fatal to the read
			if err := s.RDB.Set(ctx, menuCacheKey(restaurantID), raw, menuCacheTTL).Err(); err != nil {
				logger.Warn().Err(err).Int64("restaurant_id", restaurantID).Msg("menu cache write failed")
			}
		}
	}
	return items, nil
}

// CreateItem adds a menu item to the restaurant owned by authID.
func (s *MenuService) CreateItem(ctx context.Context, authID int64, m *model.MenuItem) (int64, error) {
	rst, err := s.Restaurants.GetByAuthID(ctx, authID)
	if err != nil {
		return 0, err
	}
	m.RestaurantID = rst.RestaurantID
	id, err := s.Repo.CreateItem(ctx, m)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, rst.RestaurantID)
	return id, nil
}

func (s *MenuService) UpdateItem(ctx context.Context, authID int64, m *model.MenuItem) error {
	existing, err := s.ownedItem(ctx, authID, m.ItemID)
	if err != nil {
		return err
	}
	m.RestaurantID = existing.RestaurantID
	if err := s.Repo.UpdateItem(ctx, m); err != nil {
		return err
	}
	s.invalidate(ctx, existing.RestaurantID)
	return nil
}

func (s *MenuService) DeleteItem(ctx context.Context, authID, itemID int64) error {
	existing, err := s.ownedItem(ctx, authID, itemID)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteItem(ctx, itemID); err != nil {
		return err
	}
	s.invalidate(ctx, existing.RestaurantID)
	return nil
}

func (s *MenuService) ownedItem(ctx context.Context, authID, itemID int64) (*model.MenuItem, error) {
	rst, err := s.Restaurants.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, err
	}
	item, err := s.Repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.RestaurantID != rst.RestaurantID {
		return nil, errors.New("menu item belongs to another restaurant")
	}
	return item, nil
}

func (s *MenuService) invalidate(ctx context.Context, restaurantID int64) {
	if s.RDB == nil {
		return
	}
	if err := s.RDB.Del(ctx, menuCacheKey(restaurantID)).Err(); err != nil {
		logger.Warn().Err(err).Int64("restaurant_id", restaurantID).Msg("menu cache invalidation failed")
	}
}
