package services

import (
	"context"
	"errors"
	"time"

	"ManageMyLunchAPI/internal/model"
	"ManageMyLunchAPI/internal/repository"

	"github.com/robfig/cron/v3"
)

type RestaurantService struct {
	Repo *repository.RestaurantRepository
}

func NewRestaurantService(r *repository.RestaurantRepository) *RestaurantService {
	return &RestaurantService{Repo: r}
}

func (s *RestaurantService) Create(ctx context.Context, name string, dailyLimit int, authID *int64) (int64, error) {
	if name == "" {
		return 0, errors.New("restaurant name is required")
	}
	if dailyLimit <= 0 {
		return 0, errors.New("daily limit must be positive")
	}
	return s.Repo.Create(ctx, name, dailyLimit, authID)
}

func (s *RestaurantService) GetByID(ctx context.Context, id int64) (*model.Restaurant, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *RestaurantService) GetByAuthID(ctx context.Context, authID int64) (*model.Restaurant, error) {
	return s.Repo.GetByAuthID(ctx, authID)
}

func (s *RestaurantService) List(ctx context.Context) ([]model.Restaurant, error) {
	return s.Repo.GetAll(ctx)
}

func (s *RestaurantService) Update(ctx context.Context, id int64, name string, dailyLimit int) error {
	if name == "" {
		return errors.New("restaurant name is required")
	}
	if dailyLimit <= 0 {
		return errors.New("daily limit must be positive")
	}
	return s.Repo.Update(ctx, id, name, dailyLimit)
}

// ScheduleDailyReset registers the midnight job that zeroes every restaurant's
// daily counter and clears busy flags.
func (s *RestaurantService) ScheduleDailyReset(c *cron.Cron) error {
	_, err := c.AddFunc("0 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.Repo.ResetDailyCounters(ctx); err != nil {
			logger.Error().Err(err).Msg("daily counter reset failed")
			return
		}
		logger.Info().Msg("daily counters reset")
	})
	return err
}
