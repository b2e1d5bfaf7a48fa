package services

import (
	"context"

	"ManageMyLunchAPI/internal/model"
	"ManageMyLunchAPI/internal/repository"
)

type PickupWindowService struct {
	Repo *repository.PickupWindowRepository
}

func NewPickupWindowService(r *repository.PickupWindowRepository) *PickupWindowService {
	return &PickupWindowService{Repo: r}
}

func (s *PickupWindowService) List(ctx context.Context) ([]model.PickupWindow, error) {
	return s.Repo.ListEnabled(ctx)
}

func (s *PickupWindowService) GetByID(ctx context.Context, id int64) (*model.PickupWindow, error) {
	return s.Repo.GetByID(ctx, id)
}
