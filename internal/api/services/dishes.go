package services

import (
	"context"

	"github.com/magabrotheeeer/yayayum/internal/api/core"
	"github.com/magabrotheeeer/yayayum/internal/models"
)

// DishesService операции над /dishes.
type DishesService struct {
	cfg *core.Config
}

// NewDishesService создаёт фасад блюд.
func NewDishesService(cfg *core.Config) *DishesService {
	return &DishesService{cfg: cfg}
}

// GetDishes возвращает список блюд.
func (s *DishesService) GetDishes(ctx context.Context) *core.Call[[]models.Dish] {
	return send[[]models.Dish](ctx, s.cfg, OpGetDishes, nil, nil)
}

// CreateDish создаёт блюдо.
func (s *DishesService) CreateDish(ctx context.Context, req models.CreateDish) *core.Call[models.Dish] {
	return send[models.Dish](ctx, s.cfg, OpCreateDish, nil, req)
}

// ModifyDish заменяет блюдо id. 404, если блюда нет.
func (s *DishesService) ModifyDish(ctx context.Context, id int32, req models.CreateDish) *core.Call[models.Dish] {
	return send[models.Dish](ctx, s.cfg, OpModifyDish, map[string]any{"id": id}, req)
}

// RemoveDish удаляет блюдо id. 404, если блюда нет.
func (s *DishesService) RemoveDish(ctx context.Context, id int32) *core.Call[core.NoContent] {
	return send[core.NoContent](ctx, s.cfg, OpRemoveDish, map[string]any{"id": id}, nil)
}
