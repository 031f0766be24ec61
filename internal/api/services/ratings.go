package services

import (
	"context"

	"github.com/magabrotheeeer/yayayum/internal/api/core"
	"github.com/magabrotheeeer/yayayum/internal/models"
)

// RatingsService операции над /ratings.
type RatingsService struct {
	cfg *core.Config
}

// NewRatingsService создаёт фасад оценок.
func NewRatingsService(cfg *core.Config) *RatingsService {
	return &RatingsService{cfg: cfg}
}

// GetRatings возвращает все оценки, новые первыми.
func (s *RatingsService) GetRatings(ctx context.Context) *core.Call[[]models.Rating] {
	return send[[]models.Rating](ctx, s.cfg, OpGetRatings, nil, nil)
}

// CreateRating создаёт оценку. Сервер отвечает 400 на оценку вне 1..5
// и 409 на повторную оценку блюда пользователем в тот же день.
func (s *RatingsService) CreateRating(ctx context.Context, req models.CreateRating) *core.Call[models.Rating] {
	return send[models.Rating](ctx, s.cfg, OpCreateRating, nil, req)
}

// GetRatingsByDish возвращает оценки блюда.
func (s *RatingsService) GetRatingsByDish(ctx context.Context, dishID int32) *core.Call[[]models.Rating] {
	return send[[]models.Rating](ctx, s.cfg, OpGetRatingsByDish, map[string]any{"dish_id": dishID}, nil)
}

// GetRatingsByUser возвращает оценки пользователя.
func (s *RatingsService) GetRatingsByUser(ctx context.Context, userID int32) *core.Call[[]models.Rating] {
	return send[[]models.Rating](ctx, s.cfg, OpGetRatingsByUser, map[string]any{"user_id": userID}, nil)
}

// GetRating возвращает оценку id.
func (s *RatingsService) GetRating(ctx context.Context, id int32) *core.Call[models.Rating] {
	return send[models.Rating](ctx, s.cfg, OpGetRating, map[string]any{"id": id}, nil)
}

// ModifyRating заменяет оценку id.
func (s *RatingsService) ModifyRating(ctx context.Context, id int32, req models.CreateRating) *core.Call[models.Rating] {
	return send[models.Rating](ctx, s.cfg, OpModifyRating, map[string]any{"id": id}, req)
}

// RemoveRating удаляет оценку id.
func (s *RatingsService) RemoveRating(ctx context.Context, id int32) *core.Call[core.NoContent] {
	return send[core.NoContent](ctx, s.cfg, OpRemoveRating, map[string]any{"id": id}, nil)
}
