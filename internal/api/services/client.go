package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/yayayum/internal/api/core"
	"github.com/magabrotheeeer/yayayum/internal/lib/sl"
	"github.com/magabrotheeeer/yayayum/internal/lib/validate"
)

// Client объединяет фасады всех ресурсов над одной конфигурацией.
type Client struct {
	Dishes  *DishesService
	Ratings *RatingsService
	Users   *UsersService
}

// New создаёт фасады над cfg.
func New(cfg *core.Config) *Client {
	return &Client{
		Dishes:  NewDishesService(cfg),
		Ratings: NewRatingsService(cfg),
		Users:   NewUsersService(cfg),
	}
}

// send проверяет тело запроса и выполняет операцию.
func send[T any](ctx context.Context, cfg *core.Config, op Operation, path map[string]any, body any) *core.Call[T] {
	if body != nil {
		if err := validate.Struct(body); err != nil {
			cfg.Logger().Warn("invalid request body",
				sl.Op("services.send"),
				slog.String("operation", string(op)),
				sl.Err(err),
			)
			return core.Fail[T](fmt.Errorf("services.%s: %w: %v", op, core.ErrInvalidRequest, err))
		}
	}
	return core.Request[T](ctx, cfg, Describe(op, path, body))
}
