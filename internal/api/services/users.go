package services

import (
	"context"

	"github.com/magabrotheeeer/yayayum/internal/api/core"
	"github.com/magabrotheeeer/yayayum/internal/models"
)

// UsersService операции над /users.
type UsersService struct {
	cfg *core.Config
}

// NewUsersService создаёт фасад пользователей.
func NewUsersService(cfg *core.Config) *UsersService {
	return &UsersService{cfg: cfg}
}

// GetUsers возвращает всех пользователей.
func (s *UsersService) GetUsers(ctx context.Context) *core.Call[[]models.User] {
	return send[[]models.User](ctx, s.cfg, OpGetUsers, nil, nil)
}

// CreateUser регистрирует пользователя.
func (s *UsersService) CreateUser(ctx context.Context, req models.CreateUser) *core.Call[models.User] {
	return send[models.User](ctx, s.cfg, OpCreateUser, nil, req)
}
