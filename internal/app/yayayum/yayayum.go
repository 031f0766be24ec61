// Package yayayum собирает клиент API, хранилище состояния и метрики
// из конфигурации и реализует сценарии поверх них.
package yayayum

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"net/http"

	"github.com/magabrotheeeer/yayayum/internal/api/core"
	"github.com/magabrotheeeer/yayayum/internal/api/services"
	"github.com/magabrotheeeer/yayayum/internal/cache"
	"github.com/magabrotheeeer/yayayum/internal/config"
	"github.com/magabrotheeeer/yayayum/internal/lib/sl"
	"github.com/magabrotheeeer/yayayum/internal/metrics"
	"github.com/magabrotheeeer/yayayum/internal/models"
	"github.com/magabrotheeeer/yayayum/internal/ranking"
	"github.com/magabrotheeeer/yayayum/internal/state"
)

var (
	// ErrNoUserSelected сценарий требует выбранного пользователя.
	ErrNoUserSelected = errors.New("no user selected")
	// ErrUserNotFound пользователя с таким id нет среди пользователей API.
	ErrUserNotFound = errors.New("user not found")
)

// App клиентское приложение.
type App struct {
	API     *services.Client
	Store   *state.Store
	Metrics *metrics.Client

	api    *core.Config
	redis  *cache.Cache
	logger *slog.Logger
}

// Option настраивает App.
type Option func(*options)

type options struct {
	httpClient *http.Client
	stateCache state.Cache
}

// WithHTTPClient подменяет HTTP-клиент транспорта.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// WithStateCache подменяет хранилище выбранного пользователя, выбранное по конфигу.
func WithStateCache(c state.Cache) Option {
	return func(o *options) { o.stateCache = c }
}

// New создаёт приложение по конфигурации.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	const op = "app.yayayum.New"

	logger = sl.OrDiscard(logger)
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	m := metrics.New()
	coreOpts := []core.Option{
		core.WithLogger(logger),
		core.WithRecorder(m),
		core.WithTimeout(cfg.API.Timeout),
		core.WithRateLimit(cfg.API.RateLimit, cfg.API.Burst),
	}
	if o.httpClient != nil {
		coreOpts = append(coreOpts, core.WithHTTPClient(o.httpClient))
	}
	switch {
	case cfg.API.Token != "":
		coreOpts = append(coreOpts, core.WithStaticToken(cfg.API.Token))
	case cfg.API.Username != "":
		coreOpts = append(coreOpts, core.WithBasicAuth(cfg.API.Username, cfg.API.Password))
	}

	apiCfg, err := core.NewConfig(cfg.API.BaseURL, coreOpts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a := &App{
		API:     services.New(apiCfg),
		Metrics: m,
		api:     apiCfg,
		logger:  logger,
	}

	stateCache := o.stateCache
	if stateCache == nil {
		stateCache, err = a.openStateCache(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	storeOpts := []state.Option{state.WithTTL(cfg.State.TTL)}
	if stateCache != nil {
		storeOpts = append(storeOpts, state.WithPersistence(stateCache))
	}
	a.Store = state.New(logger, storeOpts...)

	return a, nil
}

// openStateCache возвращает nil без ошибки для бэкенда none.
func (a *App) openStateCache(ctx context.Context, cfg *config.Config) (state.Cache, error) {
	switch cfg.State.Backend {
	case config.StateBackendFile:
		return cache.NewLocal(cfg.State.Path), nil
	case config.StateBackendRedis:
		rc, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, fmt.Errorf("cache not initialized: %w", err)
		}
		a.redis = rc
		return rc, nil
	case config.StateBackendNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown state backend %q", cfg.State.Backend)
	}
}

// Close освобождает соединения.
func (a *App) Close() error {
	if a.redis == nil {
		return nil
	}
	if err := a.redis.Close(); err != nil {
		a.logger.Error("failed to close redis", sl.Err(err))
		return err
	}
	return nil
}

// BaseURL адрес API.
func (a *App) BaseURL() string {
	return a.api.BaseURL()
}

// SelectedUser возвращает выбранного пользователя.
func (a *App) SelectedUser() (models.User, bool) {
	u := a.Store.Snapshot().SelectedUser
	if u == nil {
		return models.User{}, false
	}
	return *u, true
}

// SelectUser выбирает пользователя id из списка API и переходит к действиям с едой.
func (a *App) SelectUser(ctx context.Context, id uint64) (models.User, error) {
	const op = "app.yayayum.SelectUser"

	users, err := a.API.Users.GetUsers(ctx).Wait()
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	for _, u := range users {
		if u.ID == id {
			a.Store.SelectUser(&u)
			_ = a.Store.SetScreen(state.ScreenMealActions)
			a.logger.Debug("user selected", sl.Op(op), slog.Uint64("user_id", id))
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("%s: %w: %d", op, ErrUserNotFound, id)
}

// ClearSelection снимает выбор пользователя.
func (a *App) ClearSelection() {
	a.Store.SelectUser(nil)
	_ = a.Store.SetScreen(state.ScreenUserSelection)
}

// Leaderboard запрашивает блюда и оценки параллельно и строит таблицу лидеров.
func (a *App) Leaderboard(ctx context.Context) ([]ranking.Entry, error) {
	const op = "app.yayayum.Leaderboard"

	dishesCall := a.API.Dishes.GetDishes(ctx)
	ratingsCall := a.API.Ratings.GetRatings(ctx)

	dishes, err := dishesCall.Wait()
	if err != nil {
		ratingsCall.Cancel()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ratings, err := ratingsCall.Wait()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_ = a.Store.SetScreen(state.ScreenLeaderboard)
	return ranking.Leaderboard(dishes, ratings), nil
}

// Inspire предлагает случайное блюдо с нужными ограничениями.
func (a *App) Inspire(ctx context.Context, required []models.DietaryRestriction, rnd *rand.Rand) (models.Dish, error) {
	const op = "app.yayayum.Inspire"

	dishes, err := a.API.Dishes.GetDishes(ctx).Wait()
	if err != nil {
		return models.Dish{}, fmt.Errorf("%s: %w", op, err)
	}
	_ = a.Store.SetScreen(state.ScreenMealInspiration)

	dish, err := ranking.Inspire(dishes, required, rnd)
	if err != nil {
		return models.Dish{}, fmt.Errorf("%s: %w", op, err)
	}
	return dish, nil
}

// RatingUserID переводит id пользователя в id автора оценки. Id, не
// помещающийся в int32, отклоняется до отправки запроса.
func RatingUserID(u models.User) (int32, error) {
	if u.ID > math.MaxInt32 {
		return 0, fmt.Errorf("%w: user id %d is out of range", core.ErrInvalidRequest, u.ID)
	}
	return int32(u.ID), nil
}

// MyRatings возвращает оценки выбранного пользователя.
func (a *App) MyRatings(ctx context.Context) ([]models.Rating, error) {
	const op = "app.yayayum.MyRatings"

	u, ok := a.SelectedUser()
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrNoUserSelected)
	}
	userID, err := RatingUserID(u)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ratings, err := a.API.Ratings.GetRatingsByUser(ctx, userID).Wait()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	_ = a.Store.SetScreen(state.ScreenMyRatings)
	return ratings, nil
}

// RateDish создаёт оценку. Если UserID не задан, берётся выбранный пользователь.
func (a *App) RateDish(ctx context.Context, req models.CreateRating) (models.Rating, error) {
	const op = "app.yayayum.RateDish"

	if req.UserID == 0 {
		u, ok := a.SelectedUser()
		if !ok {
			return models.Rating{}, fmt.Errorf("%s: %w", op, ErrNoUserSelected)
		}
		userID, err := RatingUserID(u)
		if err != nil {
			return models.Rating{}, fmt.Errorf("%s: %w", op, err)
		}
		req.UserID = userID
	}
	_ = a.Store.SetScreen(state.ScreenRateMeal)

	rating, err := a.API.Ratings.CreateRating(ctx, req).Wait()
	if err != nil {
		return models.Rating{}, fmt.Errorf("%s: %w", op, err)
	}
	return rating, nil
}
