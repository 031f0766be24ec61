// Package apitest поднимает в памяти поддельный бэкенд yayayum для тестов клиента.
// Маршруты и коды ответов повторяют настоящий API: 201 при создании, 204 при
// удалении, 404 для отсутствующих id, 400 для оценки вне 1..5 и 409 для повторной
// оценки блюда пользователем в тот же день (UTC).
package apitest

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/yayayum/internal/models"
)

// RecordedRequest запрос, принятый сервером.
type RecordedRequest struct {
	Method    string
	Path      string
	RequestID string
	Header    http.Header
}

type failure struct {
	status int
	body   string
}

// Server поддельный бэкенд.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	now        func() time.Time
	users      map[uint64]models.User
	dishes     map[int32]models.Dish
	ratings    map[int32]models.Rating
	nextUser   uint64
	nextDish   int32
	nextRating int32
	requests   []RecordedRequest
	failNext   *failure
}

// Option настраивает Server.
type Option func(*Server)

// WithClock подменяет часы сервера.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New запускает сервер и останавливает его по окончании теста.
func New(t testing.TB, opts ...Option) *Server {
	t.Helper()

	s := &Server{
		now:     time.Now,
		users:   make(map[uint64]models.User),
		dishes:  make(map[int32]models.Dish),
		ratings: make(map[int32]models.Rating),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Server = httptest.NewServer(s.router())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		s.record,
		middleware.Recoverer,
	)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", s.listUsers)
		r.Post("/", s.createUser)
	})
	r.Route("/dishes", func(r chi.Router) {
		r.Get("/", s.listDishes)
		r.Post("/", s.createDish)
		r.Put("/{id}", s.modifyDish)
		r.Delete("/{id}", s.removeDish)
	})
	r.Route("/ratings", func(r chi.Router) {
		r.Get("/", s.listRatings)
		r.Post("/", s.createRating)
		r.Get("/dish/{dish_id}", s.listRatingsByDish)
		r.Get("/user/{user_id}", s.listRatingsByUser)
		r.Get("/{id}", s.getRating)
		r.Put("/{id}", s.modifyRating)
		r.Delete("/{id}", s.removeRating)
	})
	return r
}

// record сохраняет запрос и отдаёт заранее заданный сбой, если он есть.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			RequestID: middleware.GetReqID(r.Context()),
			Header:    r.Header.Clone(),
		})
		fail := s.failNext
		s.failNext = nil
		s.mu.Unlock()

		if fail != nil {
			w.WriteHeader(fail.status)
			_, _ = w.Write([]byte(fail.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// FailNext заставляет следующий запрос завершиться статусом status с телом body.
func (s *Server) FailNext(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = &failure{status: status, body: body}
}

// Requests возвращает копию журнала запросов.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// SetClock подменяет часы во время теста.
func (s *Server) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SeedUser добавляет пользователя напрямую.
func (s *Server) SeedUser(username string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUser(username)
}

// SeedDish добавляет блюдо напрямую.
func (s *Server) SeedDish(req models.CreateDish) models.Dish {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addDish(req)
}

// SeedRating добавляет оценку с датой at, минуя проверки.
func (s *Server) SeedRating(req models.CreateRating, at time.Time) models.Rating {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addRating(req, at)
}

func (s *Server) addUser(username string) models.User {
	s.nextUser++
	u := models.User{ID: s.nextUser, Username: username}
	s.users[u.ID] = u
	return u
}

func (s *Server) addDish(req models.CreateDish) models.Dish {
	s.nextDish++
	d := dishFrom(s.nextDish, req)
	s.dishes[d.ID] = d
	return d
}

func (s *Server) addRating(req models.CreateRating, at time.Time) models.Rating {
	s.nextRating++
	r := ratingFrom(s.nextRating, req, at)
	s.ratings[r.ID] = r
	return r
}

func dishFrom(id int32, req models.CreateDish) models.Dish {
	restrictions := req.DietaryRestrictions
	if restrictions == nil {
		restrictions = []models.DietaryRestriction{}
	}
	return models.Dish{
		ID:                  id,
		Nr:                  req.Nr,
		Name:                req.Name,
		Description:         req.Description,
		PriceKr:             req.PriceKr,
		DietaryRestrictions: restrictions,
		Category:            req.Category,
	}
}

func ratingFrom(id int32, req models.CreateRating, at time.Time) models.Rating {
	return models.Rating{
		ID:          id,
		DishID:      req.DishID,
		Rating:      req.Rating,
		UserID:      req.UserID,
		Description: req.Description,
		Photo:       req.Photo,
		Date:        models.NaiveTime{Time: at.UTC()},
	}
}

// sortedRatings возвращает оценки, прошедшие filter, от новых к старым.
func (s *Server) sortedRatings(filter func(models.Rating) bool) []models.Rating {
	out := make([]models.Rating, 0, len(s.ratings))
	for _, r := range s.ratings {
		if filter == nil || filter(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func urlID(r *http.Request, name string) (int32, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(id), true
}

func writeCreated(w http.ResponseWriter, r *http.Request, v any) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, v)
}
