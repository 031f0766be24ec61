package apitest

import (
	"net/http"
	"sort"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/yayayum/internal/models"
)

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	s.mu.Unlock()

	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	render.JSON(w, r, users)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUser
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	s.mu.Lock()
	u := s.addUser(req.Username)
	s.mu.Unlock()

	writeCreated(w, r, u)
}

func (s *Server) listDishes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	dishes := make([]models.Dish, 0, len(s.dishes))
	for _, d := range s.dishes {
		dishes = append(dishes, d)
	}
	s.mu.Unlock()

	sort.Slice(dishes, func(i, j int) bool { return dishes[i].ID < dishes[j].ID })
	render.JSON(w, r, dishes)
}

func (s *Server) createDish(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDish
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	s.mu.Lock()
	d := s.addDish(req)
	s.mu.Unlock()

	writeCreated(w, r, d)
}

func (s *Server) modifyDish(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req models.CreateDish
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.dishes[id]; !found {
		writeError(w, r, http.StatusNotFound, "dish not found")
		return
	}
	d := dishFrom(id, req)
	s.dishes[id] = d
	render.JSON(w, r, d)
}

func (s *Server) removeDish(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.dishes[id]; !found {
		writeError(w, r, http.StatusNotFound, "dish not found")
		return
	}
	delete(s.dishes, id)
	render.NoContent(w, r)
}

func (s *Server) listRatings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	ratings := s.sortedRatings(nil)
	s.mu.Unlock()

	render.JSON(w, r, ratings)
}

func (s *Server) listRatingsByDish(w http.ResponseWriter, r *http.Request) {
	dishID, ok := urlID(r, "dish_id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	ratings := s.sortedRatings(func(rt models.Rating) bool { return rt.DishID == dishID })
	s.mu.Unlock()

	render.JSON(w, r, ratings)
}

func (s *Server) listRatingsByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlID(r, "user_id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	ratings := s.sortedRatings(func(rt models.Rating) bool { return rt.UserID == userID })
	s.mu.Unlock()

	render.JSON(w, r, ratings)
}

func (s *Server) createRating(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRating
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeError(w, r, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for _, existing := range s.ratings {
		if existing.UserID == req.UserID && existing.DishID == req.DishID && sameDay(existing.Date.Time, now) {
			writeError(w, r, http.StatusConflict, "user already rated this dish today")
			return
		}
	}
	writeCreated(w, r, s.addRating(req, now))
}

func (s *Server) getRating(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	rating, found := s.ratings[id]
	s.mu.Unlock()

	if !found {
		writeError(w, r, http.StatusNotFound, "rating not found")
		return
	}
	render.JSON(w, r, rating)
}

func (s *Server) modifyRating(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req models.CreateRating
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeError(w, r, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	existing, found := s.ratings[id]
	if !found {
		writeError(w, r, http.StatusNotFound, "rating not found")
		return
	}
	updated := ratingFrom(id, req, existing.Date.Time)
	s.ratings[id] = updated
	render.JSON(w, r, updated)
}

func (s *Server) removeRating(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.ratings[id]; !found {
		writeError(w, r, http.StatusNotFound, "rating not found")
		return
	}
	delete(s.ratings, id)
	render.NoContent(w, r)
}
