// Package services предоставляет фасады ресурсов REST API yayayum: блюда,
// оценки и пользователи. Фасады только собирают core.Descriptor по таблице
// маршрутов и передают его в core.Request.
package services

import (
	"fmt"
	"net/http"

	"github.com/magabrotheeeer/yayayum/internal/api/core"
)

// Operation имя операции API.
type Operation string

const (
	OpGetDishes        Operation = "getDishes"
	OpCreateDish       Operation = "createDish"
	OpModifyDish       Operation = "modifyDish"
	OpRemoveDish       Operation = "removeDish"
	OpGetRatings       Operation = "getRatings"
	OpCreateRating     Operation = "createRating"
	OpGetRatingsByDish Operation = "getRatingsByDish"
	OpGetRatingsByUser Operation = "getRatingsByUser"
	OpGetRating        Operation = "getRating"
	OpModifyRating     Operation = "modifyRating"
	OpRemoveRating     Operation = "removeRating"
	OpGetUsers         Operation = "getUsers"
	OpCreateUser       Operation = "createUser"
)

const (
	msgDishNotFound    = "Dish not found"
	msgRatingNotFound  = "Rating not found"
	msgInvalidRating   = "Bad request - invalid rating value"
	msgAlreadyRatedDay = "Conflict - user already rated today"
)

type route struct {
	method    string
	url       string
	mediaType string
	errors    map[int]string
}

var routes = map[Operation]route{
	OpGetDishes:  {method: http.MethodGet, url: "/dishes"},
	OpCreateDish: {method: http.MethodPost, url: "/dishes", mediaType: core.MediaTypeJSON},
	OpModifyDish: {
		method: http.MethodPut, url: "/dishes/{id}", mediaType: core.MediaTypeJSON,
		errors: map[int]string{http.StatusNotFound: msgDishNotFound},
	},
	OpRemoveDish: {
		method: http.MethodDelete, url: "/dishes/{id}",
		errors: map[int]string{http.StatusNotFound: msgDishNotFound},
	},

	OpGetRatings: {method: http.MethodGet, url: "/ratings"},
	OpCreateRating: {
		method: http.MethodPost, url: "/ratings", mediaType: core.MediaTypeJSON,
		errors: map[int]string{
			http.StatusBadRequest: msgInvalidRating,
			http.StatusConflict:   msgAlreadyRatedDay,
		},
	},
	OpGetRatingsByDish: {method: http.MethodGet, url: "/ratings/dish/{dish_id}"},
	OpGetRatingsByUser: {method: http.MethodGet, url: "/ratings/user/{user_id}"},
	OpGetRating: {
		method: http.MethodGet, url: "/ratings/{id}",
		errors: map[int]string{http.StatusNotFound: msgRatingNotFound},
	},
	OpModifyRating: {
		method: http.MethodPut, url: "/ratings/{id}", mediaType: core.MediaTypeJSON,
		errors: map[int]string{http.StatusNotFound: msgRatingNotFound},
	},
	OpRemoveRating: {
		method: http.MethodDelete, url: "/ratings/{id}",
		errors: map[int]string{http.StatusNotFound: msgRatingNotFound},
	},

	OpGetUsers:   {method: http.MethodGet, url: "/users"},
	OpCreateUser: {method: http.MethodPost, url: "/users", mediaType: core.MediaTypeJSON},
}

// Describe возвращает дескриптор операции op. path и body могут быть nil.
// Паникует на неизвестной операции.
func Describe(op Operation, path map[string]any, body any) core.Descriptor {
	r, ok := routes[op]
	if !ok {
		panic(fmt.Sprintf("services: unknown operation %q", op))
	}
	return core.Descriptor{
		Operation: string(op),
		Method:    r.method,
		URL:       r.url,
		Path:      path,
		Body:      body,
		MediaType: r.mediaType,
		Errors:    r.errors,
	}
}

// Operations возвращает все известные операции.
func Operations() []Operation {
	ops := make([]Operation, 0, len(routes))
	for op := range routes {
		ops = append(ops, op)
	}
	return ops
}
