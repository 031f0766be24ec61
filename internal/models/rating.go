package models

// Rating оценка блюда пользователем. Значение Rating от 1 до 5,
// диапазон проверяет сервер.
type Rating struct {
	ID          int32     `json:"id" yaml:"id"`
	DishID      int32     `json:"dish_id" yaml:"dish_id"`
	Rating      int32     `json:"rating" yaml:"rating"`
	UserID      int32     `json:"user_id" yaml:"user_id"`
	Description *string   `json:"description" yaml:"description,omitempty"`
	Photo       *string   `json:"photo" yaml:"photo,omitempty"`
	Date        NaiveTime `json:"date" yaml:"date"`
}

// CreateRating тело запросов POST /ratings и PUT /ratings/{id}.
// Клиент проверяет только ссылки на блюдо и пользователя.
type CreateRating struct {
	DishID      int32   `json:"dish_id" validate:"gt=0"`
	Rating      int32   `json:"rating"`
	UserID      int32   `json:"user_id" validate:"gt=0"`
	Description *string `json:"description,omitempty"`
	Photo       *string `json:"photo,omitempty"`
}
