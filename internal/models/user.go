// Package models содержит доменные структуры клиента yayayum: пользователей,
// блюда и оценки, а также входные структуры для их создания.
// Формат JSON совпадает с форматом REST API (snake_case).
package models

// User представляет пользователя, зарегистрированного на бэкенде.
// Клиент хранит только копию, полученную из API.
type User struct {
	ID       uint64 `json:"id" yaml:"id" validate:"required"`
	Username string `json:"username" yaml:"username" validate:"required"`
}

// CreateUser тело запроса POST /users.
type CreateUser struct {
	Username string `json:"username" validate:"required"`
}
