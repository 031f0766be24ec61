package core

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrCanceled результат Call, отменённого вызывающей стороной.
	ErrCanceled = errors.New("request canceled")
	// ErrInvalidRequest запрос отклонён до отправки: неверные параметры пути или тело.
	ErrInvalidRequest = errors.New("invalid request")
)

// APIError ответ сервера со статусом вне 2xx.
// Mapped равен true, если статус объявлен в Descriptor.Errors операции,
// тогда Message берётся оттуда. Иначе Message взят из тела или текста статуса.
type APIError struct {
	Operation  string
	Method     string
	URL        string
	Status     int
	StatusText string
	Message    string
	Body       []byte
	Mapped     bool
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Status, e.Message)
}

// TransportError сетевая ошибка: ответ от сервера не получен.
type TransportError struct {
	Operation string
	Method    string
	URL       string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: transport: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsStatus сообщает, является ли err ошибкой API со статусом status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// IsNotFound сокращение для IsStatus(err, 404).
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}
