// Package validate оборачивает go-playground/validator: общий экземпляр валидатора
// и человеко-читаемые сообщения об ошибках валидации.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator возвращает общий экземпляр валидатора. Валидатор кэширует
// метаданные структур, поэтому создаётся один раз.
func Validator() *validator.Validate {
	once.Do(func() {
		instance = validator.New()
	})
	return instance
}

// Struct проверяет структуру и возвращает ошибку с читаемым текстом.
func Struct(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return errors.New(Message(errs))
	}
	return err
}

// Message формирует текст из ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func Message(errs validator.ValidationErrors) string {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param()))
		case "gte":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at least %s", err.Field(), err.Param()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of [%s]", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return strings.Join(errsMsgs, ", ")
}
