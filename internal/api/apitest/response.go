package apitest

import (
	"net/http"

	"github.com/go-chi/render"
)

// Response тело ответа с ошибкой.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// StatusError значение Status для ответа с ошибкой.
const StatusError = "Error"

// Error возвращает Response с сообщением msg.
func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, Error(msg))
}
