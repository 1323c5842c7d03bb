// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Ошибки всегда возвращаются
// телом вида {"error": "..."} с коротким человекочитаемым сообщением,
// без стектрейсов и внутренних идентификаторов.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// ErrorResponse описывает стандартное тело ошибки сервера.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// MessageResponse описывает тело успешного ответа с одним сообщением.
type MessageResponse struct {
	Message string `json:"message" example:"Note deleted successfully"`
}

// Error возвращает тело ошибки с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Error: msg,
	}
}

// Message возвращает тело успешного ответа с переданным сообщением.
func Message(msg string) MessageResponse {
	return MessageResponse{
		Message: msg,
	}
}

// ValidationError формирует тело ошибки на основе ошибок валидации.
// Каждое нарушение превращается в человекочитаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "uuid":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only uuid", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return ErrorResponse{
		Error: strings.Join(errsMsgs, ", "),
	}
}
