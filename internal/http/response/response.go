// Package response содержит типы и функции для формирования JSON-ответов
// HTTP-обработчиков в едином формате.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// ErrorResponse тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error" example:"missing authorization header"`
}

// SuccessResponse тело ответа операции без данных.
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// URLResponse тело ответа со ссылкой на страницу провайдера.
type URLResponse struct {
	URL string `json:"url" example:"https://checkout.stripe.com/c/pay/cs_test_a1"`
}

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// Success возвращает успешный ответ без данных.
func Success() SuccessResponse {
	return SuccessResponse{Success: true}
}

// ValidationError формирует ErrorResponse на основе ошибок валидации.
// Каждое нарушение описывается отдельно, сообщения объединяются через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return ErrorResponse{Error: strings.Join(errsMsgs, ", ")}
}
