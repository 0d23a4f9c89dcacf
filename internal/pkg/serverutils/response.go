package serverutils

import "net/http"

type APIResponse[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type APIError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func SuccessResponse[T any](message string, data T) APIResponse[T] {
	return APIResponse[T]{
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) APIError {
	return APIError{
		Message: message,
		Error:   http.StatusText(code),
	}
}
