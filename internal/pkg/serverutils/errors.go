package serverutils

import "fmt"

// AppError is the single error type handlers and services surface to the
// HTTP boundary. Anything else that reaches the error middleware is
// collapsed into a generic 500 so internals never leak to callers.
type AppError struct {
	Code    int    // HTTP status
	Kind    string // short machine-readable kind, e.g. "not_found"
	Message string // safe to return to the caller
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewAppError(code int, kind, message string) *AppError {
	return &AppError{Code: code, Kind: kind, Message: message}
}

// Taxonomy constructors. Ownership failures deliberately reuse the
// not-found kind so a non-owner probing an id cannot distinguish
// "absent" from "not yours".

func ErrUnauthorized(message string) *AppError {
	if message == "" {
		message = "Unauthorized"
	}
	return NewAppError(401, "unauthorized", message)
}

func ErrNotFound(resource string) *AppError {
	return NewAppError(404, "not_found", fmt.Sprintf("%s not found", resource))
}

func ErrValidation(message string) *AppError {
	return NewAppError(400, "validation_error", message)
}

func ErrContentTooLarge(message string) *AppError {
	if message == "" {
		message = "Content too long"
	}
	return NewAppError(413, "content_too_large", message)
}

func ErrRateLimited(message string) *AppError {
	if message == "" {
		message = "Rate limit exceeded, try again later"
	}
	return NewAppError(429, "rate_limited", message)
}

func ErrUpstream(message string) *AppError {
	if message == "" {
		message = "Upstream service error"
	}
	return NewAppError(500, "upstream_error", message)
}
