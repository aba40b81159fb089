package apperror

import "net/http"

// AppError carries an HTTP status code alongside a user-facing message so
// handlers can map service failures to responses without per-error switches.
type AppError struct {
	Code    int    // HTTP status code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // Underlying error, if any (never exposed to the client)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// BadRequest is a shorthand for a 400 error.
func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message)
}

// NotFound is a shorthand for a 404 error.
func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message)
}
