package errors

import "net/http"

// HTTPError is an error that knows which HTTP status it should be rendered with.
type HTTPError struct {
	Code    int
	Message string
	Details map[string]any
}

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message}
}

func (e *HTTPError) Error() string {
	return e.Message
}

// WithDetails attaches structured details and returns the same error.
func (e *HTTPError) WithDetails(details map[string]any) *HTTPError {
	e.Details = details
	return e
}

var (
	ErrInternalServerError = NewHTTPError(http.StatusInternalServerError, "internal server error")
	ErrBadRequest          = NewHTTPError(http.StatusBadRequest, "bad request")
	ErrNotFound            = NewHTTPError(http.StatusNotFound, "not found")
)
