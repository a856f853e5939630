package http

import (
	"errors"
	"net/http"

	"ai-task-manager/internal/task"
	pkgErrors "ai-task-manager/pkg/errors"
)

var (
	errInvalidID    = pkgErrors.NewHTTPError(http.StatusBadRequest, "invalid task id")
	errInvalidQuery = pkgErrors.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	errInvalidBody  = pkgErrors.NewHTTPError(http.StatusBadRequest, "invalid request body")
)

// mapError translates use-case errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	var verr *task.ValidationError
	switch {
	case errors.As(err, &verr):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "validation failed").
			WithDetails(map[string]any{"fields": verr.Fields})
	case errors.Is(err, task.ErrInvalidInput):
		return withCause(http.StatusBadRequest, "invalid input", err)
	case errors.Is(err, task.ErrNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "task not found")
	case errors.Is(err, task.ErrMalformedOutput):
		return withCause(http.StatusBadGateway, "could not understand the generated task", err)
	case errors.Is(err, task.ErrGeneration):
		return withCause(http.StatusBadGateway, "task generation service failed", err)
	case errors.Is(err, task.ErrStore):
		return withCause(http.StatusInternalServerError, "failed to access task store", err)
	default:
		return pkgErrors.ErrInternalServerError
	}
}

// badRequest wraps a binding or parsing failure.
func badRequest(base *pkgErrors.HTTPError, err error) error {
	return withCause(base.Code, base.Message, err)
}

func withCause(code int, msg string, err error) error {
	return pkgErrors.NewHTTPError(code, msg).WithDetails(map[string]any{"cause": err.Error()})
}
