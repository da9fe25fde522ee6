// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Meta    any  `json:"meta,omitempty"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   *AppError `json:"error"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if body == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("write response", "error", err)
	}
}

func OK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, successEnvelope{Success: true, Data: data})
}

func Created(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, successEnvelope{Success: true, Data: data})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Paginated(w http.ResponseWriter, data any, page, pageSize, total int) {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	writeJSON(w, http.StatusOK, successEnvelope{
		Success: true,
		Data:    data,
		Meta: PaginationMeta{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

func JSONError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = &AppError{
			Code:    "INTERNAL_ERROR",
			Message: "an internal error occurred",
			Status:  http.StatusInternalServerError,
		}
	}

	writeJSON(w, appErr.Status, errorEnvelope{Success: false, Error: appErr})
}

func BadRequest(w http.ResponseWriter, message string) {
	JSONError(w, &AppError{
		Code:    "BAD_REQUEST",
		Message: message,
		Status:  http.StatusBadRequest,
	})
}

func NotFound(w http.ResponseWriter, resource string) {
	JSONError(w, &AppError{
		Code:    "NOT_FOUND",
		Message: resource + " not found",
		Status:  http.StatusNotFound,
	})
}

func Conflict(w http.ResponseWriter, message string) {
	JSONError(w, &AppError{
		Code:    "CONFLICT",
		Message: message,
		Status:  http.StatusConflict,
	})
}

func Unauthorized(w http.ResponseWriter, message string) {
	JSONError(w, UnauthorizedError(message))
}

func Forbidden(w http.ResponseWriter, message string) {
	JSONError(w, ForbiddenError(message))
}

func ServiceUnavailable(w http.ResponseWriter, message string) {
	JSONError(w, &AppError{
		Code:    "SERVICE_UNAVAILABLE",
		Message: message,
		Status:  http.StatusServiceUnavailable,
	})
}

func InternalServerError(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)
	JSONError(w, &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
	})
}

// DomainError maps the domain error taxonomy to an HTTP response. Handlers
// that have no special-case handling call this directly.
func DomainError(w http.ResponseWriter, err error, resource string) {
	switch {
	case errors.Is(err, ErrNotFound):
		NotFound(w, resource)
	case errors.Is(err, ErrConflict):
		Conflict(w, resource+" already exists")
	case errors.Is(err, ErrInvalidInput):
		BadRequest(w, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		Unauthorized(w, "invalid credentials")
	case errors.Is(err, ErrNoCapacity):
		ServiceUnavailable(w, "no capacity available")
	case errors.Is(err, ErrForbidden):
		Forbidden(w, "insufficient permissions")
	case errors.Is(err, ErrUnauthorized):
		Unauthorized(w, "authentication required")
	default:
		InternalServerError(w, err)
	}
}

func FormatValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return "invalid request"
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		messages = append(messages, fmt.Sprintf(
			"field '%s' failed validation '%s'",
			fieldErr.Field(),
			fieldErr.Tag(),
		))
	}

	return strings.Join(messages, "; ")
}
