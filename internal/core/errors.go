// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoCapacity         = errors.New("no capacity")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505). Repositories use it to translate constraint
// failures into ErrConflict instead of leaking driver errors.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return false
}

type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func NewAppError(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, Status: status}
}

func UnauthorizedError(message string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: message, Status: 401}
}

func ForbiddenError(message string) *AppError {
	return &AppError{Code: "FORBIDDEN", Message: message, Status: 403}
}

func TokenExpiredError() *AppError {
	return &AppError{Code: "TOKEN_EXPIRED", Message: "access token has expired", Status: 401}
}

func TokenInvalidError() *AppError {
	return &AppError{Code: "TOKEN_INVALID", Message: "access token is invalid", Status: 401}
}
