package service

import (
	"net/http"

	commonerrors "github.com/nbarsukov/authd/internal/common/errors"
)

var (
	ErrUserExists = commonerrors.NewDomainError(
		"USER_EXISTS",
		commonerrors.CategoryConflict,
		http.StatusConflict,
		"Username or email already exists",
	)

	ErrUserNotFound = commonerrors.NewDomainError(
		"USER_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"User not found",
	)

	ErrInvalidPassword = commonerrors.NewDomainError(
		"INVALID_PASSWORD",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"Invalid password",
	)
)

// newInternalError hides the cause from clients; the cause stays attached
// for logging and errors.Is/As.
func newInternalError(code string, cause error) commonerrors.DomainError {
	err := commonerrors.NewDomainError(
		code,
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		"Internal server error",
	)
	if cause != nil {
		err = err.WithCause(cause)
	}
	return err
}
