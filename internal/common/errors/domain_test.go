package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestDomainError_WithCauseKeepsIdentity(t *testing.T) {
	sentinel := NewDomainError("USER_EXISTS", CategoryConflict, http.StatusConflict, "Username or email already exists")

	wrapped := sentinel.WithCause(errors.New("duplicate key value violates unique constraint"))

	if !errors.Is(wrapped, sentinel) {
		t.Error("expected errors.Is to match the sentinel after WithCause")
	}
	if wrapped.HTTPStatus() != http.StatusConflict {
		t.Errorf("expected status 409, got %d", wrapped.HTTPStatus())
	}
	if wrapped.Message() != sentinel.Message() {
		t.Errorf("expected message to survive WithCause, got %q", wrapped.Message())
	}
}

func TestDomainError_UnwrapAndFmtWrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewDomainError("DB_ERROR", CategoryInternal, http.StatusInternalServerError, "Internal server error").WithCause(cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}

	wrapped := fmt.Errorf("register: %w", err)
	de, ok := AsDomainError(wrapped)
	if !ok {
		t.Fatal("expected AsDomainError to find the domain error through wrapping")
	}
	if de.Code() != "DB_ERROR" {
		t.Errorf("expected code DB_ERROR, got %s", de.Code())
	}
}

func TestIsDomainError(t *testing.T) {
	if IsDomainError(errors.New("plain")) {
		t.Error("plain errors are not domain errors")
	}
	if !IsDomainError(NewDomainError("X", CategoryInternal, 500, "x")) {
		t.Error("expected a domain error to be recognized")
	}
}
