package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/msomdec/wish-tracker/internal/domain"
)

// Stable error codes returned in JSON error bodies.
const (
	codeNotFound          = "not_found"
	codeDuplicateName     = "duplicate_name"
	codeCategoryNotEmpty  = "category_not_empty"
	codeInvalidTransition = "invalid_transition"
	codeValidation        = "validation"
	codeUnauthenticated   = "unauthenticated"
	codeInternal          = "internal"
)

// apiError is the boundary form of a failure.
type apiError struct {
	Status  int
	Code    string
	Message string
}

// classify maps a service error to its HTTP status, code and message.
// Another user's data is reported exactly like missing data.
func classify(err error) apiError {
	var (
		transition *domain.InvalidTransitionError
		notEmpty   *domain.CategoryNotEmptyError
	)

	switch {
	case errors.As(err, &transition):
		return apiError{http.StatusUnprocessableEntity, codeInvalidTransition,
			fmt.Sprintf("invalid move from %s to %s", transition.From.Label(), transition.To.Label())}
	case errors.Is(err, domain.ErrInvalidTransition):
		return apiError{http.StatusUnprocessableEntity, codeInvalidTransition, "invalid move"}
	case errors.As(err, &notEmpty):
		return apiError{http.StatusConflict, codeCategoryNotEmpty,
			fmt.Sprintf("cannot delete: still has %d wish(es)", notEmpty.Count)}
	case errors.Is(err, domain.ErrCategoryNotEmpty):
		return apiError{http.StatusConflict, codeCategoryNotEmpty, "cannot delete: category still has wishes"}
	case errors.Is(err, domain.ErrWishNotFound):
		return apiError{http.StatusNotFound, codeNotFound, "wish not found"}
	case errors.Is(err, domain.ErrCategoryNotFound):
		return apiError{http.StatusNotFound, codeNotFound, "category not found"}
	case errors.Is(err, domain.ErrNotFound):
		return apiError{http.StatusNotFound, codeNotFound, "not found"}
	case errors.Is(err, domain.ErrDuplicateCategoryName):
		return apiError{http.StatusConflict, codeDuplicateName, "a category with that name already exists"}
	case errors.Is(err, domain.ErrInvalidInput):
		return apiError{http.StatusUnprocessableEntity, codeValidation, validationMessage(err)}
	case errors.Is(err, domain.ErrIdentity), errors.Is(err, domain.ErrUnauthenticated):
		return apiError{http.StatusUnauthorized, codeUnauthenticated, "not authenticated"}
	}
	return apiError{http.StatusInternalServerError, codeInternal, "An unexpected error occurred. Please try again."}
}

// validationMessage strips the wrapping context and keeps the field messages.
func validationMessage(err error) string {
	msg := err.Error()
	prefix := domain.ErrInvalidInput.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return domain.ErrInvalidInput.Error()
}

// writeServiceError reports err as JSON, logging anything unexpected.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	e := classify(err)
	if e.Status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), op, "error", err, "request_id", RequestIDFromContext(r.Context()))
	}
	writeError(w, e.Status, e.Code, e.Message)
}
