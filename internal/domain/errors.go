package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrCategoryNotFound      = fmt.Errorf("category %w", ErrNotFound)
	ErrWishNotFound          = fmt.Errorf("wish %w", ErrNotFound)
	ErrDuplicateEmail        = errors.New("email already exists")
	ErrDuplicateCategoryName = errors.New("category name already exists")
	ErrCategoryNotEmpty      = errors.New("category is not empty")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrInvalidInput          = errors.New("invalid input")
	ErrIdentity              = errors.New("invalid identity")
	ErrUnauthenticated       = errors.New("unauthenticated")
	ErrUserNotFound          = fmt.Errorf("user not found: %w", ErrUnauthenticated)
)

// CategoryNotEmptyError reports a category deletion blocked by the wishes
// that still reference it.
type CategoryNotEmptyError struct {
	Name  string
	Count int
}

func (e *CategoryNotEmptyError) Error() string {
	return fmt.Sprintf("cannot delete category %q: it still has %d wish(es)", e.Name, e.Count)
}

func (e *CategoryNotEmptyError) Is(target error) bool {
	return target == ErrCategoryNotEmpty
}

// InvalidTransitionError names both ends of a rejected status move.
type InvalidTransitionError struct {
	From WishStatus
	To   WishStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
