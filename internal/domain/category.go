package domain

import (
	"context"
	"time"
)

// DefaultCategoryColor is the neutral gray applied when no color is given.
const DefaultCategoryColor = "#6B7280"

// Category is a user-owned label grouping wishes.
type Category struct {
	ID          int64
	UserID      int64
	Name        string
	Description string
	Color       string
	WishCount   int // Derived on read; not persisted.
	CreatedAt   time.Time
}

// CategoryRepository defines persistence operations for categories. Every
// lookup is scoped to the owning user: a category owned by someone else is
// reported as ErrCategoryNotFound.
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	GetForUser(ctx context.Context, id, userID int64) (*Category, error)
	ListByUser(ctx context.Context, userID int64) ([]Category, error)
	ExistsByName(ctx context.Context, userID int64, name string) (bool, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id, userID int64) error
	DeleteAllByUser(ctx context.Context, userID int64) error
}
