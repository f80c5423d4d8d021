package domain

import (
	"context"
	"time"
)

// Wish is a tracked goal. CategoryName and CategoryColor are denormalized
// from the owning category on every read.
type Wish struct {
	ID            int64
	UserID        int64
	CategoryID    int64
	CategoryName  string
	CategoryColor string
	Title         string
	Description   string
	Remarks       string
	Status        WishStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
	AchievedAt    *time.Time
}

// WishFilter narrows a wish listing. Nil fields do not filter.
type WishFilter struct {
	Status     *WishStatus
	CategoryID *int64
}

// Board groups a user's wishes into the three workflow columns.
type Board struct {
	Wish       []Wish
	InProgress []Wish
	Achieved   []Wish
}

// Column returns the wishes in the column for status.
func (b *Board) Column(status WishStatus) []Wish {
	switch status {
	case StatusWish:
		return b.Wish
	case StatusInProgress:
		return b.InProgress
	case StatusAchieved:
		return b.Achieved
	}
	return nil
}

// WishRepository defines persistence operations for wishes. Reads, updates
// and deletes are scoped to the owning user.
type WishRepository interface {
	Create(ctx context.Context, wish *Wish) error
	GetForUser(ctx context.Context, id, userID int64) (*Wish, error)
	List(ctx context.Context, userID int64, filter WishFilter) ([]Wish, error)
	Update(ctx context.Context, wish *Wish) error
	Delete(ctx context.Context, id, userID int64) error
	CountByCategory(ctx context.Context, categoryID int64) (int, error)
	DeleteAllByUser(ctx context.Context, userID int64) error
}
