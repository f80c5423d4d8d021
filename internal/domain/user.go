package domain

import (
	"context"
	"time"
)

// User represents a principal authenticated by the external identity provider.
// Email is the identity key and never changes after creation.
type User struct {
	ID          int64
	Email       string
	DisplayName string
	AvatarURL   string
	CreatedAt   time.Time
	LastLoginAt time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
	Delete(ctx context.Context, id int64) error
}
