package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/wish-tracker/internal/domain"
)

// UserRepository implements domain.UserRepository using SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite-backed UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.SqlDB}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO users (email, display_name, avatar_url, created_at, last_login_at)
		 VALUES (?, ?, ?, ?, ?)`,
		user.Email, user.DisplayName, user.AvatarURL, now, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	user.LastLoginAt = now
	return nil
}

// GetByEmail matches the email exactly; identity keys are case-sensitive.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "email = ?", email)
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		"UPDATE users SET last_login_at = ? WHERE id = ?", at.UTC(), id)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return rowsAffectedOrNotFound(result, domain.ErrUserNotFound)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := conn(ctx, r.db).ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return rowsAffectedOrNotFound(result, domain.ErrUserNotFound)
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	user := &domain.User{}
	err := conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT id, email, display_name, avatar_url, created_at, last_login_at
		 FROM users WHERE `+where, arg,
	).Scan(&user.ID, &user.Email, &user.DisplayName, &user.AvatarURL, &user.CreatedAt, &user.LastLoginAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}
