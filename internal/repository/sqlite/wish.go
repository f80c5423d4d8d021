package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/msomdec/wish-tracker/internal/domain"
)

// WishRepository implements domain.WishRepository using SQLite.
type WishRepository struct {
	db *sql.DB
}

// NewWishRepository creates a new SQLite-backed WishRepository.
func NewWishRepository(db *DB) *WishRepository {
	return &WishRepository{db: db.SqlDB}
}

const wishSelect = `SELECT w.id, w.user_id, w.category_id, c.name, c.color, w.title, w.description,
	w.remarks, w.status, w.created_at, w.updated_at, w.achieved_at
	FROM wishes w JOIN categories c ON c.id = w.category_id`

func (r *WishRepository) Create(ctx context.Context, wish *domain.Wish) error {
	now := time.Now().UTC()
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO wishes (user_id, category_id, title, description, remarks, status, created_at, updated_at, achieved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		wish.UserID, wish.CategoryID, wish.Title, wish.Description, wish.Remarks,
		wish.Status, now, now, nullTime(wish.AchievedAt),
	)
	if err != nil {
		if isForeignKeyError(err) {
			return domain.ErrCategoryNotFound
		}
		return fmt.Errorf("insert wish: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	wish.ID = id
	wish.CreatedAt = now
	wish.UpdatedAt = now
	return nil
}

func (r *WishRepository) GetForUser(ctx context.Context, id, userID int64) (*domain.Wish, error) {
	w, err := scanWish(conn(ctx, r.db).QueryRowContext(ctx,
		wishSelect+` WHERE w.id = ? AND w.user_id = ?`, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrWishNotFound
		}
		return nil, fmt.Errorf("get wish: %w", err)
	}
	return w, nil
}

// List returns the user's wishes, newest first.
func (r *WishRepository) List(ctx context.Context, userID int64, filter domain.WishFilter) ([]domain.Wish, error) {
	where := []string{"w.user_id = ?"}
	args := []any{userID}
	if filter.Status != nil {
		where = append(where, "w.status = ?")
		args = append(args, *filter.Status)
	}
	if filter.CategoryID != nil {
		where = append(where, "w.category_id = ?")
		args = append(args, *filter.CategoryID)
	}

	rows, err := conn(ctx, r.db).QueryContext(ctx,
		wishSelect+` WHERE `+strings.Join(where, " AND ")+` ORDER BY w.created_at DESC, w.id DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list wishes: %w", err)
	}
	defer rows.Close()

	var wishes []domain.Wish
	for rows.Next() {
		w, err := scanWish(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wish: %w", err)
		}
		wishes = append(wishes, *w)
	}
	return wishes, rows.Err()
}

// Update persists every mutable field and bumps updated_at.
func (r *WishRepository) Update(ctx context.Context, wish *domain.Wish) error {
	now := time.Now().UTC()
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE wishes SET category_id = ?, title = ?, description = ?, remarks = ?, status = ?,
		 updated_at = ?, achieved_at = ?
		 WHERE id = ? AND user_id = ?`,
		wish.CategoryID, wish.Title, wish.Description, wish.Remarks, wish.Status,
		now, nullTime(wish.AchievedAt), wish.ID, wish.UserID,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return domain.ErrCategoryNotFound
		}
		return fmt.Errorf("update wish: %w", err)
	}
	if err := rowsAffectedOrNotFound(result, domain.ErrWishNotFound); err != nil {
		return err
	}

	wish.UpdatedAt = now
	return nil
}

func (r *WishRepository) Delete(ctx context.Context, id, userID int64) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		"DELETE FROM wishes WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete wish: %w", err)
	}
	return rowsAffectedOrNotFound(result, domain.ErrWishNotFound)
}

func (r *WishRepository) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	var count int
	err := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT COUNT(*) FROM wishes WHERE category_id = ?", categoryID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count wishes: %w", err)
	}
	return count, nil
}

func (r *WishRepository) DeleteAllByUser(ctx context.Context, userID int64) error {
	if _, err := conn(ctx, r.db).ExecContext(ctx, "DELETE FROM wishes WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("delete user wishes: %w", err)
	}
	return nil
}

func scanWish(row rowScanner) (*domain.Wish, error) {
	w := &domain.Wish{}
	var achievedAt sql.NullTime
	if err := row.Scan(&w.ID, &w.UserID, &w.CategoryID, &w.CategoryName, &w.CategoryColor,
		&w.Title, &w.Description, &w.Remarks, &w.Status,
		&w.CreatedAt, &w.UpdatedAt, &achievedAt); err != nil {
		return nil, err
	}
	if achievedAt.Valid {
		t := achievedAt.Time
		w.AchievedAt = &t
	}
	return w, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
