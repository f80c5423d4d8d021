package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/wish-tracker/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using SQLite.
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new SQLite-backed CategoryRepository.
func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db.SqlDB}
}

const categoryColumns = `c.id, c.user_id, c.name, c.description, c.color, c.created_at,
	(SELECT COUNT(*) FROM wishes w WHERE w.category_id = c.id)`

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	now := time.Now().UTC()
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO categories (user_id, name, description, color, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		category.UserID, category.Name, category.Description, category.Color, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateCategoryName
		}
		return fmt.Errorf("insert category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	category.ID = id
	category.CreatedAt = now
	category.WishCount = 0
	return nil
}

func (r *CategoryRepository) GetForUser(ctx context.Context, id, userID int64) (*domain.Category, error) {
	c, err := scanCategory(conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories c WHERE c.id = ? AND c.user_id = ?`, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Category, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories c WHERE c.user_id = ? ORDER BY c.name ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) ExistsByName(ctx context.Context, userID int64, name string) (bool, error) {
	var exists bool
	err := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM categories WHERE user_id = ? AND name = ?)", userID, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check category name: %w", err)
	}
	return exists, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE categories SET name = ?, description = ?, color = ?
		 WHERE id = ? AND user_id = ?`,
		category.Name, category.Description, category.Color, category.ID, category.UserID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateCategoryName
		}
		return fmt.Errorf("update category: %w", err)
	}
	return rowsAffectedOrNotFound(result, domain.ErrCategoryNotFound)
}

func (r *CategoryRepository) Delete(ctx context.Context, id, userID int64) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		"DELETE FROM categories WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("delete category: %w", domain.ErrCategoryNotEmpty)
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return rowsAffectedOrNotFound(result, domain.ErrCategoryNotFound)
}

func (r *CategoryRepository) DeleteAllByUser(ctx context.Context, userID int64) error {
	if _, err := conn(ctx, r.db).ExecContext(ctx, "DELETE FROM categories WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("delete user categories: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	c := &domain.Category{}
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.Color, &c.CreatedAt, &c.WishCount); err != nil {
		return nil, err
	}
	return c, nil
}
