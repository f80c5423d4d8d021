package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/msomdec/wish-tracker/internal/domain"
)

// CategoryService handles category CRUD with per-user name uniqueness and
// guarded deletion. Every lookup is scoped to the acting user; another
// user's category is indistinguishable from a missing one.
type CategoryService struct {
	categories domain.CategoryRepository
	wishes     domain.WishRepository
	tx         domain.Transactor
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categories domain.CategoryRepository, wishes domain.WishRepository, tx domain.Transactor) *CategoryService {
	return &CategoryService{categories: categories, wishes: wishes, tx: tx}
}

// ListForUser returns the user's categories ordered by name.
func (s *CategoryService) ListForUser(ctx context.Context, user *domain.User) ([]domain.Category, error) {
	categories, err := s.categories.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Get returns the category if the user owns it, domain.ErrCategoryNotFound otherwise.
func (s *CategoryService) Get(ctx context.Context, user *domain.User, id int64) (*domain.Category, error) {
	return s.categories.GetForUser(ctx, id, user.ID)
}

// AssertOwned resolves a category a wish is about to reference.
func (s *CategoryService) AssertOwned(ctx context.Context, user *domain.User, id int64) (*domain.Category, error) {
	return s.Get(ctx, user, id)
}

// Create adds a category for the user. The color defaults to
// domain.DefaultCategoryColor.
func (s *CategoryService) Create(ctx context.Context, user *domain.User, in CategoryInput) (*domain.Category, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	category := &domain.Category{
		UserID:      user.ID,
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.ensureNameFree(ctx, user.ID, in.Name); err != nil {
			return err
		}
		return s.categories.Create(ctx, category)
	})
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	slog.InfoContext(ctx, "category created", "category_id", category.ID, "user_id", user.ID)
	return category, nil
}

// Update replaces name, description and color. Uniqueness is only
// re-checked when the name actually changes.
func (s *CategoryService) Update(ctx context.Context, user *domain.User, id int64, in CategoryInput) (*domain.Category, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var category *domain.Category
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		category, err = s.Get(ctx, user, id)
		if err != nil {
			return err
		}

		if in.Name != category.Name {
			if err := s.ensureNameFree(ctx, user.ID, in.Name); err != nil {
				return err
			}
		}

		category.Name = in.Name
		category.Description = in.Description
		category.Color = in.Color
		return s.categories.Update(ctx, category)
	})
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	slog.InfoContext(ctx, "category updated", "category_id", category.ID, "user_id", user.ID)
	return category, nil
}

// Delete removes an empty category. A category that still has wishes
// yields a *domain.CategoryNotEmptyError carrying the count.
func (s *CategoryService) Delete(ctx context.Context, user *domain.User, id int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		category, err := s.Get(ctx, user, id)
		if err != nil {
			return err
		}

		count, err := s.wishes.CountByCategory(ctx, category.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return &domain.CategoryNotEmptyError{Name: category.Name, Count: count}
		}

		return s.categories.Delete(ctx, category.ID, user.ID)
	})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	slog.InfoContext(ctx, "category deleted", "category_id", id, "user_id", user.ID)
	return nil
}

func (s *CategoryService) ensureNameFree(ctx context.Context, userID int64, name string) error {
	exists, err := s.categories.ExistsByName(ctx, userID, name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateCategoryName, name)
	}
	return nil
}
