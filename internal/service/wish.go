package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/msomdec/wish-tracker/internal/domain"
)

// WishService handles wish CRUD and status changes. Status moves are
// delegated to Transition; each mutation is a single transaction.
type WishService struct {
	wishes     domain.WishRepository
	categories *CategoryService
	tx         domain.Transactor
	now        func() time.Time
}

// NewWishService creates a new WishService.
func NewWishService(wishes domain.WishRepository, categories *CategoryService, tx domain.Transactor) *WishService {
	return &WishService{
		wishes:     wishes,
		categories: categories,
		tx:         tx,
		now:        time.Now,
	}
}

// ListForUser returns all of the user's wishes, newest first.
func (s *WishService) ListForUser(ctx context.Context, user *domain.User) ([]domain.Wish, error) {
	return s.list(ctx, user, domain.WishFilter{})
}

// ListByStatus returns the user's wishes in the given status.
func (s *WishService) ListByStatus(ctx context.Context, user *domain.User, status domain.WishStatus) ([]domain.Wish, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	return s.list(ctx, user, domain.WishFilter{Status: &status})
}

// ListByCategory returns the wishes in one of the user's categories.
func (s *WishService) ListByCategory(ctx context.Context, user *domain.User, categoryID int64) ([]domain.Wish, error) {
	if _, err := s.categories.AssertOwned(ctx, user, categoryID); err != nil {
		return nil, err
	}
	return s.list(ctx, user, domain.WishFilter{CategoryID: &categoryID})
}

// ListByCategoryAndStatus combines both filters.
func (s *WishService) ListByCategoryAndStatus(ctx context.Context, user *domain.User, categoryID int64, status domain.WishStatus) ([]domain.Wish, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	if _, err := s.categories.AssertOwned(ctx, user, categoryID); err != nil {
		return nil, err
	}
	return s.list(ctx, user, domain.WishFilter{Status: &status, CategoryID: &categoryID})
}

// List dispatches to the narrowest listing the filter asks for.
func (s *WishService) List(ctx context.Context, user *domain.User, filter domain.WishFilter) ([]domain.Wish, error) {
	switch {
	case filter.CategoryID != nil && filter.Status != nil:
		return s.ListByCategoryAndStatus(ctx, user, *filter.CategoryID, *filter.Status)
	case filter.CategoryID != nil:
		return s.ListByCategory(ctx, user, *filter.CategoryID)
	case filter.Status != nil:
		return s.ListByStatus(ctx, user, *filter.Status)
	}
	return s.ListForUser(ctx, user)
}

func (s *WishService) list(ctx context.Context, user *domain.User, filter domain.WishFilter) ([]domain.Wish, error) {
	wishes, err := s.wishes.List(ctx, user.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("list wishes: %w", err)
	}
	return wishes, nil
}

// Board groups the user's wishes, optionally limited to one category, into
// the three workflow columns.
func (s *WishService) Board(ctx context.Context, user *domain.User, categoryID *int64) (*domain.Board, error) {
	wishes, err := s.List(ctx, user, domain.WishFilter{CategoryID: categoryID})
	if err != nil {
		return nil, err
	}

	board := &domain.Board{}
	for _, w := range wishes {
		switch w.Status {
		case domain.StatusWish:
			board.Wish = append(board.Wish, w)
		case domain.StatusInProgress:
			board.InProgress = append(board.InProgress, w)
		case domain.StatusAchieved:
			board.Achieved = append(board.Achieved, w)
		}
	}
	return board, nil
}

// Get returns the wish if the user owns it, domain.ErrWishNotFound otherwise.
func (s *WishService) Get(ctx context.Context, user *domain.User, id int64) (*domain.Wish, error) {
	return s.wishes.GetForUser(ctx, id, user.ID)
}

// Create adds a wish to one of the user's categories. Status defaults to
// Wish. AchievedAt is only ever stamped by Transition, so a wish created
// directly as Achieved has none.
func (s *WishService) Create(ctx context.Context, user *domain.User, in WishInput) (*domain.Wish, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	status := domain.StatusWish
	if in.Status != nil {
		status = *in.Status
	}

	wish := &domain.Wish{
		UserID:      user.ID,
		CategoryID:  in.CategoryID,
		Title:       in.Title,
		Description: in.Description,
		Remarks:     in.Remarks,
		Status:      status,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		category, err := s.categories.AssertOwned(ctx, user, in.CategoryID)
		if err != nil {
			return err
		}
		wish.CategoryName = category.Name
		wish.CategoryColor = category.Color
		return s.wishes.Create(ctx, wish)
	})
	if err != nil {
		return nil, fmt.Errorf("create wish: %w", err)
	}

	slog.InfoContext(ctx, "wish created", "wish_id", wish.ID, "user_id", user.ID)
	return wish, nil
}

// Update applies title, description, remarks and category, and moves the
// status through Transition when a different one is requested. An illegal
// move aborts the whole update.
func (s *WishService) Update(ctx context.Context, user *domain.User, id int64, in WishInput) (*domain.Wish, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var wish *domain.Wish
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		wish, err = s.Get(ctx, user, id)
		if err != nil {
			return err
		}

		category, err := s.categories.AssertOwned(ctx, user, in.CategoryID)
		if err != nil {
			return err
		}

		wish.Title = in.Title
		wish.Description = in.Description
		wish.Remarks = in.Remarks
		wish.CategoryID = category.ID
		wish.CategoryName = category.Name
		wish.CategoryColor = category.Color

		if in.Status != nil && *in.Status != wish.Status {
			if err := Transition(wish, *in.Status, s.now()); err != nil {
				return err
			}
		}
		return s.wishes.Update(ctx, wish)
	})
	if err != nil {
		return nil, fmt.Errorf("update wish: %w", err)
	}

	slog.InfoContext(ctx, "wish updated", "wish_id", wish.ID, "user_id", user.ID)
	return wish, nil
}

// ChangeStatus moves a wish to status through Transition.
func (s *WishService) ChangeStatus(ctx context.Context, user *domain.User, id int64, status domain.WishStatus) (*domain.Wish, error) {
	var wish *domain.Wish
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		wish, err = s.Get(ctx, user, id)
		if err != nil {
			return err
		}
		if err := Transition(wish, status, s.now()); err != nil {
			return err
		}
		return s.wishes.Update(ctx, wish)
	})
	if err != nil {
		return nil, fmt.Errorf("change wish status: %w", err)
	}

	slog.InfoContext(ctx, "wish status changed", "wish_id", wish.ID, "user_id", user.ID, "status", wish.Status)
	return wish, nil
}

// Delete removes one of the user's wishes.
func (s *WishService) Delete(ctx context.Context, user *domain.User, id int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		wish, err := s.Get(ctx, user, id)
		if err != nil {
			return err
		}
		return s.wishes.Delete(ctx, wish.ID, user.ID)
	})
	if err != nil {
		return fmt.Errorf("delete wish: %w", err)
	}

	slog.InfoContext(ctx, "wish deleted", "wish_id", id, "user_id", user.ID)
	return nil
}
