package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/msomdec/wish-tracker/internal/domain"
)

// IdentityService maps externally authenticated principals to users.
type IdentityService struct {
	users      domain.UserRepository
	categories domain.CategoryRepository
	wishes     domain.WishRepository
	tx         domain.Transactor
	now        func() time.Time
}

// NewIdentityService creates a new IdentityService.
func NewIdentityService(users domain.UserRepository, categories domain.CategoryRepository, wishes domain.WishRepository, tx domain.Transactor) *IdentityService {
	return &IdentityService{
		users:      users,
		categories: categories,
		wishes:     wishes,
		tx:         tx,
		now:        time.Now,
	}
}

// ResolveOrCreate returns the user for email, creating it on first sight.
// Returning users only get their last login bumped; display name and avatar
// are recorded once, at creation.
func (s *IdentityService) ResolveOrCreate(ctx context.Context, email, displayName, avatarURL string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrIdentity)
	}

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return s.touch(ctx, user)
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("get user: %w", err)
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName, _, _ = strings.Cut(email, "@")
	}

	user = &domain.User{
		Email:       email,
		DisplayName: displayName,
		AvatarURL:   strings.TrimSpace(avatarURL),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if !errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, fmt.Errorf("create user: %w", err)
		}
		// Lost a first-sign-in race; the other request created the row.
		existing, err := s.users.GetByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("get user after conflict: %w", err)
		}
		return s.touch(ctx, existing)
	}

	slog.InfoContext(ctx, "user created", "user_id", user.ID)
	return user, nil
}

func (s *IdentityService) touch(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := s.now().UTC()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("touch last login: %w", err)
	}
	user.LastLoginAt = now
	return user, nil
}

// CurrentUser returns the user a session refers to. A missing user yields
// domain.ErrUserNotFound, which is an authentication failure.
func (s *IdentityService) CurrentUser(ctx context.Context, email string) (*domain.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.users.GetByEmail(ctx, email)
}

// DeleteAccount removes the user's wishes, then categories, then the user
// itself, all in one transaction.
func (s *IdentityService) DeleteAccount(ctx context.Context, user *domain.User) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.wishes.DeleteAllByUser(ctx, user.ID); err != nil {
			return err
		}
		if err := s.categories.DeleteAllByUser(ctx, user.ID); err != nil {
			return err
		}
		return s.users.Delete(ctx, user.ID)
	})
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	slog.InfoContext(ctx, "user deleted", "user_id", user.ID)
	return nil
}
