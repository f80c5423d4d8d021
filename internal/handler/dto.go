package handler

import (
	"time"

	"github.com/msomdec/wish-tracker/internal/domain"
)

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	CreatedAt   string `json:"createdAt"`
	LastLoginAt string `json:"lastLoginAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
		LastLoginAt: u.LastLoginAt.Format(time.RFC3339),
	}
}

// CategoryDTO is the JSON representation of a category.
type CategoryDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	WishCount   int    `json:"wishCount"`
	CreatedAt   string `json:"createdAt"`
}

func toCategoryDTO(c *domain.Category) CategoryDTO {
	return CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		WishCount:   c.WishCount,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}
}

func toCategoryDTOs(categories []domain.Category) []CategoryDTO {
	dtos := make([]CategoryDTO, len(categories))
	for i := range categories {
		dtos[i] = toCategoryDTO(&categories[i])
	}
	return dtos
}

// WishDTO is the JSON representation of a wish, with its category
// denormalized.
type WishDTO struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Remarks       string  `json:"remarks"`
	Status        string  `json:"status"`
	StatusLabel   string  `json:"statusLabel"`
	CategoryID    int64   `json:"categoryId"`
	CategoryName  string  `json:"categoryName"`
	CategoryColor string  `json:"categoryColor"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
	AchievedAt    *string `json:"achievedAt"`
}

func toWishDTO(w *domain.Wish) WishDTO {
	dto := WishDTO{
		ID:            w.ID,
		Title:         w.Title,
		Description:   w.Description,
		Remarks:       w.Remarks,
		Status:        string(w.Status),
		StatusLabel:   w.Status.Label(),
		CategoryID:    w.CategoryID,
		CategoryName:  w.CategoryName,
		CategoryColor: w.CategoryColor,
		CreatedAt:     w.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     w.UpdatedAt.Format(time.RFC3339),
	}
	if w.AchievedAt != nil {
		s := w.AchievedAt.Format(time.RFC3339)
		dto.AchievedAt = &s
	}
	return dto
}

func toWishDTOs(wishes []domain.Wish) []WishDTO {
	dtos := make([]WishDTO, len(wishes))
	for i := range wishes {
		dtos[i] = toWishDTO(&wishes[i])
	}
	return dtos
}

// ColumnDTO is one board column.
type ColumnDTO struct {
	Status string    `json:"status"`
	Label  string    `json:"label"`
	Wishes []WishDTO `json:"wishes"`
}

func toBoardDTO(b *domain.Board) []ColumnDTO {
	cols := make([]ColumnDTO, 0, len(domain.WishStatuses))
	for _, s := range domain.WishStatuses {
		cols = append(cols, ColumnDTO{
			Status: string(s),
			Label:  s.Label(),
			Wishes: toWishDTOs(b.Column(s)),
		})
	}
	return cols
}
