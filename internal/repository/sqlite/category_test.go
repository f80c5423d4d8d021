package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/wish-tracker/internal/domain"
)

func TestCategoryRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "cat@example.com")

	category := &domain.Category{UserID: user.ID, Name: "Travel", Description: "Trips", Color: "#10B981"}
	if err := db.Categories().Create(ctx, category); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if category.ID == 0 {
		t.Fatal("expected category ID to be set")
	}

	found, err := db.Categories().GetForUser(ctx, category.ID, user.ID)
	if err != nil {
		t.Fatalf("GetForUser: %v", err)
	}
	if found.Name != "Travel" || found.Description != "Trips" || found.Color != "#10B981" {
		t.Fatalf("unexpected category: %+v", found)
	}
	if found.WishCount != 0 {
		t.Fatalf("expected wish count 0, got %d", found.WishCount)
	}
}

func TestCategoryRepository_DuplicateNamePerUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")

	createCategory(t, db, alice.ID, "Books")

	err := db.Categories().Create(ctx, &domain.Category{UserID: alice.ID, Name: "Books", Color: domain.DefaultCategoryColor})
	if !errors.Is(err, domain.ErrDuplicateCategoryName) {
		t.Fatalf("expected ErrDuplicateCategoryName, got %v", err)
	}

	// Names are only unique per owner.
	if err := db.Categories().Create(ctx, &domain.Category{UserID: bob.ID, Name: "Books", Color: domain.DefaultCategoryColor}); err != nil {
		t.Fatalf("Create for other user: %v", err)
	}

	// Comparison is case-sensitive.
	if err := db.Categories().Create(ctx, &domain.Category{UserID: alice.ID, Name: "books", Color: domain.DefaultCategoryColor}); err != nil {
		t.Fatalf("Create with different case: %v", err)
	}
}

func TestCategoryRepository_OtherUserIsNotFound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	category := createCategory(t, db, alice.ID, "Private")

	if _, err := db.Categories().GetForUser(ctx, category.ID, bob.ID); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}

	stolen := *category
	stolen.UserID = bob.ID
	stolen.Name = "Hijacked"
	if err := db.Categories().Update(ctx, &stolen); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound on update, got %v", err)
	}
	if err := db.Categories().Delete(ctx, category.ID, bob.ID); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound on delete, got %v", err)
	}

	found, err := db.Categories().GetForUser(ctx, category.ID, alice.ID)
	if err != nil {
		t.Fatalf("GetForUser: %v", err)
	}
	if found.Name != "Private" {
		t.Fatalf("expected name unchanged, got %q", found.Name)
	}
}

func TestCategoryRepository_ListByUser_SortedByName(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")

	for _, name := range []string{"Travel", "Books", "Health"} {
		createCategory(t, db, alice.ID, name)
	}
	createCategory(t, db, bob.ID, "Aardvarks")

	categories, err := db.Categories().ListByUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	want := []string{"Books", "Health", "Travel"}
	if len(categories) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(categories))
	}
	for i, name := range want {
		if categories[i].Name != name {
			t.Fatalf("position %d: expected %q, got %q", i, name, categories[i].Name)
		}
	}
}

func TestCategoryRepository_ExistsByName(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "exists@example.com")
	createCategory(t, db, user.ID, "Music")

	exists, err := db.Categories().ExistsByName(ctx, user.ID, "Music")
	if err != nil {
		t.Fatalf("ExistsByName: %v", err)
	}
	if !exists {
		t.Fatal("expected Music to exist")
	}

	exists, err = db.Categories().ExistsByName(ctx, user.ID, "music")
	if err != nil {
		t.Fatalf("ExistsByName: %v", err)
	}
	if exists {
		t.Fatal("expected lowercase music not to exist")
	}
}

func TestCategoryRepository_Update_DuplicateName(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "upd@example.com")
	createCategory(t, db, user.ID, "A")
	b := createCategory(t, db, user.ID, "B")

	b.Name = "A"
	if err := db.Categories().Update(ctx, b); !errors.Is(err, domain.ErrDuplicateCategoryName) {
		t.Fatalf("expected ErrDuplicateCategoryName, got %v", err)
	}
}

func TestCategoryRepository_Delete_RestrictedByWishes(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "del@example.com")
	category := createCategory(t, db, user.ID, "Busy")

	wish := &domain.Wish{UserID: user.ID, CategoryID: category.ID, Title: "Something", Status: domain.StatusWish}
	if err := db.Wishes().Create(ctx, wish); err != nil {
		t.Fatalf("Create wish: %v", err)
	}

	if err := db.Categories().Delete(ctx, category.ID, user.ID); !errors.Is(err, domain.ErrCategoryNotEmpty) {
		t.Fatalf("expected ErrCategoryNotEmpty, got %v", err)
	}

	found, err := db.Categories().GetForUser(ctx, category.ID, user.ID)
	if err != nil {
		t.Fatalf("GetForUser: %v", err)
	}
	if found.WishCount != 1 {
		t.Fatalf("expected wish count 1, got %d", found.WishCount)
	}

	if err := db.Wishes().Delete(ctx, wish.ID, user.ID); err != nil {
		t.Fatalf("Delete wish: %v", err)
	}
	if err := db.Categories().Delete(ctx, category.ID, user.ID); err != nil {
		t.Fatalf("Delete category: %v", err)
	}
	if err := db.Categories().Delete(ctx, category.ID, user.ID); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound on second delete, got %v", err)
	}
}
