package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/msomdec/wish-tracker/internal/domain"
	"github.com/msomdec/wish-tracker/internal/repository/sqlite"
	"github.com/msomdec/wish-tracker/internal/service"
)

type testEnv struct {
	db         *sqlite.DB
	identity   *service.IdentityService
	categories *service.CategoryService
	wishes     *service.WishService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	require.NoError(t, err, "New DB")
	require.NoError(t, db.Migrate(context.Background()), "Migrate")
	t.Cleanup(func() { db.Close() })

	categories := service.NewCategoryService(db.Categories(), db.Wishes(), db)
	return &testEnv{
		db:         db,
		identity:   service.NewIdentityService(db.Users(), db.Categories(), db.Wishes(), db),
		categories: categories,
		wishes:     service.NewWishService(db.Wishes(), categories, db),
	}
}

func (e *testEnv) user(t *testing.T, email string) *domain.User {
	t.Helper()
	user, err := e.identity.ResolveOrCreate(context.Background(), email, "", "")
	require.NoError(t, err, "ResolveOrCreate %s", email)
	return user
}

func (e *testEnv) category(t *testing.T, user *domain.User, name string) *domain.Category {
	t.Helper()
	category, err := e.categories.Create(context.Background(), user, service.CategoryInput{Name: name})
	require.NoError(t, err, "Create category %s", name)
	return category
}

func (e *testEnv) wish(t *testing.T, user *domain.User, categoryID int64, title string) *domain.Wish {
	t.Helper()
	wish, err := e.wishes.Create(context.Background(), user, service.WishInput{Title: title, CategoryID: categoryID})
	require.NoError(t, err, "Create wish %s", title)
	return wish
}

func statusPtr(s domain.WishStatus) *domain.WishStatus {
	return &s
}
