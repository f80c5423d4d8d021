package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/wish-tracker/internal/domain"
	"github.com/msomdec/wish-tracker/internal/repository/sqlite"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		deleteEmail = ""
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func useTempDB(t *testing.T) string {
	t.Helper()
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "cli.db")
	t.Setenv("DATABASE_PATH", path)
	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "wishtracker "+Version+"\n", out)
}

func TestMigrate(t *testing.T) {
	useTempDB(t)

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema at version 3")

	// Re-running is a no-op.
	out, err = run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema at version 3")
}

func TestUserDelete(t *testing.T) {
	path := useTempDB(t)

	db, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))
	ctx := context.Background()
	user := &domain.User{Email: "gone@example.com", DisplayName: "gone"}
	require.NoError(t, db.Users().Create(ctx, user))
	require.NoError(t, db.Categories().Create(ctx, &domain.Category{UserID: user.ID, Name: "Travel", Color: domain.DefaultCategoryColor}))
	require.NoError(t, db.Close())

	out, err := run(t, "user", "delete", "--email", "gone@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted user gone@example.com")

	db, err = sqlite.New(path)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Users().GetByEmail(ctx, "gone@example.com")
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
}

func TestUserDelete_Errors(t *testing.T) {
	useTempDB(t)

	_, err := run(t, "user", "delete")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--email is required")

	_, err = run(t, "user", "delete", "--email", "nobody@example.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
}

func TestServe_RequiresSecret(t *testing.T) {
	useTempDB(t)
	t.Setenv("JWT_SECRET", "too-short")

	_, err := run(t, "serve")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "JWT_SECRET"))
}
