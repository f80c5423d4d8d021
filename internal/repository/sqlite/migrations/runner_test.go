package migrations_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/msomdec/wish-tracker/internal/repository/sqlite/migrations"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+filepath.Join(t.TempDir(), "test.db")+"?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunMigrations(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("first migration run: %v", err)
	}

	// Verify the users table exists by inserting a row.
	_, err := db.ExecContext(ctx,
		"INSERT INTO users (email, display_name) VALUES (?, ?)",
		"test@example.com", "Test User",
	)
	if err != nil {
		t.Fatalf("insert into users: %v", err)
	}

	version, err := migrations.Version(ctx, db)
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if version != 3 {
		t.Fatalf("expected version 3, got %d", version)
	}
}

func TestRunMigrationsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("second run (idempotent): %v", err)
	}

	version, err := migrations.Version(ctx, db)
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if version != 3 {
		t.Fatalf("expected version 3 after second run, got %d", version)
	}
}

func TestCategoryNameIsCaseSensitive(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := db.ExecContext(ctx, "INSERT INTO users (id, email, display_name) VALUES (1, 'a@x.com', 'A')"); err != nil {
		t.Fatalf("insert user: %v", err)
	}
	if _, err := db.ExecContext(ctx, "INSERT INTO categories (user_id, name) VALUES (1, 'Travel')"); err != nil {
		t.Fatalf("insert Travel: %v", err)
	}
	if _, err := db.ExecContext(ctx, "INSERT INTO categories (user_id, name) VALUES (1, 'travel')"); err != nil {
		t.Fatalf("insert travel should succeed under case-sensitive uniqueness: %v", err)
	}
	if _, err := db.ExecContext(ctx, "INSERT INTO categories (user_id, name) VALUES (1, 'Travel')"); err == nil {
		t.Fatal("expected duplicate Travel to violate the unique constraint")
	}
}
