package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/msomdec/wish-tracker/internal/domain"
	"github.com/msomdec/wish-tracker/internal/repository/sqlite/migrations"
)

var tracer = otel.Tracer("github.com/msomdec/wish-tracker/internal/repository/sqlite")

// DB wraps the SQLite connection and hands out repositories bound to it.
type DB struct {
	SqlDB *sql.DB
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys, and makes write transactions take
// the database lock up front so read-validate-write sequences cannot interleave.
func New(dbPath string) (*DB, error) {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Set("_txlock", "immediate")

	db, err := sql.Open("sqlite", "file:"+dbPath+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection keeps pragmas consistent and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies all pending schema migrations.
func (d *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, d.SqlDB)
}

func (d *DB) Close() error {
	return d.SqlDB.Close()
}

func (d *DB) Users() *UserRepository {
	return NewUserRepository(d)
}

func (d *DB) Categories() *CategoryRepository {
	return NewCategoryRepository(d)
}

func (d *DB) Wishes() *WishRepository {
	return NewWishRepository(d)
}

type txKey struct{}

// WithinTx runs fn in a transaction carried by the context. If ctx already
// carries a transaction, fn joins it.
func (d *DB) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	ctx, span := tracer.Start(ctx, "sqlite.tx")
	defer span.End()

	tx, err := d.SqlDB.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "begin")
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "commit")
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// querier is the subset of *sql.DB and *sql.Tx the repositories use.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn returns the transaction carried by ctx, or the pool.
func conn(ctx context.Context, db *sql.DB) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

func isUniqueConstraintError(err error) bool {
	return hasErrorCode(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE)
}

// isForeignKeyError matches both a dangling reference on write and a parent
// delete blocked by ON DELETE RESTRICT, which SQLite reports as a trigger
// constraint.
func isForeignKeyError(err error) bool {
	return hasErrorCode(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, sqlite3.SQLITE_CONSTRAINT_TRIGGER)
}

func hasErrorCode(err error, codes ...int) bool {
	var se *msqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	for _, code := range codes {
		if se.Code() == code {
			return true
		}
	}
	return false
}

// rowsAffectedOrNotFound maps a zero-row write to notFound.
func rowsAffectedOrNotFound(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}

var _ domain.Database = (*DB)(nil)
var _ domain.Transactor = (*DB)(nil)
