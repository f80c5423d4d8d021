package domain

import "context"

// Database defines lifecycle operations for the underlying database.
// Each implementation owns its own migration files and strategy, ensuring
// the entire backend is swappable.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}

// Transactor runs fn inside a single storage transaction. Repository calls
// made with the ctx passed to fn participate in that transaction; nested
// calls join the outer transaction instead of opening a new one.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
