package services

import "context"

// Transactor runs fn atomically: either every write made with the context fn
// receives commits, or none does. database.MongoDB satisfies this with a
// session transaction; tests use an in-memory implementation that snapshots
// and restores state on error.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
