package adapter

import "context"

// Transactor runs a unit of work inside a database transaction.
// The transaction travels in the context handed to fn; repositories called with
// that context take part in it. Returning an error from fn rolls it back.
type Transactor interface {
	// WithinTransaction runs fn in a read-write transaction.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// WithinReadOnlyTransaction runs fn in a read-only transaction where the database supports it.
	WithinReadOnlyTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
