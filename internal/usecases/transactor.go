package usecases

import "context"

// Transactor runs a function inside a single store transaction. Satisfied by
// the pgx transactor from pkg/database.
type Transactor interface {
	WithinTransaction(ctx context.Context, txFunc func(ctx context.Context) error) error
}
