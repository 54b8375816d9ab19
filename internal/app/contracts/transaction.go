package contracts

import "context"

// TransactionExecutor runs fn inside a single database transaction. The
// context passed to fn carries the transaction session and must be used
// for every repository call made within fn.
type TransactionExecutor interface {
	WithTransaction(ctx context.Context, fn func(txCtx context.Context) error) error
}
