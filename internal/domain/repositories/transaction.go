package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager runs a function with all repository calls inside a
// single database transaction. The version store relies on this to keep
// the demote+insert pair of CreateVersion atomic.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
