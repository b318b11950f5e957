package repositories

import "context"

// TxFn runs inside a transaction; repositories called with its ctx join it
type TxFn func(ctx context.Context) error

// TransactionManager commits a snapshot save and its asset writes together
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
