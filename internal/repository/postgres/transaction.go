package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"queenzz/internal/domain/repositories"
)

// TransactionManager runs snapshot saves in a pgx transaction
type TransactionManager struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(config *RepositoryConfig) repositories.TransactionManager {
	return &TransactionManager{pool: config.Pool, logger: config.Logger}
}

// ExecTx runs fn in a transaction and commits when fn returns nil. A ctx that
// already carries a transaction is passed through, so the outer call owns
// the commit.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if _, ok := repositories.TxFromContext(ctx); ok {
		return fn(ctx)
	}

	start := time.Now()
	tx, err := tm.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return wrapError("begin transaction", err)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			tm.logger.Warn("rollback failed", "error", err)
		}
	}()

	if err := fn(repositories.WithTx(ctx, tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return wrapError("commit transaction", err)
	}
	committed = true

	tm.logger.Debug("transaction committed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// executor returns the transaction carried by ctx, or the pool
func executor(ctx context.Context, pool *pgxpool.Pool) repositories.Executor {
	if tx, ok := repositories.TxFromContext(ctx); ok {
		return tx
	}
	return pool
}
