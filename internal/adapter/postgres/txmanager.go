package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TxManager runs functions inside a single database transaction. The
// transaction travels through the context, so repositories picked up via
// QuerierFromCtx join it automatically. Do not nest RunInTx calls: the inner
// call would open a second, independent transaction.
type TxManager struct {
	pool *pgxpool.Pool
}

func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// RunInTx opens a Read Committed transaction, runs fn with it bound to the
// context, and commits if fn returns nil. Any error or panic from fn rolls
// the transaction back; panics are re-raised after the rollback.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	// Rollback after a successful commit returns pgx.ErrTxClosed, which is
	// safe to ignore; this also covers panics escaping from fn.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(withTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
