package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// RollbackError reports a transaction whose rollback failed after Cause.
type RollbackError struct {
	Cause       error
	RollbackErr error
}

func (e *RollbackError) Error() string {
	return fmt.Sprintf("%v (rollback failed: %v)", e.Cause, e.RollbackErr)
}

func (e *RollbackError) Unwrap() error {
	return e.Cause
}

// TxManager runs units of work inside a single database transaction.
type TxManager struct {
	pool Pool
}

func NewTxManager(pool Pool) *TxManager {
	return &TxManager{pool: pool}
}

// WithTx begins a transaction, runs fn and commits. Any error from fn rolls the
// transaction back before it is returned; a failed rollback is reported as
// *RollbackError wrapping the original cause. A panic in fn rolls back and
// is re-raised.
func (m *TxManager) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return &RollbackError{Cause: err, RollbackErr: rbErr}
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
