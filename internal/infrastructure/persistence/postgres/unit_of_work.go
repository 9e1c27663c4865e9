// Package postgres - UnitOfWork implementation for PostgreSQL.
//
// Unit of Work Pattern:
// - Owns the transaction boundary
// - ROLLBACK on error or panic, COMMIT on success
// - The transaction handle travels in the context passed to fn
//
// Usage:
//
//	err := uow.Execute(ctx, func(txCtx context.Context) error {
//	    // every repository call inside fn uses txCtx
//	    wallet, _ := walletRepo.FindByID(txCtx, walletID)
//	    return walletRepo.UpdateBalance(txCtx, wallet)
//	})
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Haleralex/walletflow/internal/application/ports"
)

// Compile-time check
var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork implements ports.UnitOfWork over a pgx connection pool.
//
// Thread-safe. Transactions run at READ COMMITTED; the wallet engine's
// correctness comes from the version CAS and explicit row locks, not
// from a stronger isolation level.
type UnitOfWork struct {
	pool *pgxpool.Pool
	opts pgx.TxOptions
}

// NewUnitOfWork creates a UnitOfWork with default isolation.
func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{
		pool: pool,
		opts: pgx.TxOptions{
			IsoLevel: pgx.ReadCommitted,
		},
	}
}

// Execute runs fn inside a transaction.
//
// Behaviour:
// - begins a transaction and injects it into the context
// - fn returns nil: COMMIT
// - fn returns an error: ROLLBACK, error is passed through
// - fn panics: ROLLBACK, then re-panic
//
// When the context already carries a transaction the work joins it;
// PostgreSQL has no true nested transactions.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(context.Context) error) error {
	if hasTx(ctx) {
		return fn(ctx)
	}

	tx, err := u.pool.BeginTx(ctx, u.opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	txCtx := injectTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ExecuteWithResult is Execute for work that produces a value.
func (u *UnitOfWork) ExecuteWithResult(ctx context.Context, fn func(context.Context) (interface{}, error)) (interface{}, error) {
	var result interface{}

	err := u.Execute(ctx, func(txCtx context.Context) error {
		var fnErr error
		result, fnErr = fn(txCtx)
		return fnErr
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}
