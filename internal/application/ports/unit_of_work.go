// Package ports - UnitOfWork is the transaction-scoping primitive.
//
// Pattern: Unit of Work
// - One UnitOfWork execution = one database transaction
// - Rollback is guaranteed on any exit path (error or panic)
// - The transaction handle travels inside the context passed to fn
package ports

import "context"

// UnitOfWork wraps a piece of work in a database transaction.
//
// Example:
//
//	err := uow.Execute(ctx, func(txCtx context.Context) error {
//	    // use txCtx, not ctx; it carries the transaction
//	    wallet, err := walletRepo.FindByID(txCtx, walletID)
//	    if err != nil {
//	        return err // automatic rollback
//	    }
//	    return walletRepo.UpdateBalance(txCtx, wallet)
//	})
type UnitOfWork interface {
	// Execute begins a transaction, runs fn with a context carrying it,
	// commits when fn returns nil and rolls back otherwise. A panic
	// inside fn also rolls back before re-panicking.
	Execute(ctx context.Context, fn func(context.Context) error) error

	// ExecuteWithResult is Execute for work that produces a value.
	ExecuteWithResult(ctx context.Context, fn func(context.Context) (interface{}, error)) (interface{}, error)
}
