// Package ports defines the interfaces (ports) for external dependencies.
// The infrastructure layer provides the implementations.
//
// Pattern: Repository Pattern + Ports & Adapters (Hexagonal Architecture)
package ports

import (
	"context"

	"github.com/Haleralex/walletflow/internal/domain/entities"
)

// WalletRepository is the contract for the authoritative wallet store.
type WalletRepository interface {
	// Create inserts a new wallet row (balance 0, version 0).
	Create(ctx context.Context, wallet *entities.Wallet) error

	// FindByID loads a wallet by id.
	// Returns errors.ErrWalletNotFound when the id is unknown.
	FindByID(ctx context.Context, id string) (*entities.Wallet, error)

	// FindByUserID returns all wallets owned by a user, oldest first.
	FindByUserID(ctx context.Context, userID string) ([]*entities.Wallet, error)

	// UpdateWithVersion issues the optimistic conditional update:
	// UPDATE ... SET balance, version = version+1 WHERE id = ? AND version = ?.
	// Returns false (and no error) when the version predicate matched no
	// row, i.e. a concurrent writer won the race.
	UpdateWithVersion(ctx context.Context, wallet *entities.Wallet, expectedVersion int64) (bool, error)

	// LockForUpdate acquires exclusive row locks on the given wallets in
	// one statement, scanning ids in ascending order so that concurrent
	// transfers can never deadlock. Missing ids are simply absent from
	// the result; callers decide whether that is an error.
	//
	// Must be called inside a unit-of-work transaction.
	LockForUpdate(ctx context.Context, ids []string) ([]*entities.Wallet, error)

	// UpdateBalance persists the balance and version of a wallet whose
	// row is already locked by the surrounding transaction.
	UpdateBalance(ctx context.Context, wallet *entities.Wallet) error
}

// TransactionRepository is the contract for the append-only ledger.
type TransactionRepository interface {
	// Save inserts a ledger transaction. Ledger rows are never updated.
	Save(ctx context.Context, tx *entities.Transaction) error

	// FindByID loads a ledger transaction by id.
	FindByID(ctx context.Context, id string) (*entities.Transaction, error)

	// FindByWalletID returns a wallet's ledger rows, newest first.
	FindByWalletID(ctx context.Context, walletID string, offset, limit int) ([]*entities.Transaction, error)
}

// HistoryRepository is the contract for the history projection store.
type HistoryRepository interface {
	// Save inserts a projection record. A unique-key violation on
	// transaction_id means the event was already applied.
	Save(ctx context.Context, record *entities.HistoryRecord) error

	// Exists reports whether a record with the given transaction_id
	// has already been projected.
	Exists(ctx context.Context, transactionID string) (bool, error)

	// ExistsAny reports whether any of the given transaction_ids has
	// already been projected. Used for the two-sided transfer check.
	ExistsAny(ctx context.Context, transactionIDs []string) (bool, error)

	// FindByWalletID returns a wallet's history newest-arrival-first,
	// plus the total count for pagination.
	FindByWalletID(ctx context.Context, walletID string, offset, limit int) ([]*entities.HistoryRecord, int, error)

	// FindByUserID returns a user's history across all their wallets,
	// newest-arrival-first, plus the total count.
	FindByUserID(ctx context.Context, userID string, offset, limit int) ([]*entities.HistoryRecord, int, error)
}
