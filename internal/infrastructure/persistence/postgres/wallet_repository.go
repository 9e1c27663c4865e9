// Package postgres - WalletRepository implementation with optimistic
// and pessimistic locking primitives.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Haleralex/walletflow/internal/application/ports"
	"github.com/Haleralex/walletflow/internal/domain/entities"
	domainErrors "github.com/Haleralex/walletflow/internal/domain/errors"
	"github.com/Haleralex/walletflow/internal/domain/valueobjects"
)

// Compile-time check
var _ ports.WalletRepository = (*WalletRepository)(nil)

// WalletRepository implements ports.WalletRepository.
//
// Balances are stored as NUMERIC(19,4); the table carries a
// balance >= 0 check constraint as the last line of defence against
// overdraft. The version column is a BIGINT bumped on every mutation.
type WalletRepository struct {
	pool *pgxpool.Pool
}

// NewWalletRepository creates a WalletRepository.
func NewWalletRepository(pool *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{pool: pool}
}

// Create inserts a new wallet row.
func (r *WalletRepository) Create(ctx context.Context, wallet *entities.Wallet) error {
	q := getQuerier(ctx, r.pool)

	query := `
		INSERT INTO wallets (id, user_id, balance, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := q.Exec(ctx, query,
		wallet.ID(),
		wallet.UserID(),
		wallet.Balance().String(),
		wallet.Version(),
		wallet.CreatedAt(),
		wallet.UpdatedAt(),
	)
	if err != nil {
		if isUniqueViolation(err, "wallets_pkey") {
			return &domainErrors.IntegrityError{Constraint: "wallets_pkey", Err: err}
		}
		return fmt.Errorf("failed to insert wallet: %w", err)
	}

	return nil
}

// FindByID loads a wallet by id.
func (r *WalletRepository) FindByID(ctx context.Context, id string) (*entities.Wallet, error) {
	q := getQuerier(ctx, r.pool)

	query := `
		SELECT id, user_id, balance::text, version, created_at, updated_at
		FROM wallets
		WHERE id = $1
	`

	wallet, err := scanWallet(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domainErrors.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to find wallet: %w", err)
	}

	return wallet, nil
}

// FindByUserID returns all wallets of a user, oldest first.
func (r *WalletRepository) FindByUserID(ctx context.Context, userID string) ([]*entities.Wallet, error) {
	q := getQuerier(ctx, r.pool)

	query := `
		SELECT id, user_id, balance::text, version, created_at, updated_at
		FROM wallets
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets: %w", err)
	}
	defer rows.Close()

	return scanWallets(rows)
}

// UpdateWithVersion issues the optimistic conditional update. The
// predicate carries the version captured at read time; zero affected
// rows means a concurrent writer committed first, reported as
// matched=false with no error so the caller can re-read and retry.
func (r *WalletRepository) UpdateWithVersion(ctx context.Context, wallet *entities.Wallet, expectedVersion int64) (bool, error) {
	q := getQuerier(ctx, r.pool)

	query := `
		UPDATE wallets
		SET balance = $1, version = $2, updated_at = $3
		WHERE id = $4 AND version = $5
	`

	tag, err := q.Exec(ctx, query,
		wallet.Balance().String(),
		wallet.Version(),
		wallet.UpdatedAt(),
		wallet.ID(),
		expectedVersion,
	)
	if err != nil {
		if isCheckViolation(err) {
			return false, domainErrors.ErrNegativeBalance
		}
		return false, fmt.Errorf("failed to update wallet: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// LockForUpdate acquires exclusive row locks on the given wallets with
// a single statement. ORDER BY id makes the lock acquisition order
// deterministic across concurrent transfers, which rules out the
// A→B / B→A deadlock.
//
// Missing ids are absent from the result, not an error.
func (r *WalletRepository) LockForUpdate(ctx context.Context, ids []string) ([]*entities.Wallet, error) {
	if !hasTx(ctx) {
		return nil, fmt.Errorf("LockForUpdate requires a transaction")
	}
	q := getQuerier(ctx, r.pool)

	query := `
		SELECT id, user_id, balance::text, version, created_at, updated_at
		FROM wallets
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to lock wallets: %w", err)
	}
	defer rows.Close()

	return scanWallets(rows)
}

// UpdateBalance persists the balance and version of a wallet whose row
// is already locked by the surrounding transaction. No version
// predicate is needed: the row lock serializes writers.
func (r *WalletRepository) UpdateBalance(ctx context.Context, wallet *entities.Wallet) error {
	q := getQuerier(ctx, r.pool)

	query := `
		UPDATE wallets
		SET balance = $1, version = $2, updated_at = $3
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query,
		wallet.Balance().String(),
		wallet.Version(),
		wallet.UpdatedAt(),
		wallet.ID(),
	)
	if err != nil {
		if isCheckViolation(err) {
			return domainErrors.ErrNegativeBalance
		}
		return fmt.Errorf("failed to update wallet balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrWalletNotFound
	}

	return nil
}

// scanWallet hydrates one wallet from a row.
func scanWallet(row pgx.Row) (*entities.Wallet, error) {
	var (
		id, userID, balanceStr string
		version                int64
		createdAt, updatedAt   time.Time
	)

	if err := row.Scan(&id, &userID, &balanceStr, &version, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("invalid stored balance %q: %w", balanceStr, err)
	}

	return entities.ReconstructWallet(
		id, userID,
		valueobjects.ReconstructAmount(balance),
		version,
		createdAt, updatedAt,
	), nil
}

// scanWallets hydrates all wallets from a result set.
func scanWallets(rows pgx.Rows) ([]*entities.Wallet, error) {
	var wallets []*entities.Wallet
	for rows.Next() {
		wallet, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet: %w", err)
		}
		wallets = append(wallets, wallet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read wallets: %w", err)
	}
	return wallets, nil
}
