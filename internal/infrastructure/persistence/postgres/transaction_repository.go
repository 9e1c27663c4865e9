// Package postgres - TransactionRepository for the append-only ledger.
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
var _ ports.TransactionRepository = (*TransactionRepository)(nil)

// TransactionRepository implements ports.TransactionRepository.
// Ledger rows are insert-only; there is no update path.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Save inserts a ledger transaction.
func (r *TransactionRepository) Save(ctx context.Context, tx *entities.Transaction) error {
	q := getQuerier(ctx, r.pool)

	query := `
		INSERT INTO wallet_transactions (
			id, wallet_id, amount, kind, status, related_wallet_id, created_at
		) VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
	`

	_, err := q.Exec(ctx, query,
		tx.ID(),
		tx.WalletID(),
		tx.Amount().String(),
		string(tx.Kind()),
		string(tx.Status()),
		tx.RelatedWalletID(),
		tx.CreatedAt(),
	)
	if err != nil {
		if isUniqueViolation(err, "wallet_transactions_pkey") {
			return &domainErrors.IntegrityError{Constraint: "wallet_transactions_pkey", Err: err}
		}
		if isForeignKeyViolation(err) {
			return domainErrors.ErrWalletNotFound
		}
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// FindByID loads a ledger transaction by id.
func (r *TransactionRepository) FindByID(ctx context.Context, id string) (*entities.Transaction, error) {
	q := getQuerier(ctx, r.pool)

	query := `
		SELECT id, wallet_id, amount::text, kind, status, COALESCE(related_wallet_id, ''), created_at
		FROM wallet_transactions
		WHERE id = $1
	`

	tx, err := scanTransaction(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("transaction %s: %w", id, pgx.ErrNoRows)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	return tx, nil
}

// FindByWalletID returns a wallet's ledger rows, newest first.
func (r *TransactionRepository) FindByWalletID(ctx context.Context, walletID string, offset, limit int) ([]*entities.Transaction, error) {
	q := getQuerier(ctx, r.pool)

	query := `
		SELECT id, wallet_id, amount::text, kind, status, COALESCE(related_wallet_id, ''), created_at
		FROM wallet_transactions
		WHERE wallet_id = $1
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`

	rows, err := q.Query(ctx, query, walletID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txs []*entities.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	return txs, nil
}

// scanTransaction hydrates one ledger row.
func scanTransaction(row pgx.Row) (*entities.Transaction, error) {
	var (
		id, walletID, amountStr string
		kind, status, relatedID string
		createdAt               time.Time
	)

	if err := row.Scan(&id, &walletID, &amountStr, &kind, &status, &relatedID, &createdAt); err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("invalid stored amount %q: %w", amountStr, err)
	}

	return entities.ReconstructTransaction(
		id, walletID,
		valueobjects.ReconstructAmount(amount),
		entities.TransactionKind(kind),
		entities.TransactionStatus(status),
		relatedID,
		createdAt,
	), nil
}
