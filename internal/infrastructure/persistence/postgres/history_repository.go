// Package postgres - HistoryRepository for the projection store.
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
var _ ports.HistoryRepository = (*HistoryRepository)(nil)

// HistoryRepository implements ports.HistoryRepository.
//
// The UNIQUE constraint on transaction_id is the idempotency backstop:
// a violation on insert means another consumer already projected the
// event, and is surfaced as an IntegrityError the projector maps to
// success. The original event payload is stored verbatim in a JSONB
// column.
type HistoryRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository creates a HistoryRepository.
func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

// Save inserts a projection record.
func (r *HistoryRepository) Save(ctx context.Context, record *entities.HistoryRecord) error {
	q := getQuerier(ctx, r.pool)

	query := `
		INSERT INTO transaction_events (
			wallet_id, user_id, amount, event_type, transaction_id, event_data, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query,
		record.WalletID(),
		record.UserID(),
		record.Amount().String(),
		record.EventType(),
		record.TransactionID(),
		record.EventData(),
		record.CreatedAt(),
	)
	if err != nil {
		if isUniqueViolation(err, "transaction_events_transaction_id") {
			return &domainErrors.IntegrityError{Constraint: "transaction_events_transaction_id_key", Err: err}
		}
		return fmt.Errorf("failed to insert history record: %w", err)
	}

	return nil
}

// Exists reports whether a transaction_id is already projected.
func (r *HistoryRepository) Exists(ctx context.Context, transactionID string) (bool, error) {
	q := getQuerier(ctx, r.pool)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM transaction_events WHERE transaction_id = $1)`,
		transactionID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check transaction_id: %w", err)
	}

	return exists, nil
}

// ExistsAny reports whether any of the transaction_ids is projected.
func (r *HistoryRepository) ExistsAny(ctx context.Context, transactionIDs []string) (bool, error) {
	q := getQuerier(ctx, r.pool)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM transaction_events WHERE transaction_id = ANY($1))`,
		transactionIDs,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check transaction_ids: %w", err)
	}

	return exists, nil
}

// FindByWalletID returns a wallet's records newest-arrival-first plus
// the total count.
func (r *HistoryRepository) FindByWalletID(ctx context.Context, walletID string, offset, limit int) ([]*entities.HistoryRecord, int, error) {
	return r.findBy(ctx, "wallet_id", walletID, offset, limit)
}

// FindByUserID returns a user's records newest-arrival-first plus the
// total count.
func (r *HistoryRepository) FindByUserID(ctx context.Context, userID string, offset, limit int) ([]*entities.HistoryRecord, int, error) {
	return r.findBy(ctx, "user_id", userID, offset, limit)
}

// findBy pages records filtered on one indexed column.
func (r *HistoryRepository) findBy(ctx context.Context, column, value string, offset, limit int) ([]*entities.HistoryRecord, int, error) {
	q := getQuerier(ctx, r.pool)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM transaction_events WHERE %s = $1`, column)
	if err := q.QueryRow(ctx, countQuery, value).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count history records: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, wallet_id, user_id, amount::text, event_type, transaction_id, event_data, created_at
		FROM transaction_events
		WHERE %s = $1
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`, column)

	rows, err := q.Query(ctx, query, value, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query history records: %w", err)
	}
	defer rows.Close()

	var records []*entities.HistoryRecord
	for rows.Next() {
		record, err := scanHistoryRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan history record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read history records: %w", err)
	}

	return records, total, nil
}

// scanHistoryRecord hydrates one projection row.
func scanHistoryRecord(row pgx.Row) (*entities.HistoryRecord, error) {
	var (
		id                          int64
		walletID, userID, amountStr string
		eventType, transactionID    string
		eventData                   []byte
		createdAt                   time.Time
	)

	if err := row.Scan(&id, &walletID, &userID, &amountStr, &eventType, &transactionID, &eventData, &createdAt); err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("invalid stored amount %q: %w", amountStr, err)
	}

	return entities.ReconstructHistoryRecord(
		id, walletID, userID,
		valueobjects.ReconstructAmount(amount),
		eventType, transactionID,
		eventData, createdAt,
	), nil
}
