package entities

import (
	"time"

	"github.com/Haleralex/walletflow/internal/domain/errors"
	"github.com/Haleralex/walletflow/internal/domain/valueobjects"
)

// HistoryRecord is the flattened projection of one event in the History
// Store. The transaction_id is unique at the storage layer; that
// constraint is the linearization point for consumer idempotency.
// Records are created by the projector and never updated or deleted.
type HistoryRecord struct {
	id            int64
	walletID      string
	userID        string
	amount        valueobjects.Amount
	eventType     string
	transactionID string
	eventData     []byte // original event payload, stored verbatim
	createdAt     time.Time
}

// NewHistoryRecord creates a projection record for an event.
func NewHistoryRecord(
	walletID, userID string,
	amount valueobjects.Amount,
	eventType, transactionID string,
	eventData []byte,
) (*HistoryRecord, error) {
	if walletID == "" {
		return nil, errors.ValidationError{
			Field:   "wallet_id",
			Message: "wallet_id is required",
		}
	}
	if transactionID == "" {
		return nil, errors.ValidationError{
			Field:   "transaction_id",
			Message: "transaction_id is required",
		}
	}

	return &HistoryRecord{
		walletID:      walletID,
		userID:        userID,
		amount:        amount,
		eventType:     eventType,
		transactionID: transactionID,
		eventData:     eventData,
		createdAt:     time.Now().UTC(),
	}, nil
}

// ReconstructHistoryRecord reconstructs a HistoryRecord from stored data.
func ReconstructHistoryRecord(
	id int64,
	walletID, userID string,
	amount valueobjects.Amount,
	eventType, transactionID string,
	eventData []byte,
	createdAt time.Time,
) *HistoryRecord {
	return &HistoryRecord{
		id:            id,
		walletID:      walletID,
		userID:        userID,
		amount:        amount,
		eventType:     eventType,
		transactionID: transactionID,
		eventData:     eventData,
		createdAt:     createdAt,
	}
}

// Getters

func (r *HistoryRecord) ID() int64 {
	return r.id
}

func (r *HistoryRecord) WalletID() string {
	return r.walletID
}

func (r *HistoryRecord) UserID() string {
	return r.userID
}

func (r *HistoryRecord) Amount() valueobjects.Amount {
	return r.amount
}

func (r *HistoryRecord) EventType() string {
	return r.eventType
}

func (r *HistoryRecord) TransactionID() string {
	return r.transactionID
}

func (r *HistoryRecord) EventData() []byte {
	return r.eventData
}

func (r *HistoryRecord) CreatedAt() time.Time {
	return r.createdAt
}
