// Package entities - Transaction is an append-only ledger record.
// Its identifier propagates into events as the transaction_id that the
// history projection deduplicates on.
package entities

import (
	"time"

	"github.com/google/uuid"

	"github.com/Haleralex/walletflow/internal/domain/errors"
	"github.com/Haleralex/walletflow/internal/domain/valueobjects"
)

// TransactionKind classifies a ledger transaction.
type TransactionKind string

const (
	TransactionKindFund        TransactionKind = "FUND"         // Funding of a single wallet
	TransactionKindTransferOut TransactionKind = "TRANSFER_OUT" // Debit side of a transfer
	TransactionKindTransferIn  TransactionKind = "TRANSFER_IN"  // Credit side of a transfer
)

// IsValid checks if the transaction kind is valid.
func (k TransactionKind) IsValid() bool {
	switch k {
	case TransactionKindFund, TransactionKindTransferOut, TransactionKindTransferIn:
		return true
	default:
		return false
	}
}

// TransactionStatus is the terminal status of a ledger transaction.
// Ledger rows are written already-final; there are no state transitions.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// IsValid checks if the transaction status is valid.
func (s TransactionStatus) IsValid() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusFailed
}

// Transaction is a single row of the internal ledger. Rows are never
// updated or deleted.
type Transaction struct {
	id              string
	walletID        string
	amount          valueobjects.Amount
	kind            TransactionKind
	status          TransactionStatus
	relatedWalletID string // counterpart wallet for transfers, empty otherwise
	createdAt       time.Time
}

// NewTransaction creates a ledger transaction.
// Amount zero is permitted only for the FUND row written at wallet
// creation; all other rows carry a positive amount.
func NewTransaction(
	walletID string,
	amount valueobjects.Amount,
	kind TransactionKind,
	status TransactionStatus,
	relatedWalletID string,
) (*Transaction, error) {
	if walletID == "" {
		return nil, errors.ValidationError{
			Field:   "wallet_id",
			Message: "wallet_id is required",
		}
	}
	if !kind.IsValid() {
		return nil, errors.ValidationError{
			Field:   "kind",
			Message: "invalid transaction kind",
		}
	}
	if !status.IsValid() {
		return nil, errors.ValidationError{
			Field:   "status",
			Message: "invalid transaction status",
		}
	}
	if amount.IsNegative() {
		return nil, errors.ValidationError{
			Field:   "amount",
			Message: "must not be negative",
		}
	}

	return &Transaction{
		id:              uuid.NewString(),
		walletID:        walletID,
		amount:          amount,
		kind:            kind,
		status:          status,
		relatedWalletID: relatedWalletID,
		createdAt:       time.Now().UTC(),
	}, nil
}

// ReconstructTransaction reconstructs a Transaction from stored data.
func ReconstructTransaction(
	id, walletID string,
	amount valueobjects.Amount,
	kind TransactionKind,
	status TransactionStatus,
	relatedWalletID string,
	createdAt time.Time,
) *Transaction {
	return &Transaction{
		id:              id,
		walletID:        walletID,
		amount:          amount,
		kind:            kind,
		status:          status,
		relatedWalletID: relatedWalletID,
		createdAt:       createdAt,
	}
}

// Getters

func (t *Transaction) ID() string {
	return t.id
}

func (t *Transaction) WalletID() string {
	return t.walletID
}

func (t *Transaction) Amount() valueobjects.Amount {
	return t.amount
}

func (t *Transaction) Kind() TransactionKind {
	return t.kind
}

func (t *Transaction) Status() TransactionStatus {
	return t.status
}

func (t *Transaction) RelatedWalletID() string {
	return t.relatedWalletID
}

func (t *Transaction) CreatedAt() time.Time {
	return t.createdAt
}
