// Package events defines the wallet events that cross the service
// boundary. Events are immutable facts about committed state changes.
//
// The set of event types is a closed tagged union: the event_type string
// on the wire is the discriminator, and both the publisher and the
// projector dispatch on it with exhaustive switches. Every event carries
// a producer-generated transaction_id that the history projection uses
// as its idempotency key.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Haleralex/walletflow/internal/domain/errors"
	"github.com/Haleralex/walletflow/internal/domain/valueobjects"
)

// Type discriminates the event union on the wire.
type Type string

const (
	TypeWalletCreated     Type = "WALLET_CREATED"
	TypeWalletFunded      Type = "WALLET_FUNDED"
	TypeTransferCompleted Type = "TRANSFER_COMPLETED"
	TypeTransferFailed    Type = "TRANSFER_FAILED"
)

// IsValid checks if the event type is a member of the union.
func (t Type) IsValid() bool {
	switch t {
	case TypeWalletCreated, TypeWalletFunded, TypeTransferCompleted, TypeTransferFailed:
		return true
	default:
		return false
	}
}

// Event is the closed interface over the wallet event union.
//
// PartitionKeys returns the message-log keys the event must be published
// under. Single-wallet events return one key; transfer events return two
// (the from side and the to side), and the same payload is published once
// per key so each wallet's partition observes the transfer in order.
type Event interface {
	Type() Type
	OccurredAt() time.Time
	PartitionKeys() []string
}

// WalletCreated is emitted after a wallet creation commits.
type WalletCreated struct {
	EventType      Type                `json:"event_type"`
	Timestamp      time.Time           `json:"timestamp"`
	TransactionID  string              `json:"transaction_id"`
	WalletID       string              `json:"wallet_id"`
	UserID         string              `json:"user_id"`
	InitialBalance valueobjects.Amount `json:"initial_balance"`
}

// NewWalletCreated creates a WALLET_CREATED event. The transaction id is
// the id of the zero-amount FUND ledger row written at creation.
func NewWalletCreated(walletID, userID, transactionID string, initialBalance valueobjects.Amount) *WalletCreated {
	return &WalletCreated{
		EventType:      TypeWalletCreated,
		Timestamp:      time.Now().UTC(),
		TransactionID:  transactionID,
		WalletID:       walletID,
		UserID:         userID,
		InitialBalance: initialBalance,
	}
}

func (e *WalletCreated) Type() Type            { return TypeWalletCreated }
func (e *WalletCreated) OccurredAt() time.Time { return e.Timestamp }
func (e *WalletCreated) PartitionKeys() []string {
	return []string{e.WalletID}
}

// WalletFunded is emitted after a funding commits.
type WalletFunded struct {
	EventType     Type                `json:"event_type"`
	Timestamp     time.Time           `json:"timestamp"`
	TransactionID string              `json:"transaction_id"`
	WalletID      string              `json:"wallet_id"`
	UserID        string              `json:"user_id"`
	Amount        valueobjects.Amount `json:"amount"`
	NewBalance    valueobjects.Amount `json:"new_balance"`
}

// NewWalletFunded creates a WALLET_FUNDED event.
func NewWalletFunded(walletID, userID, transactionID string, amount, newBalance valueobjects.Amount) *WalletFunded {
	return &WalletFunded{
		EventType:     TypeWalletFunded,
		Timestamp:     time.Now().UTC(),
		TransactionID: transactionID,
		WalletID:      walletID,
		UserID:        userID,
		Amount:        amount,
		NewBalance:    newBalance,
	}
}

func (e *WalletFunded) Type() Type            { return TypeWalletFunded }
func (e *WalletFunded) OccurredAt() time.Time { return e.Timestamp }
func (e *WalletFunded) PartitionKeys() []string {
	return []string{e.WalletID}
}

// TransferCompleted is emitted after a transfer commits. It carries both
// ledger transaction ids; the projector writes one history row per side.
// The base transaction_id mirrors the debit side's id.
type TransferCompleted struct {
	EventType         Type                `json:"event_type"`
	Timestamp         time.Time           `json:"timestamp"`
	TransactionID     string              `json:"transaction_id"`
	FromWalletID      string              `json:"from_wallet_id"`
	ToWalletID        string              `json:"to_wallet_id"`
	FromUserID        string              `json:"from_user_id"`
	ToUserID          string              `json:"to_user_id"`
	Amount            valueobjects.Amount `json:"amount"`
	FromTransactionID string              `json:"from_transaction_id"`
	ToTransactionID   string              `json:"to_transaction_id"`
}

// NewTransferCompleted creates a TRANSFER_COMPLETED event.
func NewTransferCompleted(
	fromWalletID, toWalletID, fromUserID, toUserID string,
	amount valueobjects.Amount,
	fromTransactionID, toTransactionID string,
) *TransferCompleted {
	return &TransferCompleted{
		EventType:         TypeTransferCompleted,
		Timestamp:         time.Now().UTC(),
		TransactionID:     fromTransactionID,
		FromWalletID:      fromWalletID,
		ToWalletID:        toWalletID,
		FromUserID:        fromUserID,
		ToUserID:          toUserID,
		Amount:            amount,
		FromTransactionID: fromTransactionID,
		ToTransactionID:   toTransactionID,
	}
}

func (e *TransferCompleted) Type() Type            { return TypeTransferCompleted }
func (e *TransferCompleted) OccurredAt() time.Time { return e.Timestamp }
func (e *TransferCompleted) PartitionKeys() []string {
	return []string{e.FromWalletID, e.ToWalletID}
}

// TransferFailed is emitted before an insufficient-balance transfer is
// rolled back, so the failure is auditable. No ledger rows exist for it,
// so transaction_id may be empty; the projector then derives a synthetic
// idempotency key.
type TransferFailed struct {
	EventType     Type                `json:"event_type"`
	Timestamp     time.Time           `json:"timestamp"`
	TransactionID string              `json:"transaction_id,omitempty"`
	FromWalletID  string              `json:"from_wallet_id"`
	ToWalletID    string              `json:"to_wallet_id"`
	FromUserID    string              `json:"from_user_id,omitempty"`
	Amount        valueobjects.Amount `json:"amount"`
	Reason        string              `json:"reason"`
}

// NewTransferFailed creates a TRANSFER_FAILED event.
func NewTransferFailed(fromWalletID, toWalletID, fromUserID string, amount valueobjects.Amount, reason string) *TransferFailed {
	return &TransferFailed{
		EventType:    TypeTransferFailed,
		Timestamp:    time.Now().UTC(),
		FromWalletID: fromWalletID,
		ToWalletID:   toWalletID,
		FromUserID:   fromUserID,
		Amount:       amount,
		Reason:       reason,
	}
}

func (e *TransferFailed) Type() Type            { return TypeTransferFailed }
func (e *TransferFailed) OccurredAt() time.Time { return e.Timestamp }
func (e *TransferFailed) PartitionKeys() []string {
	return []string{e.FromWalletID, e.ToWalletID}
}

// IdempotencyKey returns the transaction_id if the producer supplied
// one, otherwise a synthetic key stable for this exact failure.
func (e *TransferFailed) IdempotencyKey() string {
	if e.TransactionID != "" {
		return e.TransactionID
	}
	return fmt.Sprintf("failed-%s-%s", e.Timestamp.Format(time.RFC3339Nano), e.FromWalletID)
}

// Marshal serializes an event to its JSON wire form. Decimals are
// rendered as quoted strings, timestamps as ISO-8601 with offset.
func Marshal(e Event) ([]byte, error) {
	return json.Marshal(e)
}

// Unmarshal decodes a wire payload into its concrete event type by
// sniffing the event_type discriminator. Unknown fields are tolerated;
// an unknown or missing event_type is a deserialization error.
func Unmarshal(data []byte) (Event, error) {
	var envelope struct {
		EventType Type `json:"event_type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode event envelope: %w", err)
	}

	var (
		event Event
		err   error
	)
	switch envelope.EventType {
	case TypeWalletCreated:
		e := &WalletCreated{}
		err = json.Unmarshal(data, e)
		event = e
	case TypeWalletFunded:
		e := &WalletFunded{}
		err = json.Unmarshal(data, e)
		event = e
	case TypeTransferCompleted:
		e := &TransferCompleted{}
		err = json.Unmarshal(data, e)
		event = e
	case TypeTransferFailed:
		e := &TransferFailed{}
		err = json.Unmarshal(data, e)
		event = e
	default:
		return nil, fmt.Errorf("%w: %q", errors.ErrUnknownEventType, envelope.EventType)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s event: %w", envelope.EventType, err)
	}
	return event, nil
}
