// Package entities - Wallet is the authoritative balance-bearing entity.
// It enforces the non-negative balance invariant and carries the version
// counter used for optimistic concurrency control.
package entities

import (
	"time"

	"github.com/google/uuid"

	"github.com/Haleralex/walletflow/internal/domain/errors"
	"github.com/Haleralex/walletflow/internal/domain/valueobjects"
)

// Wallet represents a user's wallet.
//
// Entity Pattern:
// - Has identity (ID)
// - Enforces invariants (balance >= 0, version strictly increases)
// - Rich behavior (not just data)
//
// The version field is incremented on every balance mutation. Repositories
// use it as the predicate of a conditional update: no two committed
// mutations may share a (wallet_id, version) pair.
type Wallet struct {
	id      string
	userID  string
	balance valueobjects.Amount
	version int64

	createdAt time.Time
	updatedAt time.Time
}

// NewWallet creates a wallet for a user with zero balance and version 0.
// Factory function with validation.
func NewWallet(userID string) (*Wallet, error) {
	if userID == "" {
		return nil, errors.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		}
	}

	now := time.Now().UTC()
	return &Wallet{
		id:        uuid.NewString(),
		userID:    userID,
		balance:   valueobjects.ZeroAmount(),
		version:   0,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructWallet reconstructs a Wallet from stored data.
// Used by repositories to hydrate entities from the database.
func ReconstructWallet(
	id, userID string,
	balance valueobjects.Amount,
	version int64,
	createdAt, updatedAt time.Time,
) *Wallet {
	return &Wallet{
		id:        id,
		userID:    userID,
		balance:   balance,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Getters

func (w *Wallet) ID() string {
	return w.id
}

func (w *Wallet) UserID() string {
	return w.userID
}

func (w *Wallet) Balance() valueobjects.Amount {
	return w.balance
}

func (w *Wallet) Version() int64 {
	return w.version
}

func (w *Wallet) CreatedAt() time.Time {
	return w.createdAt
}

func (w *Wallet) UpdatedAt() time.Time {
	return w.updatedAt
}

// Business Methods

// HasSufficientBalance checks if the wallet can cover the given amount.
func (w *Wallet) HasSufficientBalance(amount valueobjects.Amount) bool {
	return w.balance.GreaterThanOrEqual(amount)
}

// Credit adds funds to the wallet and bumps the version.
func (w *Wallet) Credit(amount valueobjects.Amount) error {
	if !amount.IsPositive() {
		return errors.ValidationError{
			Field:   "amount",
			Message: "must be greater than zero",
		}
	}

	w.balance = w.balance.Add(amount)
	w.version++
	w.updatedAt = time.Now().UTC()
	return nil
}

// Debit subtracts funds from the wallet and bumps the version.
// The non-negative balance invariant is enforced here; repositories
// additionally enforce it with a storage-level check constraint.
func (w *Wallet) Debit(amount valueobjects.Amount) error {
	if !amount.IsPositive() {
		return errors.ValidationError{
			Field:   "amount",
			Message: "must be greater than zero",
		}
	}

	if !w.HasSufficientBalance(amount) {
		return errors.ErrInsufficientBalance
	}

	w.balance = w.balance.Sub(amount)
	w.version++
	w.updatedAt = time.Now().UTC()
	return nil
}
