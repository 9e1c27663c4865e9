package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(ErrWalletNotFound) {
		t.Error("expected sentinel to match")
	}

	wrapped := NewDomainError("WALLET_NOT_FOUND", "wallet not found", ErrWalletNotFound)
	if !IsNotFound(wrapped) {
		t.Error("expected DomainError wrapping the sentinel to match")
	}

	if IsNotFound(stderrors.New("other")) {
		t.Error("unrelated error must not match")
	}
}

func TestIsValidationError(t *testing.T) {
	err := ValidationError{Field: "amount", Message: "must be positive"}
	if !IsValidationError(err) {
		t.Error("expected ValidationError to match")
	}

	wrapped := fmt.Errorf("execute: %w", err)
	if !IsValidationError(wrapped) {
		t.Error("expected wrapped ValidationError to match")
	}

	var errs ValidationErrors
	errs.Add("limit", "too large")
	if !IsValidationError(errs) {
		t.Error("expected ValidationErrors to match")
	}

	if IsValidationError(ErrWalletNotFound) {
		t.Error("unrelated error must not match")
	}
}

func TestIsInsufficientBalance(t *testing.T) {
	if !IsInsufficientBalance(ErrInsufficientBalance) {
		t.Error("expected sentinel to match")
	}
	if !IsInsufficientBalance(fmt.Errorf("transfer: %w", ErrInsufficientBalance)) {
		t.Error("expected wrapped sentinel to match")
	}
}

func TestIsConcurrencyError(t *testing.T) {
	ce := NewConcurrencyError("Wallet", "w-1", "lost the race")
	if !IsConcurrencyError(ce) {
		t.Error("expected ConcurrencyError to match")
	}
	if !IsConcurrencyError(ErrOptimisticLockExhausted) {
		t.Error("expected exhaustion sentinel to match")
	}
	if IsConcurrencyError(ErrWalletNotFound) {
		t.Error("unrelated error must not match")
	}
}

func TestIsIntegrityError(t *testing.T) {
	ie := &IntegrityError{Constraint: "transaction_events_transaction_id_key", Err: stderrors.New("duplicate key")}
	if !IsIntegrityError(ie) {
		t.Error("expected IntegrityError to match")
	}
	if !IsIntegrityError(fmt.Errorf("save: %w", ie)) {
		t.Error("expected wrapped IntegrityError to match")
	}
}

func TestDomainError_Error(t *testing.T) {
	err := NewDomainError("WALLET_NOT_FOUND", "wallet not found", ErrWalletNotFound)
	msg := err.Error()
	if msg != "[WALLET_NOT_FOUND] wallet not found: wallet not found" {
		t.Errorf("unexpected message: %s", msg)
	}

	bare := NewDomainError("X", "no cause", nil)
	if bare.Error() != "[X] no cause" {
		t.Errorf("unexpected message: %s", bare.Error())
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	err := NewDomainError("WALLET_NOT_FOUND", "wallet not found", ErrWalletNotFound)
	if !stderrors.Is(err, ErrWalletNotFound) {
		t.Error("expected errors.Is to traverse the wrap")
	}
}

func TestPublicationError(t *testing.T) {
	cause := stderrors.New("broker unreachable")
	err := &PublicationError{Topic: "wallet_events", Err: cause}
	if !stderrors.Is(err, cause) {
		t.Error("expected cause to be unwrappable")
	}
}
