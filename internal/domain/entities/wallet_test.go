package entities

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Haleralex/walletflow/internal/domain/errors"
	"github.com/Haleralex/walletflow/internal/domain/valueobjects"
)

func mustAmount(t *testing.T, s string) valueobjects.Amount {
	t.Helper()
	a, err := valueobjects.NewAmountFromString(s)
	if err != nil {
		t.Fatalf("bad amount %q: %v", s, err)
	}
	return a
}

func TestNewWallet(t *testing.T) {
	wallet, err := NewWallet("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if wallet.ID() == "" {
		t.Error("expected generated id")
	}
	if wallet.UserID() != "user-1" {
		t.Errorf("expected user-1, got %s", wallet.UserID())
	}
	if !wallet.Balance().IsZero() {
		t.Errorf("expected zero balance, got %s", wallet.Balance())
	}
	if wallet.Version() != 0 {
		t.Errorf("expected version 0, got %d", wallet.Version())
	}
}

func TestNewWallet_EmptyUserID(t *testing.T) {
	_, err := NewWallet("")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.IsValidationError(err) {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestWallet_Credit(t *testing.T) {
	wallet, _ := NewWallet("user-1")

	if err := wallet.Credit(mustAmount(t, "100.50")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if wallet.Balance().String() != "100.5000" {
		t.Errorf("expected 100.5000, got %s", wallet.Balance())
	}
	if wallet.Version() != 1 {
		t.Errorf("expected version 1, got %d", wallet.Version())
	}
}

func TestWallet_Credit_NonPositive(t *testing.T) {
	wallet, _ := NewWallet("user-1")

	for _, s := range []string{"0", "-10"} {
		if err := wallet.Credit(mustAmount(t, s)); err == nil {
			t.Errorf("Credit(%s): expected error, got nil", s)
		}
	}
	if wallet.Version() != 0 {
		t.Errorf("failed credit must not bump version, got %d", wallet.Version())
	}
}

func TestWallet_Debit(t *testing.T) {
	wallet, _ := NewWallet("user-1")
	_ = wallet.Credit(mustAmount(t, "100"))

	if err := wallet.Debit(mustAmount(t, "40.25")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if wallet.Balance().String() != "59.7500" {
		t.Errorf("expected 59.7500, got %s", wallet.Balance())
	}
	if wallet.Version() != 2 {
		t.Errorf("expected version 2, got %d", wallet.Version())
	}
}

func TestWallet_Debit_InsufficientBalance(t *testing.T) {
	wallet, _ := NewWallet("user-1")
	_ = wallet.Credit(mustAmount(t, "10"))

	err := wallet.Debit(mustAmount(t, "10.0001"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.IsInsufficientBalance(err) {
		t.Errorf("expected ErrInsufficientBalance, got %v", err)
	}
	if wallet.Balance().String() != "10.0000" {
		t.Errorf("failed debit must not change balance, got %s", wallet.Balance())
	}
	if wallet.Version() != 1 {
		t.Errorf("failed debit must not bump version, got %d", wallet.Version())
	}
}

func TestWallet_Debit_ExactBalance(t *testing.T) {
	wallet, _ := NewWallet("user-1")
	_ = wallet.Credit(mustAmount(t, "10"))

	if err := wallet.Debit(mustAmount(t, "10")); err != nil {
		t.Fatalf("debit to exactly zero must succeed: %v", err)
	}
	if !wallet.Balance().IsZero() {
		t.Errorf("expected zero balance, got %s", wallet.Balance())
	}
}

func TestWallet_HasSufficientBalance(t *testing.T) {
	wallet, _ := NewWallet("user-1")
	_ = wallet.Credit(mustAmount(t, "50"))

	if !wallet.HasSufficientBalance(mustAmount(t, "50")) {
		t.Error("expected 50 to be covered by balance 50")
	}
	if wallet.HasSufficientBalance(mustAmount(t, "50.0001")) {
		t.Error("expected 50.0001 to exceed balance 50")
	}
}

func TestReconstructWallet(t *testing.T) {
	id := uuid.NewString()
	now := time.Now().UTC()

	wallet := ReconstructWallet(id, "user-1", mustAmount(t, "250.75"), 7, now, now)

	if wallet.ID() != id {
		t.Errorf("expected %s, got %s", id, wallet.ID())
	}
	if wallet.Balance().String() != "250.7500" {
		t.Errorf("expected 250.7500, got %s", wallet.Balance())
	}
	if wallet.Version() != 7 {
		t.Errorf("expected version 7, got %d", wallet.Version())
	}
}
