package entities

import (
	"testing"

	"github.com/google/uuid"

	"github.com/Haleralex/walletflow/internal/domain/errors"
)

func TestNewHistoryRecord(t *testing.T) {
	walletID := uuid.NewString()
	txID := uuid.NewString()
	payload := []byte(`{"event_type":"WALLET_FUNDED"}`)

	record, err := NewHistoryRecord(walletID, "user-1", mustAmount(t, "100"), "WALLET_FUNDED", txID, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.WalletID() != walletID {
		t.Errorf("expected %s, got %s", walletID, record.WalletID())
	}
	if record.TransactionID() != txID {
		t.Errorf("expected %s, got %s", txID, record.TransactionID())
	}
	if string(record.EventData()) != string(payload) {
		t.Error("expected payload to be stored verbatim")
	}
}

func TestNewHistoryRecord_RequiredFields(t *testing.T) {
	amount := mustAmount(t, "10")

	_, err := NewHistoryRecord("", "user-1", amount, "WALLET_FUNDED", uuid.NewString(), nil)
	if !errors.IsValidationError(err) {
		t.Errorf("empty wallet_id: expected ValidationError, got %v", err)
	}

	_, err = NewHistoryRecord(uuid.NewString(), "user-1", amount, "WALLET_FUNDED", "", nil)
	if !errors.IsValidationError(err) {
		t.Errorf("empty transaction_id: expected ValidationError, got %v", err)
	}
}
