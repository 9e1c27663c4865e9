package events

import (
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/Haleralex/walletflow/internal/domain/errors"
	"github.com/Haleralex/walletflow/internal/domain/valueobjects"
)

func amount(t *testing.T, s string) valueobjects.Amount {
	t.Helper()
	a, err := valueobjects.NewAmountFromString(s)
	if err != nil {
		t.Fatalf("bad amount %q: %v", s, err)
	}
	return a
}

func TestWalletCreated_RoundTrip(t *testing.T) {
	event := NewWalletCreated(uuid.NewString(), "user-1", uuid.NewString(), valueobjects.ZeroAmount())

	data, err := Marshal(event)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	decoded, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	created, ok := decoded.(*WalletCreated)
	if !ok {
		t.Fatalf("expected *WalletCreated, got %T", decoded)
	}
	if created.WalletID != event.WalletID {
		t.Errorf("expected %s, got %s", event.WalletID, created.WalletID)
	}
	if created.TransactionID != event.TransactionID {
		t.Errorf("expected %s, got %s", event.TransactionID, created.TransactionID)
	}
}

func TestWalletFunded_WireFormat(t *testing.T) {
	event := NewWalletFunded("w-1", "user-1", "tx-1", amount(t, "100.50"), amount(t, "250.75"))

	data, err := Marshal(event)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	// Money must travel as quoted decimal strings, never JSON numbers.
	var wire map[string]any
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if wire["event_type"] != "WALLET_FUNDED" {
		t.Errorf("expected WALLET_FUNDED, got %v", wire["event_type"])
	}
	if wire["amount"] != "100.5000" {
		t.Errorf("expected amount as string 100.5000, got %v (%T)", wire["amount"], wire["amount"])
	}
	if wire["new_balance"] != "250.7500" {
		t.Errorf("expected new_balance as string 250.7500, got %v", wire["new_balance"])
	}
}

func TestPartitionKeys(t *testing.T) {
	created := NewWalletCreated("w-1", "user-1", "tx-1", valueobjects.ZeroAmount())
	if keys := created.PartitionKeys(); len(keys) != 1 || keys[0] != "w-1" {
		t.Errorf("WalletCreated: expected [w-1], got %v", keys)
	}

	funded := NewWalletFunded("w-1", "user-1", "tx-1", amount(t, "10"), amount(t, "10"))
	if keys := funded.PartitionKeys(); len(keys) != 1 || keys[0] != "w-1" {
		t.Errorf("WalletFunded: expected [w-1], got %v", keys)
	}

	// Transfer events fan out to both wallets' partitions.
	completed := NewTransferCompleted("w-from", "w-to", "u-1", "u-2", amount(t, "10"), "tx-out", "tx-in")
	if keys := completed.PartitionKeys(); len(keys) != 2 || keys[0] != "w-from" || keys[1] != "w-to" {
		t.Errorf("TransferCompleted: expected [w-from w-to], got %v", keys)
	}

	failed := NewTransferFailed("w-from", "w-to", "u-1", amount(t, "10"), "insufficient balance")
	if keys := failed.PartitionKeys(); len(keys) != 2 || keys[0] != "w-from" || keys[1] != "w-to" {
		t.Errorf("TransferFailed: expected [w-from w-to], got %v", keys)
	}
}

func TestTransferCompleted_BaseTransactionID(t *testing.T) {
	event := NewTransferCompleted("w-from", "w-to", "u-1", "u-2", amount(t, "10"), "tx-out", "tx-in")
	if event.TransactionID != "tx-out" {
		t.Errorf("base transaction_id must mirror the debit side, got %s", event.TransactionID)
	}
}

func TestTransferFailed_IdempotencyKey(t *testing.T) {
	event := NewTransferFailed("w-from", "w-to", "u-1", amount(t, "10"), "insufficient balance")

	key := event.IdempotencyKey()
	if key == "" {
		t.Fatal("expected synthetic key for event without transaction_id")
	}
	if !strings.HasPrefix(key, "failed-") {
		t.Errorf("expected synthetic key prefix, got %s", key)
	}
	if !strings.Contains(key, "w-from") {
		t.Errorf("expected key to carry the source wallet, got %s", key)
	}
	if event.IdempotencyKey() != key {
		t.Error("key must be stable across calls")
	}

	event.TransactionID = "tx-explicit"
	if event.IdempotencyKey() != "tx-explicit" {
		t.Errorf("explicit transaction_id must win, got %s", event.IdempotencyKey())
	}
}

func TestUnmarshal_UnknownEventType(t *testing.T) {
	_, err := Unmarshal([]byte(`{"event_type":"WALLET_CLOSED"}`))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !stderrors.Is(err, errors.ErrUnknownEventType) {
		t.Errorf("expected ErrUnknownEventType, got %v", err)
	}
}

func TestUnmarshal_MissingEventType(t *testing.T) {
	_, err := Unmarshal([]byte(`{"wallet_id":"w-1"}`))
	if !stderrors.Is(err, errors.ErrUnknownEventType) {
		t.Errorf("expected ErrUnknownEventType, got %v", err)
	}
}

func TestUnmarshal_MalformedJSON(t *testing.T) {
	_, err := Unmarshal([]byte(`{not json`))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestUnmarshal_ToleratesUnknownFields(t *testing.T) {
	payload := `{"event_type":"WALLET_FUNDED","wallet_id":"w-1","user_id":"u-1",` +
		`"transaction_id":"tx-1","amount":"10.0000","new_balance":"10.0000",` +
		`"timestamp":"2026-08-26T10:00:00Z","future_field":true}`

	decoded, err := Unmarshal([]byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	funded, ok := decoded.(*WalletFunded)
	if !ok {
		t.Fatalf("expected *WalletFunded, got %T", decoded)
	}
	if funded.WalletID != "w-1" {
		t.Errorf("expected w-1, got %s", funded.WalletID)
	}
}

func TestType_IsValid(t *testing.T) {
	for _, typ := range []Type{TypeWalletCreated, TypeWalletFunded, TypeTransferCompleted, TypeTransferFailed} {
		if !typ.IsValid() {
			t.Errorf("expected %s to be valid", typ)
		}
	}
	if Type("WALLET_CLOSED").IsValid() {
		t.Error("expected WALLET_CLOSED to be invalid")
	}
}
