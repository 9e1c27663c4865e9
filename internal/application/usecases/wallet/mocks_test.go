package wallet

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Haleralex/walletflow/internal/domain/entities"
	"github.com/Haleralex/walletflow/internal/domain/errors"
	"github.com/Haleralex/walletflow/internal/domain/events"
	"github.com/Haleralex/walletflow/internal/domain/valueobjects"
)

// Shared function-field mocks for the wallet use case tests.

type mockWalletRepo struct {
	createFunc            func(ctx context.Context, wallet *entities.Wallet) error
	findByIDFunc          func(ctx context.Context, id string) (*entities.Wallet, error)
	findByUserIDFunc      func(ctx context.Context, userID string) ([]*entities.Wallet, error)
	updateWithVersionFunc func(ctx context.Context, wallet *entities.Wallet, expectedVersion int64) (bool, error)
	lockForUpdateFunc     func(ctx context.Context, ids []string) ([]*entities.Wallet, error)
	updateBalanceFunc     func(ctx context.Context, wallet *entities.Wallet) error
}

func (m *mockWalletRepo) Create(ctx context.Context, wallet *entities.Wallet) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, wallet)
	}
	return nil
}

func (m *mockWalletRepo) FindByID(ctx context.Context, id string) (*entities.Wallet, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errors.ErrWalletNotFound
}

func (m *mockWalletRepo) FindByUserID(ctx context.Context, userID string) ([]*entities.Wallet, error) {
	if m.findByUserIDFunc != nil {
		return m.findByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockWalletRepo) UpdateWithVersion(ctx context.Context, wallet *entities.Wallet, expectedVersion int64) (bool, error) {
	if m.updateWithVersionFunc != nil {
		return m.updateWithVersionFunc(ctx, wallet, expectedVersion)
	}
	return true, nil
}

func (m *mockWalletRepo) LockForUpdate(ctx context.Context, ids []string) ([]*entities.Wallet, error) {
	if m.lockForUpdateFunc != nil {
		return m.lockForUpdateFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockWalletRepo) UpdateBalance(ctx context.Context, wallet *entities.Wallet) error {
	if m.updateBalanceFunc != nil {
		return m.updateBalanceFunc(ctx, wallet)
	}
	return nil
}

type mockTransactionRepo struct {
	saveFunc func(ctx context.Context, tx *entities.Transaction) error
	saved    []*entities.Transaction
}

func (m *mockTransactionRepo) Save(ctx context.Context, tx *entities.Transaction) error {
	if m.saveFunc != nil {
		if err := m.saveFunc(ctx, tx); err != nil {
			return err
		}
	}
	m.saved = append(m.saved, tx)
	return nil
}

func (m *mockTransactionRepo) FindByID(ctx context.Context, id string) (*entities.Transaction, error) {
	return nil, errors.ErrWalletNotFound
}

func (m *mockTransactionRepo) FindByWalletID(ctx context.Context, walletID string, offset, limit int) ([]*entities.Transaction, error) {
	return nil, nil
}

type mockEventPublisher struct {
	publishFunc func(ctx context.Context, event events.Event) error
	published   []events.Event
}

func (m *mockEventPublisher) Publish(ctx context.Context, event events.Event) error {
	m.published = append(m.published, event)
	if m.publishFunc != nil {
		return m.publishFunc(ctx, event)
	}
	return nil
}

type mockWalletCache struct {
	getFunc     func(ctx context.Context, walletID string) ([]byte, bool)
	setFunc     func(ctx context.Context, walletID string, payload []byte)
	invalidated []string
}

func (m *mockWalletCache) Get(ctx context.Context, walletID string) ([]byte, bool) {
	if m.getFunc != nil {
		return m.getFunc(ctx, walletID)
	}
	return nil, false
}

func (m *mockWalletCache) Set(ctx context.Context, walletID string, payload []byte) {
	if m.setFunc != nil {
		m.setFunc(ctx, walletID, payload)
	}
}

func (m *mockWalletCache) Invalidate(ctx context.Context, walletIDs ...string) {
	m.invalidated = append(m.invalidated, walletIDs...)
}

// mockUoW runs the work function directly; the "transaction" is the
// plain context.
type mockUoW struct {
	executions int
}

func (m *mockUoW) Execute(ctx context.Context, fn func(context.Context) error) error {
	m.executions++
	return fn(ctx)
}

func (m *mockUoW) ExecuteWithResult(ctx context.Context, fn func(context.Context) (interface{}, error)) (interface{}, error) {
	m.executions++
	return fn(ctx)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAmount(t *testing.T, s string) valueobjects.Amount {
	t.Helper()
	a, err := valueobjects.NewAmountFromString(s)
	if err != nil {
		t.Fatalf("bad amount %q: %v", s, err)
	}
	return a
}
