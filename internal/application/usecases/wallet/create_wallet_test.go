package wallet

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/Haleralex/walletflow/internal/application/dtos"
	"github.com/Haleralex/walletflow/internal/domain/entities"
	domainErrors "github.com/Haleralex/walletflow/internal/domain/errors"
	"github.com/Haleralex/walletflow/internal/domain/events"
)

func TestCreateWalletUseCase_Success(t *testing.T) {
	ctx := context.Background()

	var createdWallet *entities.Wallet
	walletRepo := &mockWalletRepo{
		createFunc: func(ctx context.Context, w *entities.Wallet) error {
			createdWallet = w
			return nil
		},
	}
	transactionRepo := &mockTransactionRepo{}
	publisher := &mockEventPublisher{}
	uow := &mockUoW{}

	useCase := NewCreateWalletUseCase(walletRepo, transactionRepo, publisher, uow, testLogger())

	result, err := useCase.Execute(ctx, dtos.CreateWalletCommand{UserID: "user-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.UserID != "user-1" {
		t.Errorf("expected user-1, got %s", result.UserID)
	}
	if result.Balance != "0.0000" {
		t.Errorf("expected zero balance, got %s", result.Balance)
	}
	if result.Version != 0 {
		t.Errorf("expected version 0, got %d", result.Version)
	}
	if createdWallet == nil {
		t.Fatal("expected wallet to be persisted")
	}

	// One zero-amount FUND ledger row at creation
	if len(transactionRepo.saved) != 1 {
		t.Fatalf("expected 1 ledger row, got %d", len(transactionRepo.saved))
	}
	ledgerRow := transactionRepo.saved[0]
	if ledgerRow.Kind() != entities.TransactionKindFund {
		t.Errorf("expected FUND, got %s", ledgerRow.Kind())
	}
	if !ledgerRow.Amount().IsZero() {
		t.Errorf("expected zero amount, got %s", ledgerRow.Amount())
	}

	// WALLET_CREATED is published after the commit and carries the
	// ledger row's id as transaction_id.
	if len(publisher.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(publisher.published))
	}
	created, ok := publisher.published[0].(*events.WalletCreated)
	if !ok {
		t.Fatalf("expected *WalletCreated, got %T", publisher.published[0])
	}
	if created.WalletID != createdWallet.ID() {
		t.Errorf("expected %s, got %s", createdWallet.ID(), created.WalletID)
	}
	if created.TransactionID != ledgerRow.ID() {
		t.Errorf("expected %s, got %s", ledgerRow.ID(), created.TransactionID)
	}
}

func TestCreateWalletUseCase_EmptyUserID(t *testing.T) {
	useCase := NewCreateWalletUseCase(&mockWalletRepo{}, &mockTransactionRepo{}, &mockEventPublisher{}, &mockUoW{}, testLogger())

	for _, userID := range []string{"", "   "} {
		result, err := useCase.Execute(context.Background(), dtos.CreateWalletCommand{UserID: userID})
		if err == nil {
			t.Fatalf("UserID=%q: expected error, got nil", userID)
		}
		if result != nil {
			t.Errorf("UserID=%q: expected nil result", userID)
		}
		if !domainErrors.IsValidationError(err) {
			t.Errorf("UserID=%q: expected ValidationError, got %T", userID, err)
		}
	}
}

func TestCreateWalletUseCase_PersistenceFailure(t *testing.T) {
	walletRepo := &mockWalletRepo{
		createFunc: func(ctx context.Context, w *entities.Wallet) error {
			return stderrors.New("connection reset")
		},
	}
	publisher := &mockEventPublisher{}

	useCase := NewCreateWalletUseCase(walletRepo, &mockTransactionRepo{}, publisher, &mockUoW{}, testLogger())

	_, err := useCase.Execute(context.Background(), dtos.CreateWalletCommand{UserID: "user-1"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	// Nothing committed, nothing published.
	if len(publisher.published) != 0 {
		t.Errorf("expected no events after a failed transaction, got %d", len(publisher.published))
	}
}

func TestCreateWalletUseCase_PublishFailureIsNotSurfaced(t *testing.T) {
	publisher := &mockEventPublisher{
		publishFunc: func(ctx context.Context, event events.Event) error {
			return stderrors.New("broker unreachable")
		},
	}

	useCase := NewCreateWalletUseCase(&mockWalletRepo{}, &mockTransactionRepo{}, publisher, &mockUoW{}, testLogger())

	result, err := useCase.Execute(context.Background(), dtos.CreateWalletCommand{UserID: "user-1"})
	if err != nil {
		t.Fatalf("a broker failure after commit must not fail the request: %v", err)
	}
	if result == nil {
		t.Fatal("expected result, got nil")
	}
}
