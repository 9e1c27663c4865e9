// Package wallet contains the Wallet Service use cases: creation,
// optimistic funding, and deadlock-free transfers.
package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Haleralex/walletflow/internal/application/dtos"
	"github.com/Haleralex/walletflow/internal/application/ports"
	"github.com/Haleralex/walletflow/internal/domain/entities"
	"github.com/Haleralex/walletflow/internal/domain/errors"
	"github.com/Haleralex/walletflow/internal/domain/events"
	"github.com/Haleralex/walletflow/internal/domain/valueobjects"
)

// CreateWalletUseCase creates a wallet for a user.
//
// Scenario:
//  1. Insert the wallet (balance 0, version 0) and a zero-amount FUND
//     ledger row in one transaction.
//  2. After commit, emit WALLET_CREATED carrying the ledger row's id.
//
// Publication runs strictly after the commit; a broker failure is
// logged and never surfaced to the caller.
type CreateWalletUseCase struct {
	walletRepo      ports.WalletRepository
	transactionRepo ports.TransactionRepository
	eventPublisher  ports.EventPublisher
	uow             ports.UnitOfWork
	log             *slog.Logger
}

// NewCreateWalletUseCase creates the use case.
func NewCreateWalletUseCase(
	walletRepo ports.WalletRepository,
	transactionRepo ports.TransactionRepository,
	eventPublisher ports.EventPublisher,
	uow ports.UnitOfWork,
	log *slog.Logger,
) *CreateWalletUseCase {
	return &CreateWalletUseCase{
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		eventPublisher:  eventPublisher,
		uow:             uow,
		log:             log,
	}
}

// Execute creates the wallet.
func (uc *CreateWalletUseCase) Execute(ctx context.Context, cmd dtos.CreateWalletCommand) (*dtos.WalletDTO, error) {
	userID := strings.TrimSpace(cmd.UserID)
	if userID == "" {
		return nil, errors.ValidationError{Field: "user_id", Message: "user_id must not be empty"}
	}

	var (
		wallet     *entities.Wallet
		creationTx *entities.Transaction
	)

	err := uc.uow.Execute(ctx, func(txCtx context.Context) error {
		// 1. Create the wallet entity
		w, err := entities.NewWallet(userID)
		if err != nil {
			return err
		}

		// 2. Persist it
		if err := uc.walletRepo.Create(txCtx, w); err != nil {
			return fmt.Errorf("failed to create wallet: %w", err)
		}

		// 3. Record the creation as a zero-amount FUND ledger row.
		// Its id becomes the transaction_id on the WALLET_CREATED event.
		tx, err := entities.NewTransaction(
			w.ID(),
			valueobjects.ZeroAmount(),
			entities.TransactionKindFund,
			entities.TransactionStatusCompleted,
			"",
		)
		if err != nil {
			return err
		}
		if err := uc.transactionRepo.Save(txCtx, tx); err != nil {
			return fmt.Errorf("failed to save creation transaction: %w", err)
		}

		wallet = w
		creationTx = tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 4. Publish after commit. Failure is logged, not surfaced.
	event := events.NewWalletCreated(wallet.ID(), wallet.UserID(), creationTx.ID(), wallet.Balance())
	if err := uc.eventPublisher.Publish(ctx, event); err != nil {
		uc.log.ErrorContext(ctx, "failed to publish WALLET_CREATED",
			slog.String("wallet_id", wallet.ID()),
			slog.String("transaction_id", creationTx.ID()),
			slog.Any("error", err),
		)
	}

	result := dtos.ToWalletDTO(wallet)
	return &result, nil
}
