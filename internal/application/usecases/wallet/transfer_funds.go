package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/Haleralex/walletflow/internal/application/dtos"
	"github.com/Haleralex/walletflow/internal/application/ports"
	"github.com/Haleralex/walletflow/internal/domain/entities"
	"github.com/Haleralex/walletflow/internal/domain/errors"
	"github.com/Haleralex/walletflow/internal/domain/events"
	"github.com/Haleralex/walletflow/internal/domain/valueobjects"
)

// TransferFundsUseCase moves funds between two wallets under pessimistic
// row locking.
//
// Both rows are locked by a single SELECT ... FOR UPDATE whose predicate
// lists both ids and whose scan order is ascending id. Concurrent A→B and
// B→A transfers therefore acquire locks in the same order and can never
// deadlock.
//
// An insufficient balance emits TRANSFER_FAILED before the transaction is
// rolled back, so the failed attempt is auditable in the history
// projection even though no ledger rows are written for it.
type TransferFundsUseCase struct {
	walletRepo      ports.WalletRepository
	transactionRepo ports.TransactionRepository
	eventPublisher  ports.EventPublisher
	cache           ports.WalletCache
	uow             ports.UnitOfWork
	log             *slog.Logger
}

// NewTransferFundsUseCase creates the use case.
func NewTransferFundsUseCase(
	walletRepo ports.WalletRepository,
	transactionRepo ports.TransactionRepository,
	eventPublisher ports.EventPublisher,
	cache ports.WalletCache,
	uow ports.UnitOfWork,
	log *slog.Logger,
) *TransferFundsUseCase {
	return &TransferFundsUseCase{
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		eventPublisher:  eventPublisher,
		cache:           cache,
		uow:             uow,
		log:             log,
	}
}

// Execute performs the transfer.
func (uc *TransferFundsUseCase) Execute(ctx context.Context, cmd dtos.TransferFundsCommand) (*dtos.TransferDTO, error) {
	amount, err := valueobjects.NewPositiveAmount(cmd.Amount)
	if err != nil {
		return nil, err
	}
	if cmd.FromWalletID == cmd.ToWalletID {
		return nil, errors.ValidationError{
			Field:   "to_wallet_id",
			Message: "cannot transfer to the same wallet",
		}
	}

	var (
		from, to    *entities.Wallet
		outTx, inTx *entities.Transaction
	)

	err = uc.uow.Execute(ctx, func(txCtx context.Context) error {
		// 1. Lock both rows in one statement, ids in ascending order
		ids := []string{cmd.FromWalletID, cmd.ToWalletID}
		sort.Strings(ids)

		locked, err := uc.walletRepo.LockForUpdate(txCtx, ids)
		if err != nil {
			return fmt.Errorf("failed to lock wallets: %w", err)
		}

		byID := make(map[string]*entities.Wallet, len(locked))
		for _, w := range locked {
			byID[w.ID()] = w
		}

		from = byID[cmd.FromWalletID]
		to = byID[cmd.ToWalletID]
		if from == nil {
			return errors.NewDomainError("WALLET_NOT_FOUND",
				fmt.Sprintf("wallet %s not found", cmd.FromWalletID), errors.ErrWalletNotFound)
		}
		if to == nil {
			return errors.NewDomainError("WALLET_NOT_FOUND",
				fmt.Sprintf("wallet %s not found", cmd.ToWalletID), errors.ErrWalletNotFound)
		}

		// 2. Balance check. The failure event goes out before the abort
		// so the attempt shows up in the history projection.
		if !from.HasSufficientBalance(amount) {
			failed := events.NewTransferFailed(
				from.ID(), to.ID(), from.UserID(), amount, "insufficient balance",
			)
			if pubErr := uc.eventPublisher.Publish(txCtx, failed); pubErr != nil {
				uc.log.ErrorContext(txCtx, "failed to publish TRANSFER_FAILED",
					slog.String("from_wallet_id", from.ID()),
					slog.Any("error", pubErr),
				)
			}
			return errors.ErrInsufficientBalance
		}

		// 3. Mutate both balances (each bumps its version)
		if err := from.Debit(amount); err != nil {
			return err
		}
		if err := to.Credit(amount); err != nil {
			return err
		}
		if err := uc.walletRepo.UpdateBalance(txCtx, from); err != nil {
			return fmt.Errorf("failed to update source wallet: %w", err)
		}
		if err := uc.walletRepo.UpdateBalance(txCtx, to); err != nil {
			return fmt.Errorf("failed to update destination wallet: %w", err)
		}

		// 4. Ledger rows for both sides; their ids ride on the event
		outTx, err = entities.NewTransaction(
			from.ID(), amount,
			entities.TransactionKindTransferOut,
			entities.TransactionStatusCompleted,
			to.ID(),
		)
		if err != nil {
			return err
		}
		inTx, err = entities.NewTransaction(
			to.ID(), amount,
			entities.TransactionKindTransferIn,
			entities.TransactionStatusCompleted,
			from.ID(),
		)
		if err != nil {
			return err
		}
		if err := uc.transactionRepo.Save(txCtx, outTx); err != nil {
			return fmt.Errorf("failed to save transfer-out transaction: %w", err)
		}
		if err := uc.transactionRepo.Save(txCtx, inTx); err != nil {
			return fmt.Errorf("failed to save transfer-in transaction: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// 5. Publish after commit; failure is logged, not surfaced.
	event := events.NewTransferCompleted(
		from.ID(), to.ID(),
		from.UserID(), to.UserID(),
		amount,
		outTx.ID(), inTx.ID(),
	)
	if err := uc.eventPublisher.Publish(ctx, event); err != nil {
		uc.log.ErrorContext(ctx, "failed to publish TRANSFER_COMPLETED",
			slog.String("from_wallet_id", from.ID()),
			slog.String("to_wallet_id", to.ID()),
			slog.Any("error", err),
		)
	}

	uc.cache.Invalidate(ctx, from.ID(), to.ID())

	return &dtos.TransferDTO{
		FromWalletID: from.ID(),
		ToWalletID:   to.ID(),
		Amount:       amount.String(),
	}, nil
}
