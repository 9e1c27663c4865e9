package wallet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Haleralex/walletflow/internal/application/dtos"
	"github.com/Haleralex/walletflow/internal/application/ports"
	"github.com/Haleralex/walletflow/internal/domain/entities"
	"github.com/Haleralex/walletflow/internal/domain/errors"
	"github.com/Haleralex/walletflow/internal/domain/events"
	"github.com/Haleralex/walletflow/internal/domain/valueobjects"
)

// maxFundRetries caps the optimistic retry loop. Contention on a single
// wallet beyond this indicates hot-spot traffic the caller should back
// off from, so the budget is deliberately small.
const maxFundRetries = 3

// errVersionConflict signals a lost optimistic race inside one attempt.
// It never escapes Execute.
var errVersionConflict = fmt.Errorf("wallet version conflict")

// FundWalletUseCase credits a single wallet under optimistic concurrency.
//
// Each attempt is its own transaction:
//  1. Read the wallet, capture (balance, version).
//  2. Issue the conditional update predicated on the captured version.
//  3. Matched: insert the FUND ledger row and commit.
//  4. Not matched: roll back and retry from the read, up to maxFundRetries.
//
// Only a version mismatch retries; any other error aborts the loop.
// After exhaustion the caller receives a ConcurrencyError (mapped to 409).
type FundWalletUseCase struct {
	walletRepo      ports.WalletRepository
	transactionRepo ports.TransactionRepository
	eventPublisher  ports.EventPublisher
	cache           ports.WalletCache
	uow             ports.UnitOfWork
	log             *slog.Logger
}

// NewFundWalletUseCase creates the use case.
func NewFundWalletUseCase(
	walletRepo ports.WalletRepository,
	transactionRepo ports.TransactionRepository,
	eventPublisher ports.EventPublisher,
	cache ports.WalletCache,
	uow ports.UnitOfWork,
	log *slog.Logger,
) *FundWalletUseCase {
	return &FundWalletUseCase{
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		eventPublisher:  eventPublisher,
		cache:           cache,
		uow:             uow,
		log:             log,
	}
}

// Execute funds the wallet.
func (uc *FundWalletUseCase) Execute(ctx context.Context, cmd dtos.FundWalletCommand) (*dtos.WalletDTO, error) {
	amount, err := valueobjects.NewPositiveAmount(cmd.Amount)
	if err != nil {
		return nil, err
	}

	var (
		wallet *entities.Wallet
		fundTx *entities.Transaction
	)

	for attempt := 0; attempt < maxFundRetries; attempt++ {
		err = uc.uow.Execute(ctx, func(txCtx context.Context) error {
			// 1. Read the current state
			w, err := uc.walletRepo.FindByID(txCtx, cmd.WalletID)
			if err != nil {
				if errors.IsNotFound(err) {
					return errors.NewDomainError("WALLET_NOT_FOUND", "wallet not found", err)
				}
				return fmt.Errorf("failed to load wallet: %w", err)
			}
			capturedVersion := w.Version()

			// 2. Apply the credit in memory (bumps version)
			if err := w.Credit(amount); err != nil {
				return err
			}

			// 3. Conditional update predicated on the captured version
			matched, err := uc.walletRepo.UpdateWithVersion(txCtx, w, capturedVersion)
			if err != nil {
				return fmt.Errorf("failed to update wallet: %w", err)
			}
			if !matched {
				// A concurrent writer won; roll back and re-read.
				return errVersionConflict
			}

			// 4. Ledger row for the funding
			tx, err := entities.NewTransaction(
				w.ID(),
				amount,
				entities.TransactionKindFund,
				entities.TransactionStatusCompleted,
				"",
			)
			if err != nil {
				return err
			}
			if err := uc.transactionRepo.Save(txCtx, tx); err != nil {
				return fmt.Errorf("failed to save fund transaction: %w", err)
			}

			wallet = w
			fundTx = tx
			return nil
		})

		if err == nil {
			break
		}
		if err == errVersionConflict {
			uc.log.DebugContext(ctx, "optimistic funding retry",
				slog.String("wallet_id", cmd.WalletID),
				slog.Int("attempt", attempt+1),
			)
			continue
		}
		// Non-version errors abort immediately.
		return nil, err
	}

	if err == errVersionConflict {
		return nil, errors.NewConcurrencyError(
			"Wallet",
			cmd.WalletID,
			fmt.Sprintf("funding lost the optimistic race %d times", maxFundRetries),
		)
	}

	// 5. Publish after commit; failure is logged, not surfaced.
	event := events.NewWalletFunded(wallet.ID(), wallet.UserID(), fundTx.ID(), amount, wallet.Balance())
	if err := uc.eventPublisher.Publish(ctx, event); err != nil {
		uc.log.ErrorContext(ctx, "failed to publish WALLET_FUNDED",
			slog.String("wallet_id", wallet.ID()),
			slog.String("transaction_id", fundTx.ID()),
			slog.Any("error", err),
		)
	}

	uc.cache.Invalidate(ctx, wallet.ID())

	result := dtos.ToWalletDTO(wallet)
	return &result, nil
}
