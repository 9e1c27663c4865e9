// Package history contains the History Service use cases: the idempotent
// event projector and the paginated activity queries.
package history

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Haleralex/walletflow/internal/application/ports"
	"github.com/Haleralex/walletflow/internal/domain/entities"
	"github.com/Haleralex/walletflow/internal/domain/errors"
	"github.com/Haleralex/walletflow/internal/domain/events"
	"github.com/Haleralex/walletflow/internal/domain/valueobjects"
)

// ProjectEventUseCase applies one consumed event to the history store.
//
// Delivery is at-least-once, so every apply is idempotent: the event's
// transaction_id (or ids, for transfers) is checked first, and the
// unique constraint on transaction_id backstops the race where two
// consumers pass the check simultaneously. A conflict means the event is
// already applied and counts as success, letting the consumer commit its
// offset.
//
// All writes for one event happen inside one transaction.
type ProjectEventUseCase struct {
	historyRepo ports.HistoryRepository
	uow         ports.UnitOfWork
	log         *slog.Logger
}

// NewProjectEventUseCase creates the use case.
func NewProjectEventUseCase(
	historyRepo ports.HistoryRepository,
	uow ports.UnitOfWork,
	log *slog.Logger,
) *ProjectEventUseCase {
	return &ProjectEventUseCase{
		historyRepo: historyRepo,
		uow:         uow,
		log:         log,
	}
}

// Execute projects the event. raw is the wire payload, stored verbatim
// in every record the event produces.
func (uc *ProjectEventUseCase) Execute(ctx context.Context, event events.Event, raw []byte) error {
	return uc.uow.Execute(ctx, func(txCtx context.Context) error {
		switch e := event.(type) {
		case *events.WalletCreated:
			return uc.projectSingle(txCtx, e.WalletID, e.UserID, e.TransactionID, string(e.EventType), raw, e.InitialBalance)

		case *events.WalletFunded:
			return uc.projectSingle(txCtx, e.WalletID, e.UserID, e.TransactionID, string(e.EventType), raw, e.Amount)

		case *events.TransferCompleted:
			return uc.projectTransfer(txCtx, e, raw)

		case *events.TransferFailed:
			return uc.projectSingle(txCtx, e.FromWalletID, e.FromUserID, e.IdempotencyKey(), string(e.EventType), raw, e.Amount)

		default:
			// The union is closed; the consumer drops unknown types
			// before they reach the projector.
			return fmt.Errorf("%w: %T", errors.ErrUnknownEventType, event)
		}
	})
}

// projectSingle writes one history row keyed by transactionID, skipping
// the write when the key is already present.
func (uc *ProjectEventUseCase) projectSingle(
	ctx context.Context,
	walletID, userID, transactionID, eventType string,
	raw []byte,
	amount valueobjects.Amount,
) error {
	exists, err := uc.historyRepo.Exists(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to check idempotency key: %w", err)
	}
	if exists {
		uc.log.InfoContext(ctx, "event already projected, skipping",
			slog.String("event_type", eventType),
			slog.String("transaction_id", transactionID),
		)
		return nil
	}

	record, err := entities.NewHistoryRecord(walletID, userID, amount, eventType, transactionID, raw)
	if err != nil {
		return err
	}
	return uc.save(ctx, record)
}

// projectTransfer writes the debit-side and credit-side rows of a
// completed transfer. If either side already exists, the whole event is
// treated as applied and nothing is written.
func (uc *ProjectEventUseCase) projectTransfer(ctx context.Context, e *events.TransferCompleted, raw []byte) error {
	applied, err := uc.historyRepo.ExistsAny(ctx, []string{e.FromTransactionID, e.ToTransactionID})
	if err != nil {
		return fmt.Errorf("failed to check idempotency keys: %w", err)
	}
	if applied {
		uc.log.InfoContext(ctx, "transfer already projected, skipping",
			slog.String("from_transaction_id", e.FromTransactionID),
			slog.String("to_transaction_id", e.ToTransactionID),
		)
		return nil
	}

	debit, err := entities.NewHistoryRecord(e.FromWalletID, e.FromUserID, e.Amount, string(e.EventType), e.FromTransactionID, raw)
	if err != nil {
		return err
	}
	credit, err := entities.NewHistoryRecord(e.ToWalletID, e.ToUserID, e.Amount, string(e.EventType), e.ToTransactionID, raw)
	if err != nil {
		return err
	}

	if err := uc.save(ctx, debit); err != nil {
		return err
	}
	return uc.save(ctx, credit)
}

// save persists a record, mapping a unique-key conflict to success.
func (uc *ProjectEventUseCase) save(ctx context.Context, record *entities.HistoryRecord) error {
	err := uc.historyRepo.Save(ctx, record)
	if err == nil {
		return nil
	}
	if errors.IsIntegrityError(err) {
		// Lost the insert race to another consumer: already applied.
		uc.log.InfoContext(ctx, "concurrent projection detected, treating as applied",
			slog.String("transaction_id", record.TransactionID()),
		)
		return nil
	}
	return fmt.Errorf("failed to save history record: %w", err)
}
