package history

import (
	"context"
	"fmt"

	"github.com/Haleralex/walletflow/internal/application/dtos"
	"github.com/Haleralex/walletflow/internal/application/ports"
	"github.com/Haleralex/walletflow/internal/domain/errors"
)

// Pagination bounds shared by the history queries.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

// validatePage checks the limit/offset bounds: limit in [1,100],
// offset >= 0.
func validatePage(limit, offset int) error {
	if limit < 1 || limit > MaxPageLimit {
		return errors.ValidationError{
			Field:   "limit",
			Message: fmt.Sprintf("must be between 1 and %d", MaxPageLimit),
		}
	}
	if offset < 0 {
		return errors.ValidationError{
			Field:   "offset",
			Message: "must not be negative",
		}
	}
	return nil
}

// GetWalletHistoryUseCase serves GET /history/wallets/{id}:
// the wallet's projected events, newest arrival first.
type GetWalletHistoryUseCase struct {
	historyRepo ports.HistoryRepository
}

// NewGetWalletHistoryUseCase creates the use case.
func NewGetWalletHistoryUseCase(historyRepo ports.HistoryRepository) *GetWalletHistoryUseCase {
	return &GetWalletHistoryUseCase{historyRepo: historyRepo}
}

// Execute pages through the wallet's history.
func (uc *GetWalletHistoryUseCase) Execute(ctx context.Context, query dtos.GetWalletHistoryQuery) (*dtos.WalletHistoryDTO, error) {
	if err := validatePage(query.Limit, query.Offset); err != nil {
		return nil, err
	}

	records, total, err := uc.historyRepo.FindByWalletID(ctx, query.WalletID, query.Offset, query.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet history: %w", err)
	}

	return &dtos.WalletHistoryDTO{
		WalletID: query.WalletID,
		Events:   dtos.ToHistoryEventDTOList(records),
		Total:    total,
		Limit:    query.Limit,
		Offset:   query.Offset,
	}, nil
}
