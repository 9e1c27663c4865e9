package history

import (
	"context"
	"fmt"

	"github.com/Haleralex/walletflow/internal/application/dtos"
	"github.com/Haleralex/walletflow/internal/application/ports"
)

// GetUserActivityUseCase serves GET /history/users/{id}: the user's
// projected events across all of their wallets, newest arrival first.
type GetUserActivityUseCase struct {
	historyRepo ports.HistoryRepository
}

// NewGetUserActivityUseCase creates the use case.
func NewGetUserActivityUseCase(historyRepo ports.HistoryRepository) *GetUserActivityUseCase {
	return &GetUserActivityUseCase{historyRepo: historyRepo}
}

// Execute pages through the user's activity.
func (uc *GetUserActivityUseCase) Execute(ctx context.Context, query dtos.GetUserActivityQuery) (*dtos.UserActivityDTO, error) {
	if err := validatePage(query.Limit, query.Offset); err != nil {
		return nil, err
	}

	records, total, err := uc.historyRepo.FindByUserID(ctx, query.UserID, query.Offset, query.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load user activity: %w", err)
	}

	return &dtos.UserActivityDTO{
		UserID: query.UserID,
		Events: dtos.ToHistoryEventDTOList(records),
		Total:  total,
		Limit:  query.Limit,
		Offset: query.Offset,
	}, nil
}
