// Package wallet - ListUserWallets lists all wallets owned by a user.
package wallet

import (
	"context"
	"fmt"
	"strings"

	"github.com/Haleralex/walletflow/internal/application/dtos"
	"github.com/Haleralex/walletflow/internal/application/ports"
	"github.com/Haleralex/walletflow/internal/domain/errors"
)

// ListUserWalletsUseCase serves GET /users/{id}/wallets.
// An unknown user is not an error; it simply owns zero wallets.
type ListUserWalletsUseCase struct {
	walletRepo ports.WalletRepository
}

// NewListUserWalletsUseCase creates the use case.
func NewListUserWalletsUseCase(walletRepo ports.WalletRepository) *ListUserWalletsUseCase {
	return &ListUserWalletsUseCase{walletRepo: walletRepo}
}

// Execute lists the user's wallets.
func (uc *ListUserWalletsUseCase) Execute(ctx context.Context, query dtos.ListUserWalletsQuery) (*dtos.WalletListDTO, error) {
	userID := strings.TrimSpace(query.UserID)
	if userID == "" {
		return nil, errors.ValidationError{Field: "user_id", Message: "user_id must not be empty"}
	}

	wallets, err := uc.walletRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}

	result := dtos.ToWalletListDTO(wallets)
	return &result, nil
}
