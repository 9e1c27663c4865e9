// Package wallet - GetWallet reads one wallet, through the cache.
package wallet

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Haleralex/walletflow/internal/application/dtos"
	"github.com/Haleralex/walletflow/internal/application/ports"
	"github.com/Haleralex/walletflow/internal/domain/errors"
)

// GetWalletUseCase serves GET /wallets/{id}.
//
// Reads are read-through: a cache hit skips the database, a miss loads
// the row and backfills the cache. Cache errors degrade to the database
// silently. Mutating use cases invalidate entries after their commit,
// so a stale window is bounded by the cache TTL.
type GetWalletUseCase struct {
	walletRepo ports.WalletRepository
	cache      ports.WalletCache
}

// NewGetWalletUseCase creates the use case.
func NewGetWalletUseCase(walletRepo ports.WalletRepository, cache ports.WalletCache) *GetWalletUseCase {
	return &GetWalletUseCase{
		walletRepo: walletRepo,
		cache:      cache,
	}
}

// Execute fetches the wallet.
func (uc *GetWalletUseCase) Execute(ctx context.Context, query dtos.GetWalletQuery) (*dtos.WalletDTO, error) {
	if payload, ok := uc.cache.Get(ctx, query.WalletID); ok {
		var cached dtos.WalletDTO
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
		// Corrupt entry: fall through to the database.
	}

	wallet, err := uc.walletRepo.FindByID(ctx, query.WalletID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewDomainError("WALLET_NOT_FOUND", "wallet not found", err)
		}
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}

	result := dtos.ToWalletDTO(wallet)
	if payload, err := json.Marshal(result); err == nil {
		uc.cache.Set(ctx, wallet.ID(), payload)
	}
	return &result, nil
}
