package wallet

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/Haleralex/walletflow/internal/application/dtos"
	"github.com/Haleralex/walletflow/internal/domain/entities"
	domainErrors "github.com/Haleralex/walletflow/internal/domain/errors"
)

func TestGetWalletUseCase_CacheMissLoadsAndBackfills(t *testing.T) {
	walletID := uuid.NewString()

	dbHits := 0
	walletRepo := &mockWalletRepo{
		findByIDFunc: func(ctx context.Context, id string) (*entities.Wallet, error) {
			dbHits++
			return reconstructedWallet(t, walletID, "user-1", "42.0000", 1), nil
		},
	}

	var cachedPayload []byte
	cache := &mockWalletCache{
		setFunc: func(ctx context.Context, id string, payload []byte) {
			cachedPayload = payload
		},
	}

	useCase := NewGetWalletUseCase(walletRepo, cache)

	result, err := useCase.Execute(context.Background(), dtos.GetWalletQuery{WalletID: walletID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Balance != "42.0000" {
		t.Errorf("expected 42.0000, got %s", result.Balance)
	}
	if dbHits != 1 {
		t.Errorf("expected 1 database read, got %d", dbHits)
	}
	if cachedPayload == nil {
		t.Fatal("expected cache backfill")
	}

	var cached dtos.WalletDTO
	if err := json.Unmarshal(cachedPayload, &cached); err != nil {
		t.Fatalf("backfilled payload must be the DTO: %v", err)
	}
	if cached.ID != walletID {
		t.Errorf("expected %s, got %s", walletID, cached.ID)
	}
}

func TestGetWalletUseCase_CacheHitSkipsDatabase(t *testing.T) {
	walletID := uuid.NewString()
	payload, _ := json.Marshal(dtos.WalletDTO{ID: walletID, UserID: "user-1", Balance: "42.0000", Version: 1})

	dbHits := 0
	walletRepo := &mockWalletRepo{
		findByIDFunc: func(ctx context.Context, id string) (*entities.Wallet, error) {
			dbHits++
			return nil, domainErrors.ErrWalletNotFound
		},
	}
	cache := &mockWalletCache{
		getFunc: func(ctx context.Context, id string) ([]byte, bool) {
			return payload, true
		},
	}

	useCase := NewGetWalletUseCase(walletRepo, cache)

	result, err := useCase.Execute(context.Background(), dtos.GetWalletQuery{WalletID: walletID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ID != walletID {
		t.Errorf("expected %s, got %s", walletID, result.ID)
	}
	if dbHits != 0 {
		t.Errorf("a cache hit must not touch the database, got %d reads", dbHits)
	}
}

func TestGetWalletUseCase_CorruptCacheEntryFallsThrough(t *testing.T) {
	walletID := uuid.NewString()

	walletRepo := &mockWalletRepo{
		findByIDFunc: func(ctx context.Context, id string) (*entities.Wallet, error) {
			return reconstructedWallet(t, walletID, "user-1", "42.0000", 1), nil
		},
	}
	cache := &mockWalletCache{
		getFunc: func(ctx context.Context, id string) ([]byte, bool) {
			return []byte("{corrupt"), true
		},
	}

	useCase := NewGetWalletUseCase(walletRepo, cache)

	result, err := useCase.Execute(context.Background(), dtos.GetWalletQuery{WalletID: walletID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Balance != "42.0000" {
		t.Errorf("expected the database row, got %s", result.Balance)
	}
}

func TestGetWalletUseCase_NotFound(t *testing.T) {
	useCase := NewGetWalletUseCase(&mockWalletRepo{}, &mockWalletCache{})

	result, err := useCase.Execute(context.Background(), dtos.GetWalletQuery{WalletID: uuid.NewString()})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if result != nil {
		t.Errorf("expected nil result, got %v", result)
	}
	if !domainErrors.IsNotFound(err) {
		t.Errorf("expected NotFound, got %T: %v", err, err)
	}
}

func TestListUserWalletsUseCase(t *testing.T) {
	walletRepo := &mockWalletRepo{
		findByUserIDFunc: func(ctx context.Context, userID string) ([]*entities.Wallet, error) {
			return []*entities.Wallet{
				reconstructedWallet(t, uuid.NewString(), userID, "10.0000", 0),
				reconstructedWallet(t, uuid.NewString(), userID, "20.0000", 3),
			}, nil
		},
	}

	useCase := NewListUserWalletsUseCase(walletRepo)

	result, err := useCase.Execute(context.Background(), dtos.ListUserWalletsQuery{UserID: "user-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 2 || len(result.Wallets) != 2 {
		t.Errorf("expected 2 wallets, got total=%d len=%d", result.Total, len(result.Wallets))
	}
}

func TestListUserWalletsUseCase_UnknownUserIsEmpty(t *testing.T) {
	useCase := NewListUserWalletsUseCase(&mockWalletRepo{})

	result, err := useCase.Execute(context.Background(), dtos.ListUserWalletsQuery{UserID: "ghost"})
	if err != nil {
		t.Fatalf("an unknown user is not an error: %v", err)
	}
	if result.Total != 0 {
		t.Errorf("expected empty listing, got %d", result.Total)
	}
}

func TestListUserWalletsUseCase_EmptyUserID(t *testing.T) {
	useCase := NewListUserWalletsUseCase(&mockWalletRepo{})

	_, err := useCase.Execute(context.Background(), dtos.ListUserWalletsQuery{UserID: "  "})
	if !domainErrors.IsValidationError(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}
