// Package dtos - commands, queries and response DTOs for the use cases.
package dtos

// ============================================
// Commands (write operations)
// ============================================

// CreateWalletCommand creates a wallet for a user.
type CreateWalletCommand struct {
	UserID string `json:"user_id" validate:"required"`
}

// FundWalletCommand credits a single wallet.
type FundWalletCommand struct {
	WalletID string `json:"wallet_id" validate:"required"`
	Amount   string `json:"amount" validate:"required"` // decimal string: "100.50"
}

// TransferFundsCommand moves funds between two wallets.
type TransferFundsCommand struct {
	FromWalletID string `json:"from_wallet_id" validate:"required"`
	ToWalletID   string `json:"to_wallet_id" validate:"required"`
	Amount       string `json:"amount" validate:"required"`
}

// ============================================
// Queries (read operations)
// ============================================

// GetWalletQuery fetches a wallet by id.
type GetWalletQuery struct {
	WalletID string `json:"wallet_id" validate:"required"`
}

// ListUserWalletsQuery fetches all wallets of a user.
type ListUserWalletsQuery struct {
	UserID string `json:"user_id" validate:"required"`
}

// ============================================
// Response DTOs
// ============================================

// WalletDTO is the API representation of a wallet.
type WalletDTO struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	Balance string `json:"balance"` // decimal string: "100.0000"
	Version int64  `json:"version"`
}

// WalletListDTO is the result of a user-wallets listing.
type WalletListDTO struct {
	Wallets []WalletDTO `json:"wallets"`
	Total   int         `json:"total"`
}

// TransferDTO is the result of a completed transfer.
type TransferDTO struct {
	FromWalletID string `json:"from_wallet_id"`
	ToWalletID   string `json:"to_wallet_id"`
	Amount       string `json:"amount"`
}
