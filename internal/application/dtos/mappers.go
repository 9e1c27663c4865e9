// Package dtos - mappers from domain entities to API DTOs.
//
// Pattern: Mapper/Converter
// Keeps the domain representation separate from the API representation.
package dtos

import (
	"github.com/Haleralex/walletflow/internal/domain/entities"
)

// ============================================
// Wallet Mappers
// ============================================

// ToWalletDTO converts a Wallet entity to its API representation.
func ToWalletDTO(wallet *entities.Wallet) WalletDTO {
	return WalletDTO{
		ID:      wallet.ID(),
		UserID:  wallet.UserID(),
		Balance: wallet.Balance().String(),
		Version: wallet.Version(),
	}
}

// ToWalletDTOList converts a list of wallets.
func ToWalletDTOList(wallets []*entities.Wallet) []WalletDTO {
	result := make([]WalletDTO, len(wallets))
	for i, wallet := range wallets {
		result[i] = ToWalletDTO(wallet)
	}
	return result
}

// ToWalletListDTO wraps a user's wallets with their total count.
func ToWalletListDTO(wallets []*entities.Wallet) WalletListDTO {
	return WalletListDTO{
		Wallets: ToWalletDTOList(wallets),
		Total:   len(wallets),
	}
}

// ============================================
// History Mappers
// ============================================

// ToHistoryEventDTO converts a HistoryRecord to its API representation.
func ToHistoryEventDTO(record *entities.HistoryRecord) HistoryEventDTO {
	return HistoryEventDTO{
		WalletID:  record.WalletID(),
		UserID:    record.UserID(),
		Amount:    record.Amount().String(),
		EventType: record.EventType(),
		EventData: record.EventData(),
	}
}

// ToHistoryEventDTOList converts a list of history records.
func ToHistoryEventDTOList(records []*entities.HistoryRecord) []HistoryEventDTO {
	result := make([]HistoryEventDTO, len(records))
	for i, record := range records {
		result[i] = ToHistoryEventDTO(record)
	}
	return result
}
