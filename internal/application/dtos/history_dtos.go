package dtos

import "encoding/json"

// ============================================
// Queries
// ============================================

// GetWalletHistoryQuery pages through one wallet's projected events.
type GetWalletHistoryQuery struct {
	WalletID string `json:"wallet_id" validate:"required"`
	Limit    int    `json:"limit" validate:"min=1,max=100"`
	Offset   int    `json:"offset" validate:"min=0"`
}

// GetUserActivityQuery pages through a user's events across all wallets.
type GetUserActivityQuery struct {
	UserID string `json:"user_id" validate:"required"`
	Limit  int    `json:"limit" validate:"min=1,max=100"`
	Offset int    `json:"offset" validate:"min=0"`
}

// ============================================
// Response DTOs
// ============================================

// HistoryEventDTO is one projected event. EventData carries the original
// event payload verbatim.
type HistoryEventDTO struct {
	WalletID  string          `json:"wallet_id"`
	UserID    string          `json:"user_id"`
	Amount    string          `json:"amount"`
	EventType string          `json:"event_type"`
	EventData json.RawMessage `json:"event_data"`
}

// WalletHistoryDTO is the paginated history of one wallet,
// newest arrival first.
type WalletHistoryDTO struct {
	WalletID string            `json:"wallet_id"`
	Events   []HistoryEventDTO `json:"events"`
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// UserActivityDTO is the paginated activity of one user.
type UserActivityDTO struct {
	UserID string            `json:"user_id"`
	Events []HistoryEventDTO `json:"events"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}
